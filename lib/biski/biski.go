// Package biski implements the biski64 pseudo random generator. It is fast
// and small but not suitable for anything security related.
package biski

import (
	"math/bits"
	"math/rand"
)

// additive constant of the Weyl sequence in fastLoop
const weyl = 0x9999999999999999

const warmup = 16

// State of the generator. The zero value works but has poor early output;
// use Seed or NewSeeded. Not safe for concurrent use.
type State struct {
	fastLoop uint64
	mix      uint64
	loopMix  uint64
}

// NewSeeded returns a generator seeded with seed.
func NewSeeded(seed uint64) *State {
	s := &State{}
	s.Seed(seed)
	return s
}

// splitmix advances the seeding state and returns the next seeding value.
func splitmix(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Seed resets the state from seed and discards the first outputs.
func (s *State) Seed(seed uint64) {
	st := seed
	s.mix = splitmix(&st)
	s.loopMix = splitmix(&st)
	s.fastLoop = splitmix(&st)
	for i := 0; i < warmup; i++ {
		s.Next()
	}
}

func (s *State) Next() uint64 {
	out := s.mix + s.loopMix
	oldLoopMix := s.loopMix

	s.loopMix = s.fastLoop ^ s.mix
	s.mix = bits.RotateLeft64(s.mix, 16) + bits.RotateLeft64(oldLoopMix, 40)
	s.fastLoop += weyl
	return out
}

// Source adapts a State to math/rand.
type Source struct {
	State
}

var _ rand.Source64 = (*Source)(nil)

// NewSource returns a seeded Source, ready for rand.New.
func NewSource(seed int64) *Source {
	s := &Source{}
	s.Seed(seed)
	return s
}

func (s *Source) Seed(seed int64) {
	s.State.Seed(uint64(seed))
}

func (s *Source) Uint64() uint64 {
	return s.Next()
}

func (s *Source) Int63() int64 {
	return int64(s.Next() >> 1)
}
