// Package hashing provides the 64 bit hash functions used to fingerprint
// loaded files.
package hashing

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/segmentio/fasthash/fnv1a"
	"github.com/zeebo/xxh3"
)

type Algo uint8

const (
	AlgoDjb2 Algo = iota
	AlgoXXHash
	AlgoXXH3
	AlgoFNV1a
)

var algoNames = [...]string{
	AlgoDjb2:   "djb2",
	AlgoXXHash: "xxhash",
	AlgoXXH3:   "xxh3",
	AlgoFNV1a:  "fnv1a",
}

func (a Algo) String() string {
	if int(a) >= len(algoNames) {
		return fmt.Sprintf("Algo(%d)", a)
	}
	return algoNames[a]
}

// ParseAlgo returns the algorithm with the given name.
func ParseAlgo(s string) (Algo, error) {
	s = strings.ToLower(s)
	for a, name := range algoNames {
		if name == s {
			return Algo(a), nil
		}
	}
	return 0, fmt.Errorf("unknown hash algorithm %q, expected one of %s", s, strings.Join(algoNames[:], ", "))
}

func (a *Algo) UnmarshalText(text []byte) error {
	algo, err := ParseAlgo(string(text))
	if err != nil {
		return err
	}
	*a = algo
	return nil
}

const djb2Seed = 5381

// Djb2 is Bernstein's hash, h = h*33 + b, widened to 64 bits.
func Djb2(b []byte) uint64 {
	h := uint64(djb2Seed)
	for _, c := range b {
		h = (h << 5) + h + uint64(c)
	}
	return h
}

// Sum64 hashes b with algo.
func Sum64(algo Algo, b []byte) uint64 {
	switch algo {
	case AlgoDjb2:
		return Djb2(b)
	case AlgoXXHash:
		return xxhash.Sum64(b)
	case AlgoXXH3:
		return xxh3.Hash(b)
	case AlgoFNV1a:
		return fnv1a.HashBytes64(b)
	default:
		panic(fmt.Sprintf("hashing: unknown algorithm %d", algo))
	}
}
