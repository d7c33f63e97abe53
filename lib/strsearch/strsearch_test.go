package strsearch

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"pogus/lib/arena"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "AAAAAAAAAAAAAABAAAAAAAAAAAAAAB"

func TestIndex(t *testing.T) {
	scenarios := []struct {
		s, p  string
		index int
		ok    bool
	}{
		{sample, "AAB", 12, true},
		{sample, "B", 14, true},
		{sample, "BA", 14, true},
		{sample, "AB" + "A", 13, true},
		{sample, sample, 0, true},
		{sample, sample + "A", 0, false},
		{sample, "C", 0, false},
		{"ababcabcabababd", "ababd", 10, true},
		{"aaaaaaaab", "aaab", 5, true},
		{"abc", "c", 2, true},
		{"", "a", 0, false},
		{"abxabcabcaby", "abcaby", 6, true},
	}
	for _, scenario := range scenarios {
		i, ok := Index([]byte(scenario.s), []byte(scenario.p))
		assert.Equal(t, scenario.ok, ok, "%q in %q", scenario.p, scenario.s)
		if scenario.ok {
			assert.Equal(t, scenario.index, i, "%q in %q", scenario.p, scenario.s)
		}
	}
	assert.Panics(t, func() { Index([]byte("abc"), nil) })
}

func TestIndexMatchesBytesIndex(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	al := arena.New(1 << 16)
	for n := 0; n < 2000; n++ {
		s := make([]byte, rng.Intn(64))
		for i := range s {
			s[i] = 'a' + byte(rng.Intn(3))
		}
		p := make([]byte, 1+rng.Intn(5))
		for i := range p {
			p[i] = 'a' + byte(rng.Intn(3))
		}
		expected := bytes.Index(s, p)
		i, ok := Index(s, p)
		assert.Equal(t, expected >= 0, ok, "%q in %q", p, s)
		if ok {
			assert.Equal(t, expected, i)
		}

		j, ok2, err := IndexIn(al, s, p)
		require.NoError(t, err)
		assert.Equal(t, ok, ok2)
		assert.Equal(t, i, j)
		al.Reset()
	}
}

func TestIndexLargePattern(t *testing.T) {
	p := bytes.Repeat([]byte("xy"), SmallPattern)
	s := append(bytes.Repeat([]byte("x"), 100), p...)
	i, ok := Index(s, p)
	require.True(t, ok)
	assert.Equal(t, 100, i)

	_, ok = Index(s[:len(s)-1], p)
	assert.False(t, ok)
}

func TestIndexIn(t *testing.T) {
	s := []byte(sample)
	al := arena.New(64)
	i, ok, err := IndexIn(al, s, []byte("AAB"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 12, i)

	// the failure table of a pattern this long does not fit
	_, _, err = IndexIn(al, s, []byte(sample[:10]))
	assert.True(t, errors.Is(err, arena.ErrNoMemory))

	_, ok, err = IndexIn(al, []byte("ab"), []byte("abc"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFillLPS(t *testing.T) {
	scenarios := []struct {
		p   string
		lps []int
	}{
		{"A", []int{0}},
		{"AAB", []int{0, 1, 0}},
		{"AAAA", []int{0, 1, 2, 3}},
		{"ABCDE", []int{0, 0, 0, 0, 0}},
		{"AABAACAABAA", []int{0, 1, 0, 1, 2, 0, 1, 2, 3, 4, 5}},
		{"AAACAAAAAC", []int{0, 1, 2, 0, 1, 2, 3, 3, 3, 4}},
	}
	for _, scenario := range scenarios {
		lps := make([]int, len(scenario.p))
		FillLPS(lps, []byte(scenario.p))
		assert.Equal(t, scenario.lps, lps, scenario.p)
	}
	assert.Panics(t, func() { FillLPS(make([]int, 2), []byte("abc")) })
}

func TestCountPrefixRepeats(t *testing.T) {
	s := []byte(sample)
	assert.Equal(t, 0, CountPrefixRepeats(s, []byte("AAB")))
	assert.Equal(t, 14, CountPrefixRepeats(s, []byte("A")))
	assert.Equal(t, 7, CountPrefixRepeats(s, []byte("AA")))
	assert.Equal(t, 2, CountPrefixRepeats(s, s[:15]))
	assert.Equal(t, 1, CountPrefixRepeats(s, s))
	assert.Equal(t, 0, CountPrefixRepeats(s, nil))
	assert.Equal(t, 0, CountPrefixRepeats(nil, []byte("A")))
	assert.Equal(t, 3, CountPrefixRepeats([]byte("abababa"), []byte("ab")))
}

func TestFindOptimalPrefixRepeat(t *testing.T) {
	best := FindOptimalPrefixRepeat([]byte(sample))
	assert.Equal(t, sample[:15], string(best.Prefix))
	assert.Equal(t, 2, best.Count)
	assert.Equal(t, 15, best.Weight)
	assert.Equal(t, 30, best.Count*len(best.Prefix))

	best = FindOptimalPrefixRepeat([]byte("aaaa"))
	assert.Equal(t, PrefixRepeat{Prefix: []byte("a"), Count: 4, Weight: 3}, best)

	best = FindOptimalPrefixRepeat([]byte("abab"))
	assert.Equal(t, PrefixRepeat{Prefix: []byte("ab"), Count: 2, Weight: 2}, best)

	best = FindOptimalPrefixRepeat([]byte("abcabcabcx"))
	assert.Equal(t, "abc", string(best.Prefix))
	assert.Equal(t, 3, best.Count)
	assert.Equal(t, 6, best.Weight)

	best = FindOptimalPrefixRepeat([]byte("z"))
	assert.Equal(t, PrefixRepeat{Prefix: []byte("z"), Count: 1, Weight: 0}, best)

	assert.Equal(t, PrefixRepeat{}, FindOptimalPrefixRepeat(nil))
}

func BenchmarkIndex(b *testing.B) {
	s := bytes.Repeat([]byte(sample), 1000)
	p := []byte("AAAAAAAAAAAAAAC")
	for n := 0; n < b.N; n++ {
		Index(s, p)
	}
}
