// Package strsearch finds byte patterns in byte strings.
package strsearch

import (
	"fmt"

	"pogus/lib/arena"
	"pogus/lib/span"
)

// SmallPattern is the pattern length below which Index keeps its failure
// table in a fixed array instead of allocating one.
const SmallPattern = 1 << 10

// FillLPS fills lps with the longest proper prefix of p that is also a suffix,
// for every prefix of p. lps must be exactly as long as p, and p must not be
// empty.
func FillLPS(lps []int, p []byte) {
	if len(lps) != len(p) {
		panic(fmt.Sprintf("strsearch: lps table length %d does not match pattern length %d", len(lps), len(p)))
	}
	k := 0
	lps[0] = 0
	for i := 1; i < len(p); {
		switch {
		case p[i] == p[k]:
			k++
			lps[i] = k
			i++
		case k != 0:
			k = lps[k-1]
		default:
			lps[i] = 0
			i++
		}
	}
}

// search runs Knuth-Morris-Pratt using lps as the failure table buffer.
func search(s, p []byte, lps []int) (int, bool) {
	FillLPS(lps, p)
	i, j := 0, 0
	for len(s)-i >= len(p)-j {
		if s[i] == p[j] {
			i++
			j++
			if j == len(p) {
				return i - j, true
			}
			continue
		}
		if j != 0 {
			j = lps[j-1]
		} else {
			i++
		}
	}
	return 0, false
}

func checkPattern(p []byte) {
	if len(p) == 0 {
		panic("strsearch: empty pattern")
	}
}

// Index returns the position of the first occurrence of p in s. p must not
// be empty.
func Index(s, p []byte) (int, bool) {
	checkPattern(p)
	if len(p) > len(s) {
		return 0, false
	}
	if len(p) < SmallPattern {
		var buf [SmallPattern]int
		return search(s, p, buf[:len(p)])
	}
	return search(s, p, make([]int, len(p)))
}

// IndexIn is Index with the failure table taken from al. The table is freed
// before returning.
func IndexIn(al arena.Allocator, s, p []byte) (int, bool, error) {
	checkPattern(p)
	if len(p) > len(s) {
		return 0, false, nil
	}
	lps, b, err := arena.AllocSliceBlock[int](al, len(p))
	if err != nil {
		return 0, false, fmt.Errorf("failed to allocate failure table for pattern of %d bytes: %w", len(p), err)
	}
	defer al.Free(b)
	i, ok := search(s, p, lps)
	return i, ok, nil
}

// CountPrefixRepeats returns how many copies of p follow each other at the
// start of s. It is 0 for an empty p.
func CountPrefixRepeats(s, p []byte) int {
	if len(p) == 0 {
		return 0
	}
	count := 0
	for span.HasPrefix(s, p) {
		count++
		s = span.Tail(s, len(p))
	}
	return count
}

// PrefixRepeat describes a prefix repeated Count times at the start of a
// string. Weight is the number of bytes the repetition saves,
// Count*len(Prefix) - len(Prefix).
type PrefixRepeat struct {
	Prefix []byte
	Count  int
	Weight int
}

// FindOptimalPrefixRepeat finds the prefix whose repetition at the start of s
// has the largest weight. The run of the first byte is the starting
// candidate; a longer prefix replaces the best only when its weight is
// strictly greater. Prefix aliases s.
func FindOptimalPrefixRepeat(s []byte) PrefixRepeat {
	if len(s) == 0 {
		return PrefixRepeat{}
	}
	run := 1
	for run < len(s) && s[run] == s[0] {
		run++
	}
	best := PrefixRepeat{Prefix: span.Head(s, 1), Count: run, Weight: run - 1}
	for l := 2; l <= len(s)/2; l++ {
		p := span.Head(s, l)
		c := CountPrefixRepeats(s, p)
		if w := c*l - l; w > best.Weight {
			best = PrefixRepeat{Prefix: p, Count: c, Weight: w}
		}
	}
	return best
}
