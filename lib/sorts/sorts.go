// Package sorts sorts int64 slices in place.
package sorts

import "pogus/lib/span"

// below this length QuickSortS64 hands over to InsertSortS64
const cutoff = 16

// IsSortedAscS64 reports whether s is in non-decreasing order.
func IsSortedAscS64(s []int64) bool {
	for i := 1; i < len(s); i++ {
		if s[i-1] > s[i] {
			return false
		}
	}
	return true
}

// InsertSortS64 sorts s by moving the minimum of the unsorted rest to its
// front, one position at a time. Meant for short slices.
func InsertSortS64(s []int64) {
	if len(s) < 2 {
		return
	}
	for j := range s {
		q := j
		for i := j + 1; i < len(s); i++ {
			if s[i] < s[q] {
				q = i
			}
		}
		s[j], s[q] = s[q], s[j]
	}
}

// QuickSortS64 sorts s with the middle element as pivot.
//
// Partitioning is Lomuto with a strict less-than, so runs of equal keys all
// land on one side: an input of n equal values takes O(n^2) comparisons and
// recursion n levels deep.
func QuickSortS64(s []int64) {
	if len(s) <= cutoff {
		InsertSortS64(s)
		return
	}

	m := len(s) >> 1
	s[0], s[m] = s[m], s[0]

	j := 0
	for i := 1; i < len(s); i++ {
		if s[i] < s[0] {
			j++
			s[i], s[j] = s[j], s[i]
		}
	}
	s[0], s[j] = s[j], s[0]

	QuickSortS64(span.Head(s, j))
	QuickSortS64(span.Tail(s, j+1))
}
