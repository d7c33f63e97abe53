package span

import (
	"fmt"
	"unsafe"
)

// Head returns the first n elements of s. It panics if n > len(s).
func Head[T any](s []T, n int) []T {
	if n < 0 || n > len(s) {
		panic(fmt.Sprintf("span: head %d out of range [0:%d]", n, len(s)))
	}
	if n == 0 {
		return nil
	}
	return s[:n:n]
}

// Tail returns s without its first n elements. It panics if n > len(s).
func Tail[T any](s []T, n int) []T {
	if n < 0 || n > len(s) {
		panic(fmt.Sprintf("span: tail %d out of range [0:%d]", n, len(s)))
	}
	if n == len(s) {
		return nil
	}
	return s[n:]
}

// Copy copies min(len(dst), len(src)) elements and returns that number.
// dst and src must not overlap; spans starting at the same element panic.
func Copy[T any](dst, src []T) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	if n == 0 {
		return 0
	}
	if unsafe.Pointer(&dst[0]) == unsafe.Pointer(&src[0]) {
		panic("span: copy between aliased spans")
	}
	return copy(dst[:n], src[:n])
}

// Equal reports whether a and b hold the same bytes.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 || &a[0] == &b[0] {
		return true
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether s begins with prefix.
func HasPrefix(s, prefix []byte) bool {
	if len(s) < len(prefix) {
		return false
	}
	return Equal(Head(s, len(prefix)), prefix)
}

// Fill efficiently fills a slice to its length with the given value.
func Fill[T any](s []T, elem T) {
	l := len(s)
	if l == 0 {
		return
	}
	s[0] = elem
	for j := 1; j < l; j *= 2 {
		copy(s[j:], s[:j])
	}
}

// Limit returns a full subslice of the given slice, but ensures that the
// capacity of the subslice is the same as its length. This ensures that the
// subslice is copied on append instead of modifying the underlying array,
// which matters when many small spans are laid out back to back in one region.
func Limit[T any](s []T) []T {
	l := len(s)
	return s[:l:l]
}
