package numfmt

import (
	"errors"
	"math"
)

var (
	ErrEmptyString      = errors.New("empty string")
	ErrBadIntegerFormat = errors.New("bad integer format")
	ErrIntegerOverflow  = errors.New("integer overflow")
)

func isDecDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// ParseDecU64 parses a uint64 from decimal text. The text must not contain
// signs, spaces or any other non-digit characters.
func ParseDecU64(s string) (uint64, error) {
	if len(s) == 0 {
		return 0, ErrEmptyString
	}
	if len(s) > MaxDecU64Len {
		return 0, ErrIntegerOverflow
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDecDigit(c) {
			return 0, ErrBadIntegerFormat
		}
		d := uint64(c - '0')
		// overflow is only possible for 20 digit inputs
		if n > (math.MaxUint64-d)/10 {
			return 0, ErrIntegerOverflow
		}
		n = n*10 + d
	}
	return n, nil
}

// ParseDecS64 parses an int64 from decimal text with an optional leading '-'.
func ParseDecS64(s string) (int64, error) {
	neg := false
	if len(s) != 0 && s[0] == '-' {
		neg = true
		s = s[1:]
		if len(s) == 0 {
			return 0, ErrBadIntegerFormat
		}
	}
	n, err := ParseDecU64(s)
	if err != nil {
		return 0, err
	}
	if neg {
		if n > uint64(math.MaxInt64)+1 {
			return 0, ErrIntegerOverflow
		}
		return -int64(n), nil
	}
	if n > math.MaxInt64 {
		return 0, ErrIntegerOverflow
	}
	return int64(n), nil
}
