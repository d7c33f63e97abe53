package numfmt

import "time"

const (
	// MaxDecU64Len is the maximum number of digits needed to format any uint64.
	MaxDecU64Len = 20
	// MaxDecS64Len additionally accounts for the minus sign.
	MaxDecS64Len = MaxDecU64Len + 1

	HexU64Len = 16
	HexU32Len = 8

	// MaxElapsedMicroLen is the maximum length of FormatElapsedMicro output:
	// seconds, a dot and six fraction digits.
	MaxElapsedMicroLen = MaxDecU64Len + 1 + 6
)

func decDigit(x byte) byte {
	return x + '0'
}

func hexDigit(x byte) byte {
	if x <= 9 {
		return decDigit(x)
	}
	return x - 10 + 'A'
}

// reverseDec puts decimal digits of x into p, least significant first, and
// returns the number of digits. p must hold at least MaxDecU64Len bytes.
func reverseDec(p []byte, x uint64) int {
	i := 0
	for {
		p[i] = decDigit(byte(x % 10))
		x /= 10
		i++
		if x == 0 {
			return i
		}
	}
}

func reverseCopy(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[n-1-i] = src[i]
	}
}

// PutDecU64 writes x as decimal text into buf and returns the number of bytes
// written. There are no boundary checks: buf must have room for all digits
// (MaxDecU64Len bytes always suffice).
func PutDecU64(buf []byte, x uint64) int {
	var digits [MaxDecU64Len]byte
	n := reverseDec(digits[:], x)
	reverseCopy(buf[:n], digits[:n])
	return n
}

// PutDecS64 is the unchecked signed variant of PutDecU64.
func PutDecS64(buf []byte, x int64) int {
	if x >= 0 {
		return PutDecU64(buf, uint64(x))
	}
	buf[0] = '-'
	return PutDecU64(buf[1:], uint64(-x)) + 1
}

// FormatDecU64 puts x into buf as decimal text. Returns the number of bytes
// written or 0 if buf does not have enough room; nothing is written then.
func FormatDecU64(buf []byte, x uint64) int {
	if len(buf) == 0 {
		return 0
	}
	if len(buf) >= MaxDecU64Len {
		return PutDecU64(buf, x)
	}
	var digits [MaxDecU64Len]byte
	n := reverseDec(digits[:], x)
	if n > len(buf) {
		return 0
	}
	reverseCopy(buf[:n], digits[:n])
	return n
}

// FormatDecS64 is the checked signed variant of FormatDecU64.
func FormatDecS64(buf []byte, x int64) int {
	if x >= 0 {
		return FormatDecU64(buf, uint64(x))
	}
	if len(buf) < 2 {
		return 0
	}
	// uint64(-x) is correct for math.MinInt64 as well because of wrap around
	n := FormatDecU64(buf[1:], uint64(-x))
	if n == 0 {
		return 0
	}
	buf[0] = '-'
	return n + 1
}

// PutHexByte writes two uppercase hex digits of x. buf must hold 2 bytes.
func PutHexByte(buf []byte, x byte) {
	buf[0] = hexDigit(x >> 4)
	buf[1] = hexDigit(x & 0xF)
}

// PutHexU64 writes x as 16 hex digits padded with zeroes.
// buf must hold HexU64Len bytes.
func PutHexU64(buf []byte, x uint64) {
	_ = buf[HexU64Len-1]
	for i := HexU64Len - 1; i >= 0; i-- {
		buf[i] = hexDigit(byte(x & 0xF))
		x >>= 4
	}
}

// PutHexU32 writes x as 8 hex digits padded with zeroes.
// buf must hold HexU32Len bytes.
func PutHexU32(buf []byte, x uint32) {
	_ = buf[HexU32Len-1]
	for i := HexU32Len - 1; i >= 0; i-- {
		buf[i] = hexDigit(byte(x & 0xF))
		x >>= 4
	}
}

// FormatHexU64 returns either 0 (buf too small) or 16.
func FormatHexU64(buf []byte, x uint64) int {
	if len(buf) < HexU64Len {
		return 0
	}
	PutHexU64(buf, x)
	return HexU64Len
}

// FormatHexU32 returns either 0 (buf too small) or 8.
func FormatHexU32(buf []byte, x uint32) int {
	if len(buf) < HexU32Len {
		return 0
	}
	PutHexU32(buf, x)
	return HexU32Len
}

// PutElapsedMicro writes d as seconds with microsecond precision, e.g.
// "12.000345". Negative durations are written as zero. buf must hold
// MaxElapsedMicroLen bytes.
func PutElapsedMicro(buf []byte, d time.Duration) int {
	if d < 0 {
		d = 0
	}
	us := uint64(d / time.Microsecond)
	n := PutDecU64(buf, us/1_000_000)
	buf[n] = '.'
	n++
	frac := us % 1_000_000
	for i := 5; i >= 0; i-- {
		buf[n+i] = decDigit(byte(frac % 10))
		frac /= 10
	}
	return n + 6
}

// FormatElapsedMicro is the checked variant of PutElapsedMicro.
func FormatElapsedMicro(buf []byte, d time.Duration) int {
	if len(buf) >= MaxElapsedMicroLen {
		return PutElapsedMicro(buf, d)
	}
	var tmp [MaxElapsedMicroLen]byte
	n := PutElapsedMicro(tmp[:], d)
	if n > len(buf) {
		return 0
	}
	copy(buf, tmp[:n])
	return n
}
