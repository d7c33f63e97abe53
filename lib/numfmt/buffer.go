package numfmt

import (
	"io"
	"time"
)

// Buffer accumulates formatted text inside a borrowed byte slice. It never
// grows: Put* methods are unchecked and panic when the text does not fit, so
// callers size the buffer up front (or check Left).
type Buffer struct {
	buf  []byte
	len_ int
}

// NewBuffer creates a Buffer that writes into b. b must not be empty.
func NewBuffer(b []byte) *Buffer {
	if len(b) == 0 {
		panic("numfmt: empty buffer")
	}
	return &Buffer{buf: b}
}

// Head returns the text written so far.
func (b *Buffer) Head() []byte {
	return b.buf[:b.len_]
}

// Tail returns the unoccupied portion of the buffer.
func (b *Buffer) Tail() []byte {
	return b.buf[b.len_:]
}

func (b *Buffer) String() string {
	return string(b.Head())
}

func (b *Buffer) Len() int {
	return b.len_
}

func (b *Buffer) Cap() int {
	return len(b.buf)
}

func (b *Buffer) Left() int {
	return len(b.buf) - b.len_
}

func (b *Buffer) Reset() {
	b.len_ = 0
}

func (b *Buffer) PutStr(s string) {
	if len(s) == 0 {
		return
	}
	if len(s) > b.Left() {
		panic("numfmt: buffer overflow")
	}
	b.len_ += copy(b.Tail(), s)
}

func (b *Buffer) PutBytes(s []byte) {
	if len(s) > b.Left() {
		panic("numfmt: buffer overflow")
	}
	b.len_ += copy(b.Tail(), s)
}

func (b *Buffer) PutByte(c byte) {
	b.buf[b.len_] = c
	b.len_++
}

func (b *Buffer) PutNewline() {
	b.PutByte('\n')
}

func (b *Buffer) PutSpace() {
	b.PutByte(' ')
}

func (b *Buffer) PutDecU64(x uint64) {
	b.len_ += PutDecU64(b.Tail(), x)
}

func (b *Buffer) PutDecS64(x int64) {
	b.len_ += PutDecS64(b.Tail(), x)
}

func (b *Buffer) PutHexU64(x uint64) {
	PutHexU64(b.Tail(), x)
	b.len_ += HexU64Len
}

func (b *Buffer) PutHexU32(x uint32) {
	PutHexU32(b.Tail(), x)
	b.len_ += HexU32Len
}

// PutHexBytes writes every byte of s as two hex digits, separated by spaces.
func (b *Buffer) PutHexBytes(s []byte) {
	if len(s) == 0 {
		return
	}
	if 3*len(s)-1 > b.Left() {
		panic("numfmt: buffer overflow")
	}
	PutHexByte(b.Tail(), s[0])
	b.len_ += 2
	for _, c := range s[1:] {
		b.PutSpace()
		PutHexByte(b.Tail(), c)
		b.len_ += 2
	}
}

func (b *Buffer) PutElapsedMicro(d time.Duration) {
	b.len_ += PutElapsedMicro(b.Tail(), d)
}

// WriteTo writes the accumulated text to w. The buffer is not reset.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Head())
	return int64(n), err
}
