package bag

import "io"

// CapBuffer is a fixed-capacity write sink over a borrowed byte slice. It
// never grows: once full, writes store what still fits and report
// ErrWriterEOF.
type CapBuffer struct {
	buf []byte
	pos int
}

var _ io.Writer = (*CapBuffer)(nil)

// NewCapBuffer creates a CapBuffer whose capacity is len(buf).
func NewCapBuffer(buf []byte) *CapBuffer {
	if buf == nil {
		panic("bag: nil capacity buffer")
	}
	return &CapBuffer{buf: buf}
}

// Write appends p. If p does not fit entirely, the fitting prefix is stored
// and the partial count is returned with ErrWriterEOF.
func (b *CapBuffer) Write(p []byte) (int, error) {
	n := copy(b.buf[b.pos:], p)
	b.pos += n
	if n < len(p) {
		return n, ErrWriterEOF
	}
	return n, nil
}

// Bytes returns the stored bytes. The slice aliases the buffer.
func (b *CapBuffer) Bytes() []byte {
	return b.buf[:b.pos]
}

func (b *CapBuffer) Len() int {
	return b.pos
}

func (b *CapBuffer) Cap() int {
	return len(b.buf)
}

func (b *CapBuffer) Reset() {
	b.pos = 0
}
