package bag

import (
	"errors"
	"io"

	"pogus/lib/osfile"
)

/*
	Package bag implements the byte-oriented I/O capabilities of the runtime.
	A reader is anything with a single Read operation and a writer is anything with
	a single Write operation, i.e. io.Reader and io.Writer. The package provides the
	concrete sources and sinks used by the runtime (file descriptors, in-memory
	capacity buffers, synthetic line generators) and the buffered Copy between them.

	All types here are single-owner and unsynchronized.
*/

// CopyBufferSize is the size of the intermediate buffer used by Copy.
const CopyBufferSize = 1 << 14

// ErrWriterEOF is returned by writers that cannot accept more bytes.
var ErrWriterEOF = errors.New("writer reached capacity")

// Copy drains r into w through a fixed 16KiB buffer until r reports io.EOF.
//
// A read that returns (0, nil) is retried. A read error other than io.EOF is
// returned right away, after the bytes that came along with it have been
// written. Writer errors are returned right away too. Nothing is retried.
// The returned count is the number of bytes successfully written, also when
// an error is returned.
func Copy(w io.Writer, r io.Reader) (int64, error) {
	var buf [CopyBufferSize]byte
	return copyBuffer(w, r, buf[:])
}

func copyBuffer(w io.Writer, r io.Reader, buf []byte) (int64, error) {
	var count int64
	for {
		nr, rerr := r.Read(buf)
		if nr > 0 {
			nw, werr := WriteAll(w, buf[:nr])
			count += int64(nw)
			if werr != nil {
				return count, werr
			}
		}
		switch {
		case rerr == io.EOF:
			return count, nil
		case rerr != nil:
			return count, rerr
		}
	}
}

// WriteAll keeps calling w.Write until b is written. A writer that makes no
// progress without reporting an error gets io.ErrShortWrite.
func WriteAll(w io.Writer, b []byte) (int, error) {
	count := 0
	for count < len(b) {
		n, err := w.Write(b[count:])
		count += n
		if err != nil {
			return count, err
		}
		if n == 0 {
			return count, io.ErrShortWrite
		}
	}
	return count, nil
}

// FDReader reads from a file descriptor. Each Read is a single read syscall.
type FDReader struct {
	FD int
}

var _ io.Reader = FDReader{}

func (r FDReader) Read(p []byte) (int, error) {
	return osfile.Read(r.FD, p)
}

// FDWriter writes to a file descriptor. Each Write is a single write syscall
// and may be partial.
type FDWriter struct {
	FD int
}

var _ io.Writer = FDWriter{}

func (w FDWriter) Write(p []byte) (int, error) {
	return osfile.Write(w.FD, p)
}

// Close closes the underlying descriptor.
func (w FDWriter) Close() error {
	return osfile.Close(w.FD)
}
