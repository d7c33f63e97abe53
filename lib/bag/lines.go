package bag

import "io"

// LinesReader produces the given lines as text, appending a newline after
// every line. It reports io.EOF once every line has been read.
type LinesReader struct {
	lines []string

	// index of the line being read
	line int

	// number of bytes of the current line already read, a value of
	// len(line)+1 means the newline was emitted as well
	offset int
}

var _ io.Reader = (*LinesReader)(nil)

func NewLinesReader(lines []string) *LinesReader {
	return &LinesReader{lines: lines}
}

func (r *LinesReader) Read(p []byte) (int, error) {
	if r.line >= len(r.lines) {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && r.line < len(r.lines) {
		s := r.lines[r.line]
		if r.offset < len(s) {
			c := copy(p[n:], s[r.offset:])
			n += c
			r.offset += c
			continue
		}
		p[n] = '\n'
		n++
		r.line++
		r.offset = 0
	}
	return n, nil
}

// Remaining returns the number of bytes left to read.
func (r *LinesReader) Remaining() int {
	if r.line >= len(r.lines) {
		return 0
	}
	total := len(r.lines[r.line]) + 1 - r.offset
	for _, s := range r.lines[r.line+1:] {
		total += len(s) + 1
	}
	return total
}
