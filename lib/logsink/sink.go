package logsink

import (
	"io"
	"time"

	"pogus/lib/bag"
	"pogus/lib/numfmt"
	"pogus/lib/osfile"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/raulk/clock"
	"go.uber.org/zap"
)

const (
	DefaultBufferSize = 1 << 14
	MinBufferSize     = 1 << 10
)

var flushes = promauto.NewCounter(prometheus.CounterOpts{
	Name: "logsink_flushes_total",
	Help: "Number of times a log sink wrote its buffer out",
})

var written = promauto.NewCounter(prometheus.CounterOpts{
	Name: "logsink_bytes_total",
	Help: "Bytes handed to log sink writers",
})

type options struct {
	bufferSize int
	clock      clock.Clock
}

type Option func(*options)

// WithBufferSize sets the size of the sink buffer. Sizes below
// MinBufferSize are raised to it.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n < MinBufferSize {
			n = MinBufferSize
		}
		o.bufferSize = n
	}
}

// WithClock sets the clock used to timestamp records.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// Sink buffers formatted log text and hands it to a writer when the buffer
// fills up, on Flush and on Close. A sink without a writer discards
// everything. Sink is not safe for concurrent use.
type Sink struct {
	buf    *numfmt.Buffer
	w      io.Writer
	closer io.Closer
	clock  clock.Clock
	start  time.Time
	err    error
}

// NewSink creates a sink writing to w. If w is an io.Closer, Close closes it.
// A nil w gives a discarding sink.
func NewSink(w io.Writer, opts ...Option) *Sink {
	o := options{bufferSize: DefaultBufferSize, clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Sink{
		buf:   numfmt.NewBuffer(make([]byte, o.bufferSize)),
		w:     w,
		clock: o.clock,
		start: o.clock.Now(),
	}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Open creates (or truncates) the file at path and returns a sink writing
// to it. If the file cannot be created, the failure is reported on the
// global zap logger and a discarding sink is returned.
func Open(path string, opts ...Option) *Sink {
	fd, err := osfile.Create(path)
	if err != nil {
		zap.L().Warn("could not open log file, discarding log output", zap.String("path", path), zap.Error(err))
		return NewSink(nil, opts...)
	}
	return NewSink(bag.FDWriter{FD: fd}, opts...)
}

// Elapsed returns the time since the sink was created.
func (s *Sink) Elapsed() time.Duration {
	return s.clock.Since(s.start)
}

// Discarding reports whether output is dropped.
func (s *Sink) Discarding() bool {
	return s.w == nil
}

// Err returns the first error returned by the writer, if any. Once a write
// failed, subsequent output is dropped.
func (s *Sink) Err() error {
	return s.err
}

// Buffered returns the number of bytes waiting for the next flush.
func (s *Sink) Buffered() int {
	return s.buf.Len()
}

func (s *Sink) Flush() {
	if s.buf.Len() == 0 {
		return
	}
	s.write(s.buf.Head())
	s.buf.Reset()
	flushes.Inc()
}

// Close flushes and closes the writer. Calling Close again does nothing.
func (s *Sink) Close() error {
	if s.w == nil {
		s.buf.Reset()
		return nil
	}
	s.Flush()
	closer := s.closer
	s.w, s.closer = nil, nil
	if closer != nil {
		if err := closer.Close(); err != nil && s.err == nil {
			s.err = err
		}
	}
	return s.err
}

func (s *Sink) write(b []byte) {
	if s.w == nil || s.err != nil {
		return
	}
	for len(b) > 0 {
		n, err := s.w.Write(b)
		written.Add(float64(n))
		if err != nil {
			s.err = err
			return
		}
		if n == 0 {
			s.err = io.ErrShortWrite
			return
		}
		b = b[n:]
	}
}

// reserve flushes unless n more bytes fit in the buffer.
func (s *Sink) reserve(n int) {
	if s.buf.Left() < n {
		s.Flush()
	}
}

func (s *Sink) putStr(str string) {
	if len(str) == 0 {
		return
	}
	if len(str) >= s.buf.Cap()/2 {
		s.Flush()
		s.write([]byte(str))
		return
	}
	s.reserve(len(str))
	s.buf.PutStr(str)
}

func (s *Sink) putByte(c byte) {
	s.reserve(1)
	s.buf.PutByte(c)
}

func (s *Sink) putU64(x uint64) {
	s.reserve(numfmt.MaxDecU64Len)
	s.buf.PutDecU64(x)
}

func (s *Sink) putS64(x int64) {
	s.reserve(numfmt.MaxDecS64Len)
	s.buf.PutDecS64(x)
}

func (s *Sink) putHexU64(x uint64) {
	s.reserve(numfmt.HexU64Len)
	s.buf.PutHexU64(x)
}

func (s *Sink) putElapsed() {
	s.reserve(numfmt.MaxElapsedMicroLen)
	s.buf.PutElapsedMicro(s.Elapsed())
}
