package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"pogus/lib/span"
)

/*
	Arena is a bump allocator over a single fixed-size region of memory. Every
	allocation moves the position (high-water mark) forward by the requested size
	rounded up to 8 bytes, so all blocks handed out are 8-byte aligned and laid out
	back to back in the region.

	Blocks are never reclaimed individually: Free is a no-op. Memory is given back
	all at once when the owner drops the arena (or rewinds it with Reset) at the end
	of its scope.

	Arena is NOT safe for concurrent use. It is meant to be owned by a single
	goroutine (one arena per process scope or per worker). Callers that really need
	to share one must serialize access themselves, e.g. with Locked.
*/

var ErrNoMemory = errors.New("arena: not enough memory")

const align = 8

// Block is a chunk of memory handed out by an Allocator. It does not own the
// memory, the allocator does.
type Block struct {
	Bytes []byte
	// ID keeps track of block origin. For arena blocks it is the position of
	// the arena at allocation time, so it is unique within one arena generation.
	ID uint64
}

// Len returns the number of usable bytes in the block.
func (b Block) Len() int {
	return len(b.Bytes)
}

type Arena struct {
	name  string
	buf   []byte
	start int // alignment offset of buf, position after New or Reset
	pos   int
	limit int
	stats counters
}

// New creates an Arena backed by a freshly allocated region of size bytes.
func New(size int) *Arena {
	if size <= 0 {
		panic(fmt.Sprintf("arena: invalid size %d", size))
	}
	return NewFromBuffer(make([]byte, size))
}

// NewFromBuffer creates an Arena that hands out memory from buf. The arena
// takes ownership of buf; callers must not use it afterwards.
func NewFromBuffer(buf []byte) *Arena {
	if len(buf) == 0 {
		panic("arena: empty backing buffer")
	}
	start := alignOffset(unsafe.Pointer(&buf[0]))
	if start > len(buf) {
		start = len(buf)
	}
	return &Arena{
		buf:   buf,
		start: start,
		pos:   start,
		limit: len(buf),
	}
}

// WithName sets the name under which stats of this arena are reported.
func (a *Arena) WithName(name string) *Arena {
	a.name = name
	return a
}

func (a *Arena) Name() string {
	return a.name
}

// Alloc hands out a block of at least size bytes. The size is rounded up to
// a multiple of 8. If not enough memory is left, ErrNoMemory is returned and
// the arena is left untouched.
//
// Requested size must be greater than zero.
func (a *Arena) Alloc(size int) (Block, error) {
	if size <= 0 {
		panic(fmt.Sprintf("arena: invalid allocation size %d", size))
	}
	report := shouldReport()
	defer func() {
		if report {
			a.ReportStats()
		}
	}()

	n := alignUp(size)
	if n < size || a.limit-a.pos < n {
		a.stats.failures++
		return Block{}, fmt.Errorf("%w: requested %d bytes, %d left", ErrNoMemory, size, a.limit-a.pos)
	}
	b := Block{
		Bytes: span.Limit(a.buf[a.pos : a.pos+n]),
		ID:    uint64(a.pos),
	}
	a.pos += n
	a.stats.allocs++
	a.stats.bytes += uint64(n)
	return b, nil
}

// Free is a no-op: the arena never reclaims individual blocks. It only checks
// that non-empty blocks actually come from this arena.
func (a *Arena) Free(b Block) {
	if len(b.Bytes) == 0 {
		return
	}
	if !a.owns(b.Bytes) {
		panic("arena: free of a block that does not belong to the arena")
	}
}

// Reset rewinds the arena to its initial position and zeroes the memory that
// was in use. All previously returned blocks become invalid.
func (a *Arena) Reset() {
	span.Fill(a.buf[a.start:a.pos], 0)
	a.pos = a.start
	a.stats.resets++
}

// Pos returns the current position (high-water mark) relative to the region start.
func (a *Arena) Pos() int {
	return a.pos
}

// Limit returns the size of the backing region.
func (a *Arena) Limit() int {
	return a.limit
}

// Left returns the number of bytes that can still be allocated.
func (a *Arena) Left() int {
	return a.limit - a.pos
}

func (a *Arena) owns(b []byte) bool {
	base := uintptr(unsafe.Pointer(&a.buf[0]))
	p := uintptr(unsafe.Pointer(&b[0]))
	return p >= base && p+uintptr(len(b)) <= base+uintptr(a.pos)
}

func alignUp(n int) int {
	const mask = align - 1
	return (n + mask) &^ mask
}

func alignOffset(p unsafe.Pointer) int {
	addr := uintptr(p)
	const mask = align - 1
	return int(((addr + mask) &^ mask) - addr)
}
