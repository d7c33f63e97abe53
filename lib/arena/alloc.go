package arena

import (
	"fmt"
	"sync"
	"unsafe"
)

// Allocator is the capability to get memory blocks. Blocks are released with
// Free; whether that actually reclaims memory is up to the implementation.
type Allocator interface {
	Alloc(size int) (Block, error)
	Free(b Block)
}

var (
	_ Allocator = (*Arena)(nil)
	_ Allocator = (*Locked)(nil)
)

// Scalar lists element types that hold no pointers and thus can live inside
// raw allocator memory.
type Scalar interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint | ~uintptr |
		~float32 | ~float64
}

// AllocSlice allocates a slice of n elements of type T from al. Memory comes
// from al and is released with it, so the slice must not outlive it.
// This ideally would be a method on Arena itself but go doesn't support
// generic methods.
func AllocSlice[T Scalar](al Allocator, n int) ([]T, error) {
	s, _, err := AllocSliceBlock[T](al, n)
	return s, err
}

// AllocSliceBlock is AllocSlice that also returns the underlying block, for
// callers that hand the memory back with Free.
func AllocSliceBlock[T Scalar](al Allocator, n int) ([]T, Block, error) {
	if n <= 0 {
		panic(fmt.Sprintf("arena: invalid slice length %d", n))
	}
	var zero T
	sz := int(unsafe.Sizeof(zero))
	b, err := al.Alloc(sz * n)
	if err != nil {
		return nil, Block{}, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b.Bytes[0])), n), b, nil
}

// Locked serializes access to an Arena with a mutex. Arena itself has no
// synchronization; use this only when an arena has to be shared.
type Locked struct {
	mu sync.Mutex
	a  *Arena
}

func NewLocked(a *Arena) *Locked {
	return &Locked{a: a}
}

func (l *Locked) Alloc(size int) (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(size)
}

func (l *Locked) Free(b Block) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Free(b)
}

// Left returns the number of bytes that can still be allocated.
func (l *Locked) Left() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Left()
}
