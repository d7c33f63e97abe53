package osfile

import (
	"errors"
	"fmt"
	"io"

	"pogus/lib/arena"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

const PageSize = 1 << 12

// Pages allocates memory in page-sized chunks directly from the operating
// system via anonymous private mappings. Unlike an arena, Free actually gives
// the memory back. It is meant for one-shot allocations that live long or are
// large (e.g. whole files).
type Pages struct{}

var _ arena.Allocator = Pages{}

func (Pages) Alloc(size int) (arena.Block, error) {
	if size <= 0 {
		panic(fmt.Sprintf("osfile: invalid allocation size %d", size))
	}
	n := (size + PageSize - 1) &^ (PageSize - 1)
	b, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return arena.Block{}, fmt.Errorf("mmap %d bytes: %w", n, err)
	}
	return arena.Block{Bytes: b}, nil
}

func (Pages) Free(b arena.Block) {
	if len(b.Bytes) == 0 {
		return
	}
	if err := unix.Munmap(b.Bytes); err != nil {
		panic(fmt.Sprintf("osfile: munmap: %v", err))
	}
}

// Blob is a file fully loaded into memory.
type Blob struct {
	// Block holds the loaded data. It may be longer than the data itself.
	Block arena.Block
	// Size is the actual blob size in bytes.
	Size int
}

// Data returns the loaded bytes.
func (b Blob) Data() []byte {
	if b.Size == 0 {
		return nil
	}
	return b.Block.Bytes[:b.Size]
}

// LoadFile reads the entire regular file at path into memory provided by al.
// An empty file yields a zero Blob without touching the allocator.
func LoadFile(al arena.Allocator, path string) (Blob, error) {
	size, err := Size(path)
	if err != nil {
		return Blob{}, err
	}
	if size == 0 {
		return Blob{}, nil
	}
	fd, err := Open(path)
	if err != nil {
		return Blob{}, err
	}
	defer func() {
		if err := Close(fd); err != nil {
			zap.L().Warn("failed to close loaded file", zap.String("path", path), zap.Error(err))
		}
	}()

	block, err := al.Alloc(int(size))
	if err != nil {
		return Blob{}, fmt.Errorf("load %s: %w", path, err)
	}
	n, err := ReadAll(fd, block.Bytes[:size])
	if err != nil && !errors.Is(err, io.EOF) {
		al.Free(block)
		return Blob{}, fmt.Errorf("load %s: %w", path, err)
	}
	// the file may have shrunk between stat and read
	return Blob{Block: block, Size: n}, nil
}
