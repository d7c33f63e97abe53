package osfile

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sys/unix"
)

/*
	Package osfile is the thin boundary between the runtime and the operating
	system. Every call maps to exactly one syscall (open, read, write, close, stat,
	mmap, munmap) except the *All helpers, which loop until the request is done.

	Errors returned by the kernel are passed through as unix.Errno wrapped with
	the name of the operation, so errors.Is(err, unix.ENOENT) (or os.ErrNotExist)
	works for callers.
*/

const (
	// MaxPathLength is the longest path (in bytes) accepted by this package.
	MaxPathLength = 1 << 14

	Stdin  = 0
	Stdout = 1
	Stderr = 2
)

var ErrLongPath = errors.New("path too long")

func checkPath(path string) error {
	if len(path) == 0 {
		panic("osfile: empty path")
	}
	if len(path) >= MaxPathLength {
		return fmt.Errorf("%w: %d bytes", ErrLongPath, len(path))
	}
	return nil
}

func openFile(path string, flags int, mode uint32) (int, error) {
	if err := checkPath(path); err != nil {
		return -1, err
	}
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, mode)
	if err != nil {
		return -1, fmt.Errorf("open %s: %w", path, err)
	}
	return fd, nil
}

// Open opens an existing file for reading.
func Open(path string) (int, error) {
	return openFile(path, unix.O_RDONLY, 0)
}

// Create opens a file for writing, creating it if needed and truncating it
// otherwise.
func Create(path string) (int, error) {
	return openFile(path, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, 0644)
}

func Close(fd int) error {
	if err := unix.Close(fd); err != nil {
		return fmt.Errorf("close fd %d: %w", fd, err)
	}
	return nil
}

// Read performs a single read syscall. It returns io.EOF when the kernel
// reports zero bytes for a non-empty buffer.
func Read(fd int, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, err := unix.Read(fd, b)
	if err != nil {
		return 0, fmt.Errorf("read fd %d: %w", fd, err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write performs a single write syscall. It may write less than len(b).
func Write(fd int, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, err := unix.Write(fd, b)
	if err != nil {
		return 0, fmt.Errorf("write fd %d: %w", fd, err)
	}
	return n, nil
}

// WriteAll keeps writing until all of b is written or an error occurs. The
// returned count is valid even when err != nil.
func WriteAll(fd int, b []byte) (int, error) {
	count := 0
	for count < len(b) {
		n, err := Write(fd, b[count:])
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

// ReadAll reads until buf is full or EOF is reached. On EOF the bytes read so
// far are returned together with io.EOF.
func ReadAll(fd int, buf []byte) (int, error) {
	count := 0
	for count < len(buf) {
		n, err := Read(fd, buf[count:])
		count += n
		if err != nil {
			return count, err
		}
	}
	return count, nil
}

// Size returns the size in bytes of the file at path.
func Size(path string) (int64, error) {
	if err := checkPath(path); err != nil {
		return 0, err
	}
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return st.Size, nil
}
