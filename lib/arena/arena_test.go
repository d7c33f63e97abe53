package arena

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"unsafe"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

func TestArena_AllocDisjointAligned(t *testing.T) {
	a := New(1 << 12)
	sizes := []int{1, 7, 8, 9, 123, 129, 23, 20, 1000}
	var blocks []Block
	total := 0
	for _, size := range sizes {
		before := a.Pos()
		b, err := a.Alloc(size)
		require.NoError(t, err)
		assert.Equal(t, uint64(before), b.ID)
		assert.GreaterOrEqual(t, b.Len(), size)
		assert.Equal(t, 0, b.Len()%8)
		assert.Equal(t, b.Len(), cap(b.Bytes))
		assert.Equal(t, uintptr(0), addr(b.Bytes)%8)
		total += b.Len()
		blocks = append(blocks, b)
	}
	assert.Equal(t, total, a.Pos()-int(blocks[0].ID))

	// write a distinct pattern into every block and verify nothing overlaps
	for i, b := range blocks {
		for j := range b.Bytes {
			b.Bytes[j] = byte(i + 1)
		}
	}
	for i, b := range blocks {
		for j := range b.Bytes {
			assert.Equal(t, byte(i+1), b.Bytes[j])
		}
	}
}

func TestArena_NoMemoryLeavesPosUnchanged(t *testing.T) {
	a := New(64)
	start := a.Pos()
	left := a.Left()
	for i := 0; i < left/16; i++ {
		_, err := a.Alloc(16)
		require.NoError(t, err)
	}
	pos := a.Pos()
	_, err := a.Alloc(1)
	assert.True(t, errors.Is(err, ErrNoMemory))
	assert.Equal(t, pos, a.Pos())
	assert.Equal(t, start+left, a.Pos())
	assert.Equal(t, uint64(1), a.Stats().Failures)
}

func TestArena_RandomSizesFitCapacity(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		a := New(1 << 14)
		used := 0
		for {
			size := 1 + rand.Intn(300)
			aligned := (size + 7) &^ 7
			b, err := a.Alloc(size)
			if used+aligned <= a.Limit()-int(a.start) {
				require.NoError(t, err)
				assert.Equal(t, aligned, b.Len())
				used += aligned
				continue
			}
			assert.True(t, errors.Is(err, ErrNoMemory))
			break
		}
	}
}

func TestArena_UnalignedBuffer(t *testing.T) {
	raw := make([]byte, 256)
	a := NewFromBuffer(raw[3:])
	b, err := a.Alloc(5)
	require.NoError(t, err)
	assert.Equal(t, uintptr(0), addr(b.Bytes)%8)
	assert.Equal(t, 8, b.Len())
}

func TestArena_InvalidRequestsPanic(t *testing.T) {
	a := New(64)
	assert.Panics(t, func() { a.Alloc(0) })
	assert.Panics(t, func() { a.Alloc(-1) })
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { NewFromBuffer(nil) })
}

func TestArena_Free(t *testing.T) {
	a := New(128)
	b, err := a.Alloc(16)
	require.NoError(t, err)
	pos := a.Pos()

	a.Free(b)
	a.Free(Block{})
	assert.Equal(t, pos, a.Pos())

	other := New(128)
	ob, err := other.Alloc(8)
	require.NoError(t, err)
	assert.Panics(t, func() { a.Free(ob) })
}

func TestArena_Reset(t *testing.T) {
	a := New(128)
	start := a.Pos()
	b, err := a.Alloc(32)
	require.NoError(t, err)
	for i := range b.Bytes {
		b.Bytes[i] = 0xFF
	}
	a.Reset()
	assert.Equal(t, start, a.Pos())
	b2, err := a.Alloc(32)
	require.NoError(t, err)
	assert.Equal(t, b.ID, b2.ID)
	for i := range b2.Bytes {
		assert.Equal(t, byte(0), b2.Bytes[i])
	}
	assert.Equal(t, uint64(1), a.Stats().Resets)
}

func TestAllocSlice(t *testing.T) {
	a := New(1 << 10)
	longs, err := AllocSlice[int64](a, 10)
	require.NoError(t, err)
	assert.Len(t, longs, 10)
	for i := range longs {
		longs[i] = int64(-i)
	}
	bytes, err := AllocSlice[byte](a, 3)
	require.NoError(t, err)
	bytes[0], bytes[1], bytes[2] = 1, 2, 3
	for i := range longs {
		assert.Equal(t, int64(-i), longs[i])
	}

	_, err = AllocSlice[uint64](a, 1<<10)
	assert.True(t, errors.Is(err, ErrNoMemory))
}

func TestLocked_Concurrent(t *testing.T) {
	l := NewLocked(New(1 << 20).WithName("locked_test"))
	wg := sync.WaitGroup{}
	var mu sync.Mutex
	seen := make(map[uint64]bool)
	for w := 0; w < 20; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b, err := l.Alloc(24)
				assert.NoError(t, err)
				mu.Lock()
				assert.False(t, seen[b.ID])
				seen[b.ID] = true
				mu.Unlock()
				l.Free(b)
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 2000)
}

func TestReportStats(t *testing.T) {
	a := New(64).WithName("report_test")
	_, err := a.Alloc(8)
	require.NoError(t, err)
	a.ReportStats()
	s := a.Stats()
	assert.Equal(t, uint64(1), s.Allocs)
	assert.Equal(t, uint64(8), s.Bytes)
	assert.Equal(t, "report_test", a.Name())
	assert.Equal(t, float64(1), testutil.ToFloat64(stats.WithLabelValues("allocs", "report_test")))
	assert.Equal(t, float64(8), testutil.ToFloat64(stats.WithLabelValues("used_bytes", "report_test")))
	assert.Equal(t, float64(64), testutil.ToFloat64(stats.WithLabelValues("limit_bytes", "report_test")))
}

var sink Block

func Benchmark_Alloc(b *testing.B) {
	a := New(1 << 24)
	for i := 0; i < b.N; i++ {
		blk, err := a.Alloc(64)
		if err != nil {
			a.Reset()
			continue
		}
		sink = blk
	}
}
