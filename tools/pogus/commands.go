package main

import (
	"fmt"
	"io"

	"pogus/harness"
	"pogus/lib/arena"
	"pogus/lib/bag"
	"pogus/lib/biski"
	"pogus/lib/crc"
	"pogus/lib/hashing"
	"pogus/lib/logsink"
	"pogus/lib/numfmt"
	"pogus/lib/osfile"
	"pogus/lib/sorts"
	"pogus/lib/strsearch"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

const outBufferSize = 1 << 15

type cli struct {
	ctx    *harness.Context
	stdout io.Writer
	stderr io.Writer
}

// out returns a format buffer for one command's output.
func (c *cli) out() *numfmt.Buffer {
	return numfmt.NewBuffer(make([]byte, outBufferSize))
}

// emit writes the buffer to stdout and resets it.
func (c *cli) emit(buf *numfmt.Buffer) error {
	_, err := bag.WriteAll(c.stdout, buf.Head())
	buf.Reset()
	return err
}

func (c *cli) fail(log logsink.Logger, msg string, err error) {
	log.Error(msg, logsink.Str("error", err.Error()))
	fmt.Fprintf(c.stderr, "%s: %v\n", msg, err)
}

func (c *cli) copy(cmd *CopyCmd) int {
	log := c.ctx.Spawn("copy")
	in, err := osfile.Open(cmd.Src)
	if err != nil {
		c.fail(log, "could not open source", err)
		return exitOpen
	}
	defer osfile.Close(in)
	out, err := osfile.Create(cmd.Dst)
	if err != nil {
		c.fail(log, "could not create destination", err)
		return exitOpen
	}
	w := bag.FDWriter{FD: out}
	n, err := bag.Copy(w, bag.FDReader{FD: in})
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		c.fail(log, "copy failed", err)
		return exitTransfer
	}
	log.Info("copied", logsink.Str("src", cmd.Src), logsink.Str("dst", cmd.Dst), logsink.U64("bytes", uint64(n)))
	return exitOK
}

func checksumFile(path string) (uint32, int64, error) {
	fd, err := osfile.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer osfile.Close(fd)
	h := crc.New()
	n, err := bag.Copy(h, bag.FDReader{FD: fd})
	if err != nil {
		return 0, n, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return h.Sum32(), n, nil
}

func (c *cli) crc(cmd *CrcCmd) int {
	log := c.ctx.Spawn("crc")
	sums := make([]uint32, len(cmd.Files))
	total := atomic.NewInt64(0)
	eg := &errgroup.Group{}
	for i := range cmd.Files {
		i := i
		eg.Go(func() error {
			sum, n, err := checksumFile(cmd.Files[i])
			sums[i] = sum
			total.Add(n)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		c.fail(log, "checksum failed", err)
		return exitFailure
	}
	log.Info("checksummed", logsink.U64("files", uint64(len(cmd.Files))), logsink.S64("bytes", total.Load()))

	buf := c.out()
	for i, path := range cmd.Files {
		if buf.Left() < numfmt.HexU32Len+len(path)+3 {
			if err := c.emit(buf); err != nil {
				return exitFailure
			}
		}
		buf.PutHexU32(sums[i])
		buf.PutStr("  ")
		buf.PutStr(path)
		buf.PutNewline()
		log.Debug("checksum", logsink.Str("path", path), logsink.U64("crc", uint64(sums[i])))
	}
	if err := c.emit(buf); err != nil {
		return exitFailure
	}
	return exitOK
}

func (c *cli) lines(cmd *LinesCmd) int {
	log := c.ctx.Spawn("lines")
	fd, err := osfile.Create(cmd.Out)
	if err != nil {
		c.fail(log, "could not create output", err)
		return exitOpen
	}
	w := bag.FDWriter{FD: fd}
	n, err := bag.Copy(w, bag.NewLinesReader(cmd.Lines))
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		c.fail(log, "write failed", err)
		return exitTransfer
	}
	log.Info("lines written", logsink.U64("lines", uint64(len(cmd.Lines))), logsink.U64("bytes", uint64(n)))
	return exitOK
}

func (c *cli) kmp(cmd *KmpCmd) int {
	log := c.ctx.Spawn("kmp")
	if cmd.Pattern == "" {
		c.fail(log, "invalid pattern", fmt.Errorf("pattern must not be empty"))
		return exitUsage
	}
	s, p := []byte(cmd.Text), []byte(cmd.Pattern)

	buf := c.out()
	i, ok, err := strsearch.IndexIn(c.ctx.Arena, s, p)
	if err != nil {
		c.fail(log, "search failed", err)
		return exitFailure
	}
	if ok {
		buf.PutDecU64(uint64(i))
	} else {
		buf.PutStr("not found")
	}
	buf.PutNewline()

	buf.PutStr("prefix repeats: ")
	buf.PutDecU64(uint64(strsearch.CountPrefixRepeats(s, p)))
	buf.PutNewline()

	best := strsearch.FindOptimalPrefixRepeat(s)
	buf.PutStr("best prefix: ")
	if err := c.emit(buf); err != nil {
		return exitFailure
	}
	if _, err := bag.WriteAll(c.stdout, best.Prefix); err != nil {
		return exitFailure
	}
	buf.PutNewline()
	buf.PutStr("best count: ")
	buf.PutDecU64(uint64(best.Count))
	buf.PutNewline()
	buf.PutStr("best total length: ")
	buf.PutDecU64(uint64(best.Count * len(best.Prefix)))
	buf.PutNewline()
	buf.PutStr("best weight: ")
	buf.PutDecU64(uint64(best.Weight))
	buf.PutNewline()
	if err := c.emit(buf); err != nil {
		return exitFailure
	}
	log.Debug("searched", logsink.U64("text", uint64(len(s))), logsink.U64("pattern", uint64(len(p))))
	return exitOK
}

func (c *cli) hash(cmd *HashCmd) int {
	log := c.ctx.Spawn("hash")
	blob, err := osfile.LoadFile(c.ctx.Arena, cmd.File)
	if err != nil {
		c.fail(log, "could not load file", err)
		return exitOpen
	}
	defer c.ctx.Arena.Free(blob.Block)
	sum := hashing.Sum64(cmd.Algo, blob.Data())

	buf := c.out()
	buf.PutStr("block: ")
	buf.PutDecU64(blob.Block.ID)
	buf.PutNewline()
	buf.PutStr(cmd.Algo.String())
	buf.PutStr(": ")
	buf.PutHexU64(sum)
	buf.PutNewline()
	buf.PutStr("size: ")
	buf.PutStr(humanize.Bytes(uint64(blob.Size)))
	buf.PutNewline()
	if err := c.emit(buf); err != nil {
		return exitFailure
	}
	log.Info("hashed",
		logsink.Str("path", cmd.File),
		logsink.Str("algo", cmd.Algo.String()),
		logsink.U64("hash", sum),
		logsink.U64("size", uint64(blob.Size)),
	)
	return exitOK
}

func (c *cli) sort(cmd *SortCmd) int {
	log := c.ctx.Spawn("sort")
	if len(cmd.Numbers) == 0 {
		return exitOK
	}
	nums, err := arena.AllocSlice[int64](c.ctx.Arena, len(cmd.Numbers))
	if err != nil {
		c.fail(log, "could not allocate numbers", err)
		return exitFailure
	}
	for i, s := range cmd.Numbers {
		n, err := numfmt.ParseDecS64(s)
		if err != nil {
			c.fail(log, "invalid number", fmt.Errorf("%q: %w", s, err))
			return exitUsage
		}
		nums[i] = n
	}
	sorts.QuickSortS64(nums)
	log.Debug("sorted", logsink.S64s("numbers", nums))

	buf := c.out()
	for i, n := range nums {
		if buf.Left() < numfmt.MaxDecS64Len+2 {
			if err := c.emit(buf); err != nil {
				return exitFailure
			}
		}
		if i > 0 {
			buf.PutSpace()
		}
		buf.PutDecS64(n)
	}
	buf.PutNewline()
	if err := c.emit(buf); err != nil {
		return exitFailure
	}
	return exitOK
}

func (c *cli) rand(cmd *RandCmd) int {
	log := c.ctx.Spawn("rand")
	if cmd.Count < 0 {
		c.fail(log, "invalid count", fmt.Errorf("count must not be negative, got %d", cmd.Count))
		return exitUsage
	}
	state := biski.NewSeeded(cmd.Seed)
	values := lo.Times(cmd.Count, func(_ int) uint64 {
		return state.Next()
	})

	buf := c.out()
	for _, v := range values {
		if buf.Left() < numfmt.HexU64Len+1 {
			if err := c.emit(buf); err != nil {
				return exitFailure
			}
		}
		buf.PutHexU64(v)
		buf.PutNewline()
	}
	if err := c.emit(buf); err != nil {
		return exitFailure
	}
	log.Debug("generated", logsink.U64("seed", cmd.Seed), logsink.U64("count", uint64(cmd.Count)))
	return exitOK
}
