package main

import (
	"fmt"
	"io"
	"os"

	"pogus/harness"
	"pogus/lib/bag"
	"pogus/lib/hashing"
	"pogus/lib/osfile"

	"github.com/alexflint/go-arg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitOpen     = 3
	exitTransfer = 4
)

type CopyCmd struct {
	Src string `arg:"positional,required" help:"file to read"`
	Dst string `arg:"positional,required" help:"file to create or truncate"`
}

type CrcCmd struct {
	Files []string `arg:"positional,required" help:"files to checksum"`
}

type LinesCmd struct {
	Out   string   `arg:"positional,required" help:"file to write"`
	Lines []string `arg:"positional" help:"lines to write, each followed by a newline"`
}

type KmpCmd struct {
	Text    string `arg:"positional,required"`
	Pattern string `arg:"positional,required"`
}

type HashCmd struct {
	File string       `arg:"positional,required"`
	Algo hashing.Algo `arg:"--algo,env:POGUS_HASH_ALGO" default:"djb2" help:"one of djb2, xxhash, xxh3, fnv1a"`
}

type SortCmd struct {
	Numbers []string `arg:"positional" help:"signed decimal integers"`
}

type RandCmd struct {
	Seed  uint64 `arg:"--seed" default:"0"`
	Count int    `arg:"--count" default:"4"`
}

type Flags struct {
	harness.Args
	Metrics bool `arg:"--metrics,env:POGUS_METRICS" help:"print prometheus metrics on exit"`

	Copy  *CopyCmd  `arg:"subcommand:copy" help:"copy a file"`
	Crc   *CrcCmd   `arg:"subcommand:crc" help:"print CRC-32 checksums of files"`
	Lines *LinesCmd `arg:"subcommand:lines" help:"write lines to a file"`
	Kmp   *KmpCmd   `arg:"subcommand:kmp" help:"search a pattern and report prefix repeats"`
	Hash  *HashCmd  `arg:"subcommand:hash" help:"load a file and print its hash"`
	Sort  *SortCmd  `arg:"subcommand:sort" help:"sort integers"`
	Rand  *RandCmd  `arg:"subcommand:rand" help:"print pseudo random numbers"`
}

func run(argv []string, stdout, stderr io.Writer) int {
	var flags Flags
	p, err := arg.NewParser(arg.Config{Program: "pogus"}, &flags)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	switch err := p.Parse(argv); {
	case err == arg.ErrHelp:
		p.WriteHelp(stdout)
		return exitOK
	case err != nil:
		p.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if p.Subcommand() == nil {
		p.WriteUsage(stderr)
		fmt.Fprintln(stderr, "error: missing command")
		return exitUsage
	}

	ctx, err := harness.CreateFromArgs(&flags.Args)
	if err != nil {
		fmt.Fprintf(stderr, "failed to set up: %v\n", err)
		return exitFailure
	}
	c := &cli{ctx: ctx, stdout: stdout, stderr: stderr}

	var code int
	switch {
	case flags.Copy != nil:
		code = c.copy(flags.Copy)
	case flags.Crc != nil:
		code = c.crc(flags.Crc)
	case flags.Lines != nil:
		code = c.lines(flags.Lines)
	case flags.Kmp != nil:
		code = c.kmp(flags.Kmp)
	case flags.Hash != nil:
		code = c.hash(flags.Hash)
	case flags.Sort != nil:
		code = c.sort(flags.Sort)
	case flags.Rand != nil:
		code = c.rand(flags.Rand)
	}

	if err := ctx.Close(); err != nil {
		fmt.Fprintln(stderr, err)
		if code == exitOK {
			code = exitFailure
		}
	}
	if flags.Metrics {
		if err := writeMetrics(stdout); err != nil {
			fmt.Fprintf(stderr, "failed to write metrics: %v\n", err)
		}
	}
	return code
}

func writeMetrics(w io.Writer) error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	stdout := bag.FDWriter{FD: osfile.Stdout}
	stderr := bag.FDWriter{FD: osfile.Stderr}
	os.Exit(run(os.Args[1:], stdout, stderr))
}
