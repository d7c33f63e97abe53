package harness

import (
	"fmt"
	"math"

	"pogus/lib/logsink"

	"github.com/dustin/go-humanize"
)

// ByteSize is a size in bytes written in human form, e.g. "16MiB" or "64 kB".
type ByteSize int

func (s *ByteSize) UnmarshalText(text []byte) error {
	n, err := humanize.ParseBytes(string(text))
	if err != nil {
		return fmt.Errorf("invalid byte size %q: %w", text, err)
	}
	if n > math.MaxInt {
		return fmt.Errorf("byte size %q is too large", text)
	}
	*s = ByteSize(n)
	return nil
}

func (s ByteSize) String() string {
	return humanize.IBytes(uint64(s))
}

type Args struct {
	ArenaSize ByteSize      `arg:"--arena-size,env:POGUS_ARENA_SIZE" default:"16MiB" help:"size of the process arena" json:"arena_size,omitempty"`
	LogPath   string        `arg:"--log-path,env:POGUS_LOG_PATH" default:"pogus.log" help:"log file, empty to discard logs" json:"log_path,omitempty"`
	LogLevel  logsink.Level `arg:"--log-level,env:POGUS_LOG_LEVEL" default:"info" help:"one of fatal, error, warn, info, debug" json:"log_level,omitempty"`
	Dev       bool          `arg:"--dev,env:POGUS_DEV" help:"human friendly diagnostics on stderr" json:"dev,omitempty"`
}

func (args Args) Valid() error {
	if args.ArenaSize <= 0 {
		return fmt.Errorf("arena size must be positive, got %d", args.ArenaSize)
	}
	if _, err := args.LogLevel.MarshalText(); err != nil {
		return err
	}
	return nil
}
