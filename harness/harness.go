package harness

import (
	"fmt"

	"pogus/lib/arena"
	"pogus/lib/logsink"

	"github.com/raulk/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

/*
	Context is everything a process (or a test) works with: the arena all
	long lived memory comes from, the log sink with its root logger, the
	ambient zap logger and what the process was started with. It replaces
	process wide singletons, so several contexts can live side by side.

	A Context is owned by one goroutine. zap logging is teed into the log
	sink, so the zap logger must only be used from that goroutine as well.
*/
type Context struct {
	Args   Args
	Arena  *arena.Arena
	Sink   *logsink.Sink
	Log    logsink.Logger
	Logger *zap.Logger
	Clock  clock.Clock
	Proc   ProcInput

	restoreGlobals func()
}

type settings struct {
	clock clock.Clock
}

type Option func(*settings)

// WithClock sets the clock timestamping log records.
func WithClock(c clock.Clock) Option {
	return func(s *settings) {
		s.clock = c
	}
}

func newZapLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
}

func CreateFromArgs(args *Args, opts ...Option) (*Context, error) {
	if err := args.Valid(); err != nil {
		return nil, fmt.Errorf("invalid harness args: %w", err)
	}
	s := settings{clock: clock.New()}
	for _, opt := range opts {
		opt(&s)
	}

	// First, create a structured logger that we can then use in other places.
	logger, err := newZapLogger(args.Dev)
	if err != nil {
		return nil, fmt.Errorf("failed to construct logger: %w", err)
	}
	restore := zap.ReplaceGlobals(logger)

	logger.Info("Opening log sink", zap.String("path", args.LogPath), zap.Stringer("level", args.LogLevel))
	var sink *logsink.Sink
	if args.LogPath == "" {
		sink = logsink.NewSink(nil, logsink.WithClock(s.clock))
	} else {
		sink = logsink.Open(args.LogPath, logsink.WithClock(s.clock))
	}
	root := logsink.New(sink, args.LogLevel)

	// From here on zap entries end up in the log file too.
	logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, logsink.NewCore(root))
	}))
	restore()
	restore = zap.ReplaceGlobals(logger)

	logger.Debug("Creating arena", zap.Stringer("size", args.ArenaSize))
	a := arena.New(int(args.ArenaSize)).WithName("proc")

	ctx := &Context{
		Args:           *args,
		Arena:          a,
		Sink:           sink,
		Log:            root,
		Logger:         logger,
		Clock:          s.clock,
		Proc:           procInput(),
		restoreGlobals: restore,
	}
	root.Debug("harness ready",
		logsink.U64("arena_size", uint64(args.ArenaSize)),
		logsink.U64("args", uint64(len(ctx.Proc.Args))),
		logsink.U64("env", uint64(len(ctx.Proc.Env))),
	)
	return ctx, nil
}

// Spawn returns a logger named after a subsystem.
func (c *Context) Spawn(name string) logsink.Logger {
	return c.Log.Spawn(name)
}

// Close publishes arena stats, flushes and closes the log sink and restores
// the previous global zap logger. It returns the first error the log sink
// ran into.
func (c *Context) Close() error {
	c.Arena.ReportStats()
	c.Log.Debug("harness closing",
		logsink.U64("arena_used", uint64(c.Arena.Pos())),
		logsink.U64("arena_limit", uint64(c.Arena.Limit())),
	)
	// syncing stderr fails on some platforms, nothing to do about it
	_ = c.Logger.Sync()
	if c.restoreGlobals != nil {
		c.restoreGlobals()
		c.restoreGlobals = nil
	}
	if err := c.Sink.Close(); err != nil {
		return fmt.Errorf("failed to close log sink: %w", err)
	}
	return nil
}
