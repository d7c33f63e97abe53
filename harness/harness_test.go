package harness

import (
	"os"
	"path/filepath"
	"testing"

	"pogus/lib/logsink"

	"github.com/alexflint/go-arg"
	"github.com/raulk/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testArgs(t *testing.T) *Args {
	return &Args{
		ArenaSize: 1 << 16,
		LogPath:   filepath.Join(t.TempDir(), "pogus.log"),
		LogLevel:  logsink.LevelInfo,
		Dev:       true,
	}
}

func TestCreateFromArgs(t *testing.T) {
	args := testArgs(t)
	ctx, err := CreateFromArgs(args, WithClock(clock.NewMock()))
	require.NoError(t, err)

	assert.Equal(t, 1<<16, ctx.Arena.Limit())
	assert.Equal(t, "proc", ctx.Arena.Name())
	assert.False(t, ctx.Sink.Discarding())
	assert.Equal(t, logsink.LevelInfo, ctx.Log.Level())
	assert.Equal(t, os.Args, ctx.Proc.Args)
	assert.Same(t, ctx.Logger, zap.L())

	b, err := ctx.Arena.Alloc(100)
	require.NoError(t, err)
	assert.Equal(t, 104, b.Len())

	ctx.Spawn("render").Info("frame", logsink.U64("index", 1))
	ctx.Log.Debug("too verbose")
	zap.L().Info("from zap", zap.Int("n", -1))
	zap.L().Debug("too verbose for zap")
	require.NoError(t, ctx.Close())
	assert.NotSame(t, ctx.Logger, zap.L())

	data, err := os.ReadFile(args.LogPath)
	require.NoError(t, err)
	expected := "0.000000  [info] (render) frame {index: 1}\n" +
		"0.000000  [info] from zap {n: -1}\n"
	assert.Equal(t, expected, string(data))
}

func TestCreateFromArgsDebugLevel(t *testing.T) {
	args := testArgs(t)
	args.LogLevel = logsink.LevelDebug
	ctx, err := CreateFromArgs(args, WithClock(clock.NewMock()))
	require.NoError(t, err)
	require.NoError(t, ctx.Close())

	data, err := os.ReadFile(args.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[debug] Creating arena {size: \"64 KiB\"}\n")
	assert.Contains(t, string(data), "[debug] harness ready {arena_size: 65536, ")
	assert.Contains(t, string(data), "[debug] harness closing {arena_used: 0, arena_limit: 65536}\n")
}

func TestCreateFromArgsDiscard(t *testing.T) {
	args := testArgs(t)
	args.LogPath = ""
	ctx, err := CreateFromArgs(args)
	require.NoError(t, err)
	assert.True(t, ctx.Sink.Discarding())
	ctx.Log.Error("nowhere")
	assert.NoError(t, ctx.Close())

	args.LogPath = filepath.Join(t.TempDir(), "missing", "dir", "pogus.log")
	ctx, err = CreateFromArgs(args)
	require.NoError(t, err)
	assert.True(t, ctx.Sink.Discarding())
	assert.NoError(t, ctx.Close())
}

func TestCreateFromArgsInvalid(t *testing.T) {
	args := testArgs(t)
	args.ArenaSize = 0
	_, err := CreateFromArgs(args)
	assert.Error(t, err)

	args = testArgs(t)
	args.LogLevel = logsink.Level(12)
	_, err = CreateFromArgs(args)
	assert.Error(t, err)
}

func TestArgsParsing(t *testing.T) {
	var args Args
	p, err := arg.NewParser(arg.Config{}, &args)
	require.NoError(t, err)
	require.NoError(t, p.Parse(nil))
	assert.Equal(t, ByteSize(16<<20), args.ArenaSize)
	assert.Equal(t, "pogus.log", args.LogPath)
	assert.Equal(t, logsink.LevelInfo, args.LogLevel)
	assert.False(t, args.Dev)

	args = Args{}
	p, err = arg.NewParser(arg.Config{}, &args)
	require.NoError(t, err)
	require.NoError(t, p.Parse([]string{"--arena-size", "64 kB", "--log-level", "debug", "--log-path", "", "--dev"}))
	assert.Equal(t, ByteSize(64000), args.ArenaSize)
	assert.Equal(t, logsink.LevelDebug, args.LogLevel)
	assert.Equal(t, "", args.LogPath)
	assert.True(t, args.Dev)

	args = Args{}
	p, err = arg.NewParser(arg.Config{}, &args)
	require.NoError(t, err)
	assert.Error(t, p.Parse([]string{"--log-level", "chatty"}))
	assert.Error(t, p.Parse([]string{"--arena-size", "lots"}))
}

func TestByteSize(t *testing.T) {
	var s ByteSize
	require.NoError(t, s.UnmarshalText([]byte("16MiB")))
	assert.Equal(t, ByteSize(16<<20), s)
	assert.Equal(t, "16 MiB", s.String())
	require.NoError(t, s.UnmarshalText([]byte("4096")))
	assert.Equal(t, ByteSize(4096), s)
	assert.Error(t, s.UnmarshalText([]byte("-1")))
}

func TestProcInput(t *testing.T) {
	env := ParseEnv([]string{"HOME=/root", "EMPTY=", "NOVALUE", "EQ=a=b", "HOME=/other"})
	assert.Equal(t, []EnvEntry{
		{Name: "HOME", Value: "/root"},
		{Name: "EMPTY", Value: ""},
		{Name: "NOVALUE", Value: ""},
		{Name: "EQ", Value: "a=b"},
		{Name: "HOME", Value: "/other"},
	}, env)

	p := ProcInput{Args: []string{"pogus"}, Env: env}
	assert.Equal(t, "/root", p.Getenv("HOME").MustGet())
	assert.Equal(t, "a=b", p.Getenv("EQ").OrElse("x"))
	assert.True(t, p.Getenv("EMPTY").IsPresent())
	assert.False(t, p.Getenv("MISSING").IsPresent())
}
