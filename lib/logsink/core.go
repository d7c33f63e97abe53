package logsink

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

type core struct {
	mu     *sync.Mutex
	logger Logger
	fields []Field
}

var _ zapcore.Core = core{}

// NewCore returns a zapcore.Core that writes zap entries as records of l.
// The core serializes its own writes, but the sink must not be used directly
// by other goroutines at the same time.
func NewCore(l Logger) zapcore.Core {
	return core{mu: &sync.Mutex{}, logger: l}
}

func fromZapLevel(zl zapcore.Level) Level {
	switch {
	case zl <= zapcore.DebugLevel:
		return LevelDebug
	case zl == zapcore.InfoLevel:
		return LevelInfo
	case zl == zapcore.WarnLevel:
		return LevelWarn
	case zl == zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelFatal
	}
}

func (c core) Enabled(zl zapcore.Level) bool {
	return c.logger.Enabled(fromZapLevel(zl))
}

func (c core) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = appendZapFields(merged, fields)
	return core{mu: c.mu, logger: c.logger, fields: merged}
}

func (c core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := make([]Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = appendZapFields(all, fields)

	l := c.logger
	if ent.LoggerName != "" {
		l = l.Spawn(ent.LoggerName)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	l.Log(fromZapLevel(ent.Level), ent.Message, all...)
	if ent.Level > zapcore.ErrorLevel && l.sink != nil {
		l.sink.Flush()
	}
	return nil
}

func (c core) Sync() error {
	if c.logger.sink == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger.sink.Flush()
	return c.logger.sink.Err()
}

func appendZapFields(dst []Field, fields []zapcore.Field) []Field {
	for _, f := range fields {
		switch f.Type {
		case zapcore.SkipType, zapcore.NamespaceType:
			continue
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type:
			dst = append(dst, S64(f.Key, f.Integer))
		case zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type, zapcore.UintptrType:
			dst = append(dst, U64(f.Key, uint64(f.Integer)))
		case zapcore.StringType:
			dst = append(dst, Str(f.Key, f.String))
		case zapcore.BoolType:
			dst = append(dst, Str(f.Key, strconv.FormatBool(f.Integer == 1)))
		case zapcore.DurationType:
			dst = append(dst, Str(f.Key, time.Duration(f.Integer).String()))
		case zapcore.ErrorType:
			dst = append(dst, Str(f.Key, f.Interface.(error).Error()))
		default:
			enc := zapcore.NewMapObjectEncoder()
			f.AddTo(enc)
			dst = append(dst, Str(f.Key, fmt.Sprint(enc.Fields[f.Key])))
		}
	}
	return dst
}
