package logsink

/*
	A record is a single line:

		<elapsed> <prefix>(<name>) <message> {<field>: <value>, ...}

	elapsed is the time since the sink was created, in seconds with six
	fraction digits. prefix is one of the fixed width level tags. The name
	part is left out for unnamed loggers and the braces for records without
	fields.
*/

// Logger formats records into a Sink. It is a small value; copies share the
// sink. The zero Logger drops everything.
type Logger struct {
	name  string
	sink  *Sink
	level Level
}

func New(sink *Sink, level Level) Logger {
	return Logger{sink: sink, level: level}
}

// Spawn returns a logger with the given name sharing this logger's sink and
// level.
func (l Logger) Spawn(name string) Logger {
	return Logger{name: name, sink: l.sink, level: l.level}
}

func (l Logger) Name() string {
	return l.name
}

func (l Logger) Level() Level {
	return l.level
}

func (l Logger) Sink() *Sink {
	return l.sink
}

// Enabled reports whether records at level would be written.
func (l Logger) Enabled(level Level) bool {
	return l.sink != nil && level <= l.level
}

func (l Logger) Log(level Level, msg string, fields ...Field) {
	if !l.Enabled(level) {
		return
	}
	s := l.sink
	s.putElapsed()
	s.putByte(' ')
	s.putStr(level.prefix())
	if l.name != "" {
		s.putByte('(')
		s.putStr(l.name)
		s.putStr(") ")
	}
	s.putStr(msg)
	if len(fields) > 0 {
		s.putStr(" {")
		for i, f := range fields {
			if i > 0 {
				s.putStr(", ")
			}
			s.putStr(f.Name)
			s.putStr(": ")
			f.put(s)
		}
		s.putByte('}')
	}
	s.putByte('\n')
}

func (l Logger) Debug(msg string, fields ...Field) {
	l.Log(LevelDebug, msg, fields...)
}

func (l Logger) Info(msg string, fields ...Field) {
	l.Log(LevelInfo, msg, fields...)
}

func (l Logger) Warn(msg string, fields ...Field) {
	l.Log(LevelWarn, msg, fields...)
}

func (l Logger) Error(msg string, fields ...Field) {
	l.Log(LevelError, msg, fields...)
}

// Fatal logs at LevelFatal and flushes the sink. It does not stop the
// process; that is up to the caller.
func (l Logger) Fatal(msg string, fields ...Field) {
	l.Log(LevelFatal, msg, fields...)
	if l.sink != nil {
		l.sink.Flush()
	}
}
