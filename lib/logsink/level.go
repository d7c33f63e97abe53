package logsink

import (
	"fmt"
	"strings"
)

// Level is the severity of a record. Lower is more severe; a record is
// emitted when its level is at most the logger's level.
type Level int8

const (
	LevelFatal Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

// every prefix is exactly 8 bytes so that messages line up
var prefixes = [...]string{
	LevelFatal: "[fatal] ",
	LevelError: "[error] ",
	LevelWarn:  " [warn] ",
	LevelInfo:  " [info] ",
	LevelDebug: "[debug] ",
}

var names = [...]string{
	LevelFatal: "fatal",
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
}

func (l Level) valid() bool {
	return l >= LevelFatal && l <= LevelDebug
}

func (l Level) prefix() string {
	if !l.valid() {
		panic(fmt.Sprintf("logsink: invalid level %d", l))
	}
	return prefixes[l]
}

func (l Level) String() string {
	if !l.valid() {
		return fmt.Sprintf("Level(%d)", l)
	}
	return names[l]
}

// ParseLevel parses a level name, ignoring case.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range names {
		if name == s {
			return Level(l), nil
		}
	}
	return 0, fmt.Errorf("invalid log level %q", s)
}

// UnmarshalText makes Level usable as a command line and env value.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.valid() {
		return nil, fmt.Errorf("invalid log level %d", l)
	}
	return []byte(names[l]), nil
}
