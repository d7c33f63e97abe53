package harness

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// EnvEntry is one NAME=VALUE pair of the process environment.
type EnvEntry struct {
	Name  string
	Value string
}

// ProcInput is what the process was started with.
type ProcInput struct {
	Args []string
	Env  []EnvEntry
}

// ParseEnv splits NAME=VALUE entries. Entries without '=' get an empty
// value.
func ParseEnv(environ []string) []EnvEntry {
	return lo.Map(environ, func(kv string, _ int) EnvEntry {
		name, value, _ := strings.Cut(kv, "=")
		return EnvEntry{Name: name, Value: value}
	})
}

func procInput() ProcInput {
	return ProcInput{
		Args: os.Args,
		Env:  ParseEnv(os.Environ()),
	}
}

// Getenv returns the value of the first entry named name.
func (p ProcInput) Getenv(name string) mo.Option[string] {
	entry, ok := lo.Find(p.Env, func(e EnvEntry) bool {
		return e.Name == name
	})
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(entry.Value)
}
