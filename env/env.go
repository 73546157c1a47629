// Package env contains a read-only snapshot of the environment
// variables, so the configuration can be loaded from something other
// than the real environment in tests
package env

import (
	"os"
	"strings"
)

// Env represents the environment
type Env struct {
	env map[string]string
}

// NewFromOs builds and returns an Env using os.Environ
func NewFromOs() *Env {
	return NewFromKVList(os.Environ())
}

// NewFromKVList builds and returns an Env using a provided list of
// string in the form "key=value".
// Everything after the first "=" is part of the value
func NewFromKVList(env []string) *Env {
	e := &Env{
		make(map[string]string, len(env)),
	}
	for _, kv := range env {
		data := strings.SplitN(kv, "=", 2)
		switch len(data) {
		case 2:
			e.env[data[0]] = data[1]
		default:
			e.env[data[0]] = ""
		}
	}
	return e
}

// Has returns whether the given key has a value set.
// Has is case-sensitive.
func (e *Env) Has(key string) bool {
	_, ok := e.env[key]
	return ok
}

// Get returns the value of the given key, or en empty string if the key
// has no values set.
// Get is case-sensitive.
func (e *Env) Get(key string) string {
	return e.env[key]
}

// GetBool returns whether the value of the given key is a truthy
// value ("yes", "1", "true", "on"). The value is case-insensitive,
// the key is not.
func (e *Env) GetBool(key string) bool {
	switch strings.ToLower(e.Get(key)) {
	case "yes", "1", "true", "on":
		return true
	default:
		return false
	}
}
