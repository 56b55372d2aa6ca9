// Package config provides the configuration source the rest of actionkit
// reads runner-provided values from.
//
// Nothing in actionkit reads the process environment directly. Components are
// handed a Source (read-only) or an Environ (read-write) at construction, so
// tests can run against an in-memory map instead of a real runner.
package config

import (
	"os"
	"sort"
)

// Well-known runner variables naming the file command paths.
const (
	KeyEnv         = "GITHUB_ENV"
	KeyOutput      = "GITHUB_OUTPUT"
	KeyPath        = "GITHUB_PATH"
	KeyState       = "GITHUB_STATE"
	KeyStepSummary = "GITHUB_STEP_SUMMARY"
)

// Source is an opaque key-value configuration source.
type Source interface {
	Lookup(key string) (string, bool)
}

// Environ is the environment of the current process: a Source that can also
// be mutated.
type Environ interface {
	Source
	Setenv(key, value string) error
}

// Get returns the value for key, or "" when the key is absent.
func Get(src Source, key string) string {
	if src == nil {
		return ""
	}
	v, _ := src.Lookup(key)
	return v
}

// OSEnviron is the real process environment.
type OSEnviron struct{}

func (OSEnviron) Lookup(key string) (string, bool) { return os.LookupEnv(key) }

func (OSEnviron) Setenv(key, value string) error { return os.Setenv(key, value) }

// MapEnviron is an in-memory Environ.
type MapEnviron map[string]string

func (m MapEnviron) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapEnviron) Setenv(key, value string) error {
	m[key] = value
	return nil
}

// Keys returns the defined keys in sorted order.
func (m MapEnviron) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Layered looks a key up in each source in turn; the first hit wins.
type Layered []Source

func (l Layered) Lookup(key string) (string, bool) {
	for _, s := range l {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// LayeredEnviron reads through its overlays before the base Environ and
// writes only to the base.
type LayeredEnviron struct {
	Overlays Layered
	Base     Environ
}

func (l LayeredEnviron) Lookup(key string) (string, bool) {
	if v, ok := l.Overlays.Lookup(key); ok {
		return v, true
	}
	if l.Base == nil {
		return "", false
	}
	return l.Base.Lookup(key)
}

func (l LayeredEnviron) Setenv(key, value string) error {
	if l.Base == nil {
		return nil
	}
	return l.Base.Setenv(key, value)
}
