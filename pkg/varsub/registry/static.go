package registry

import (
	"context"
	"os"
)

// staticSource serves fixed name/value pairs.
type staticSource map[string]string

// Static returns a source backed by a fixed map.
// The map is copied, later mutation of the argument has no effect.
func Static(values map[string]string) Source {
	s := make(staticSource, len(values))
	for name, value := range values {
		s[name] = value
	}
	return s
}

// Variable implements Source.
func (s staticSource) Variable(name string) (Variable, bool) {
	value, ok := s[name]
	if !ok {
		return nil, false
	}
	return VariableFunc(func(context.Context) (string, bool, error) {
		return value, true, nil
	}), true
}

// envSource serves process environment variables.
type envSource struct{}

// Env returns a source backed by the process environment.
// The environment is read at lookup time, not at construction, so
// changes made with os.Setenv are visible to later resolve calls.
func Env() Source {
	return envSource{}
}

// Variable implements Source.
// Unset names are unknown, so Env composes cleanly under Multi.
func (envSource) Variable(name string) (Variable, bool) {
	if _, ok := os.LookupEnv(name); !ok {
		return nil, false
	}
	return VariableFunc(func(context.Context) (string, bool, error) {
		value, ok := os.LookupEnv(name)
		return value, ok, nil
	}), true
}

// multiSource composes sources with first-match precedence.
type multiSource []Source

// Multi returns a source that consults sources in order and returns the
// first variable found. Nil sources are skipped.
func Multi(sources ...Source) Source {
	m := make(multiSource, 0, len(sources))
	for _, s := range sources {
		if s != nil {
			m = append(m, s)
		}
	}
	return m
}

// Variable implements Source.
func (m multiSource) Variable(name string) (Variable, bool) {
	for _, s := range m {
		if v, ok := s.Variable(name); ok {
			return v, true
		}
	}
	return nil, false
}
