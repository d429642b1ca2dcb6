package registry

import (
	"context"
	"sync"
)

// Variable produces a value on demand.
//
// Resolve returns the value and ok=true when a value is available,
// ok=false when the variable currently has no value, or a non-nil error
// when producing the value failed. Implementations should honor ctx
// cancellation when the lookup blocks.
type Variable interface {
	Resolve(ctx context.Context) (value string, ok bool, err error)
}

// VariableFunc adapts a function to the Variable interface.
type VariableFunc func(ctx context.Context) (string, bool, error)

// Resolve implements Variable.
func (f VariableFunc) Resolve(ctx context.Context) (string, bool, error) {
	return f(ctx)
}

// Source supplies variables by name.
//
// Variable returns ok=false when the name is unknown to this source.
// Implementations must be safe for concurrent use.
type Source interface {
	Variable(name string) (Variable, bool)
}

// Registry is a mutable, thread-safe variable source.
// It uses sync.RWMutex for read-heavy lookup workloads.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Variable
}

// Compile-time interface check.
var _ Source = (*Registry)(nil)

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Variable),
	}
}

// Register adds or replaces a variable under name.
func (r *Registry) Register(name string, v Variable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = v
}

// RegisterFunc registers a function-backed variable under name.
func (r *Registry) RegisterFunc(name string, f VariableFunc) {
	r.Register(name, f)
}

// RegisterValue registers a fixed value under name.
func (r *Registry) RegisterValue(name, value string) {
	r.Register(name, VariableFunc(func(context.Context) (string, bool, error) {
		return value, true, nil
	}))
}

// Variable implements Source.
func (r *Registry) Variable(name string) (Variable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[name]
	return v, ok
}

// Has returns true if name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[name]
	return ok
}

// Delete removes name from the registry.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Names returns all registered names.
// The order is not guaranteed.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Len returns the number of registered variables.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
