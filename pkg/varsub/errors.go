package varsub

import "fmt"

// LookupError describes a failed variable lookup.
//
// The resolver absorbs lookup failures: they surface through the
// diagnostic logger and metrics, never from Resolve itself. The type
// exists so diagnostic consumers can unwrap the source failure.
type LookupError struct {
	// Name is the variable name whose lookup failed.
	Name string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup variable %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *LookupError) Unwrap() error {
	return e.Err
}
