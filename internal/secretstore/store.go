// Package secretstore resolves encrypted document data (reference tokens)
// to cleartext (spec §4.8), fetching from a pluggable backend and caching
// results for the lifetime of one render call.
package secretstore

import (
	"context"
	"errors"
	"fmt"
)

// Store fetches the cleartext bytes a reference token names. Implementations
// classify failures as NotFoundError or TransientError so the engine can
// surface the right error kind without retrying itself.
type Store interface {
	Fetch(ctx context.Context, reference string) ([]byte, error)
}

// NotFoundError means the reference token names a secret that does not
// exist; the engine raises a fatal BarbicanException.NotFound.
type NotFoundError struct {
	Reference string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("secret %q not found", e.Reference)
}

// TransientError means the backend failed in a way the caller may retry;
// the engine raises a fatal BarbicanException.Transient and does not retry
// itself.
type TransientError struct {
	Reference string
	Cause     error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("secret %q: transient error: %v", e.Reference, e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// IsNotFound reports whether err (or something it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
