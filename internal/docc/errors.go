package docc

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the remote service has no document for the
// requested topic path. The crawler reports it and moves on; it is never
// fatal to a run.
var ErrNotFound = errors.New("document not found")

// TransportError wraps any fetch failure other than a missing document:
// network errors, timeouts, unexpected HTTP statuses, and responses that
// are not valid JSON.
//
// Design decision: We use a wrapping error type rather than more sentinel
// values because the crawler only needs to distinguish "not found" from
// "everything else", while the underlying cause still matters for the
// per-node report line.
type TransportError struct {
	// Path is the topic path whose fetch failed.
	Path string

	// StatusCode is the HTTP status when the failure was an unexpected
	// status, 0 for network-level failures.
	StatusCode int

	// Err is the underlying error, nil when StatusCode alone describes
	// the failure.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Path, e.StatusCode)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}
