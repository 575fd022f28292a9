package search

import (
	"context"
	"errors"
	"net"
)

// ErrTimeout is returned when the backend does not answer within the
// configured search timeout.
var ErrTimeout = errors.New("Search timed out. Please try again.")

// InvalidInputError reports a request rejected before any backend call.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// BackendError wraps a non-timeout failure from the search backend.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return "Search failed: " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// isTimeout reports whether err is a context deadline or a network
// timeout, wherever it sits in the chain.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
