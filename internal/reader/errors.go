package reader

import (
	"fmt"
	"time"
)

// InvalidInputError reports a request rejected before any fetch.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

// TimeoutError reports a fetch that exceeded the request timeout.
type TimeoutError struct {
	After time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Request timed out after %.1fs", e.After.Seconds())
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.Code, e.Reason)
}

// TransportError reports a network-level failure before a usable
// response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "Network error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnexpectedError wraps failures outside the known fetch taxonomy.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return "Unexpected error reading URL: " + e.Err.Error()
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
