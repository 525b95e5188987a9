package api

import "fmt"

// Error is a non-success response from the API, carrying the
// human-readable message extracted from the response body.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the server-provided message, or a generic one when the
	// body carried none.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// NetworkError is a transport-level failure: the request never produced
// a usable response. It wraps the underlying cause so callers can still
// inspect it, but the client never surfaces the raw transport error on
// its own.
type NetworkError struct {
	// Op names the failed operation, e.g. "GET /products".
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
