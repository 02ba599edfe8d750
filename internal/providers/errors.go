package providers

import (
	"errors"
	"fmt"
)

// HTTPError captures a non-2xx response from the upstream API.
type HTTPError struct {
	Provider   string
	Operation  string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Provider, e.Operation, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: unexpected status %d", e.Provider, e.Operation, e.StatusCode)
}

// AsHTTPError attempts to unwrap an error into an HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// DecodeError captures a response body that could not be parsed. A body
// that parses but lacks the expected shape is not a DecodeError; lenient
// decoding maps that to zero records instead.
type DecodeError struct {
	Provider  string
	Operation string
	Cause     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decode failed: %v", e.Provider, e.Operation, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// AsDecodeError attempts to unwrap an error into a DecodeError.
func AsDecodeError(err error) (*DecodeError, bool) {
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return decErr, true
	}
	return nil, false
}
