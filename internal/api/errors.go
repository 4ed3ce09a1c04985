package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned when the remote API answers with a non-2xx status.
type Error struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the human readable "message" field of the response body,
	// empty when the body carried none.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote returned status %d", e.StatusCode)
}

// StatusText returns the standard text for the status code ("Not Found").
func (e *Error) StatusText() string {
	return http.StatusText(e.StatusCode)
}

// TransportError is returned when a call did not complete: the request could
// not be sent, the connection failed, or a success body could not be decoded.
type TransportError struct {
	// Op is the failed operation ("send", "read", "decode").
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsRemote extracts an [*Error] from err.
func AsRemote(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransport reports whether err is a [*TransportError].
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
