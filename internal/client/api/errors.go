package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: the server could not be
// reached or returned a malformed response. Match with errors.Is.
var ErrUnavailable = errors.New("server unavailable")

// AuthError reports a rejected credential or session. Detail carries the
// server-provided message when one was present in the response body.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return "unauthorized"
	}
	return e.Detail
}

// RequestError reports a non-2xx response from any endpoint other than the
// auth ones. Detail is the decoded {"detail": ...} message, possibly empty.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Detail
}

// Detail extracts the server-provided message from an API error, returning
// "" when err carries none. Callers use it to decide whether to fall back
// to a default, operation-specific message.
func Detail(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Detail
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Detail
	}
	return ""
}
