package api

import (
	"encoding/json"
	"fmt"
)

// BusinessError is a call that succeeded at the transport level but came back
// with a non-zero envelope code. It carries the envelope verbatim so callers
// can inspect code, message and any partial data.
type BusinessError struct {
	Code    int
	Data    json.RawMessage
	Message string
}

func (e *BusinessError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("request failed with code %d", e.Code)
}

// AuthError is a 401: the session was invalid or expired. By the time the
// caller sees it the session has already been wiped and the router moved to
// the matching login page.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): %s", e.Status, e.Message)
}

// PermissionError is a 402: authenticated but not permitted. The session is
// left untouched, distinguishing "not logged in" from "logged in but
// forbidden".
type PermissionError struct {
	Status  int
	Message string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied (status %d): %s", e.Status, e.Message)
}

// APIError is any other transport-level failure that did produce a response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

// NetworkError is a call that never produced a response: unreachable host,
// timeout before headers, and the like. Never retried by this layer.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
