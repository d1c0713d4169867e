package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the credential is missing, expired or rejected.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAuthentication means a login attempt was rejected.
	ErrAuthentication = errors.New("authentication failed")
	// ErrValidation means the service (or client-side checks) rejected the input.
	ErrValidation = errors.New("validation error")
	// ErrNetwork covers transport failures and an unavailable service.
	ErrNetwork = errors.New("network error")
	// ErrNotFound means the service does not know the referenced job or user.
	ErrNotFound = errors.New("not found")
	// ErrLocalDataNotAvailable means no cached data exists locally.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// APIError is a non-2xx answer from the service. It unwraps to one of the
// sentinel errors above so callers can keep using errors.Is.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
	Kind       error
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v (HTTP %d)", e.Op, e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// Detail extracts the service-provided reason from err, if any.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
