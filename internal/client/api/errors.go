package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork marks a transport-level failure: the request never produced
	// an HTTP response.
	ErrNetwork = errors.New("network failure")

	// ErrInvalidRequest marks a request that was rejected before any I/O,
	// typically because the target path contains a malformed identifier.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound marks a missing resource (HTTP 404).
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrDuplicateFavorite  = errors.New("favorite already exists")
	ErrAuthRequired       = errors.New("authentication required")
)

// HTTPError reports a response outside the 2xx range. Only the status code
// is carried: the backend documents no error-body schema.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is(err, ErrNotFound) match a 404 response.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
