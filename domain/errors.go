package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotAuthenticated indicates no session exists: the credential store is
// missing the access token, the instance URL, or both. Raised before any
// network call is made.
var ErrNotAuthenticated = errors.New("not authenticated: connect a Mastodon account first")

// APIError is a non-2xx response from a Mastodon instance. The body is the
// raw response text; no status code is interpreted by this package.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mastodon API error: %d %s", e.Status, e.StatusText)
}

// NewAPIError builds an APIError from a status code and raw body.
func NewAPIError(status int, body string) *APIError {
	return &APIError{Status: status, StatusText: http.StatusText(status), Body: body}
}
