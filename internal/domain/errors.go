package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for client-side short circuits
var (
	// ErrEmptyQuery indicates a search was attempted with no query text
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrEmptyID indicates an operation was attempted with no resource ID
	ErrEmptyID = errors.New("resource id is empty")

	// ErrInvalidInput indicates request validation failed before any network call
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSession indicates no credential is available for an authenticated operation
	ErrNoSession = errors.New("no active session")
)

// APIError is the typed error for any non-2xx backend response.
// It is produced only by the HTTP request core; everything above it
// propagates it unchanged.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError builds an APIError, synthesizing a message when the server
// error body could not be parsed.
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("HTTP error %d", status)
	}
	return &APIError{Status: status, Message: message}
}

// StatusOf returns the HTTP status carried by err, or 0 if err is not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 response
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}
