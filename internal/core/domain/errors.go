package domain

import (
	"context"
	"errors"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates a form payload is missing required fields.
	// No request is sent when this is returned.
	ErrValidation = errors.New("validation failed")

	// ErrUnknownForm indicates a form kind that has no write endpoint.
	ErrUnknownForm = errors.New("unknown form")

	// ErrUnknownSource indicates a source filter outside the configured tags.
	ErrUnknownSource = errors.New("unknown source")

	// ErrAPIUnavailable indicates the registry API client is not configured.
	ErrAPIUnavailable = errors.New("registry API unavailable")
)

// IsCancellation reports whether err was caused by the caller tearing down
// the request rather than by a failure of the remote API.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

// APIError is a non-success HTTP response from the registry API.
// Message is what users see: for reads it names the path, status and a
// body snippet; for writes it is the server's message field when present.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Body    string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}
