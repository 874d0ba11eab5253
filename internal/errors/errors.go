package errors

import "errors"

// Sentinel errors shared by the service and API layers. The API layer maps
// them to HTTP status codes with errors.Is.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that client input failed validation.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrInternal is an unexpected failure. Mapped to 500 so that
	// implementation details do not leak to the client.
	ErrInternal = errors.New("internal server error")
)
