package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured indicates the lake connection settings are
	// missing or incomplete. Fatal to the calling operation.
	ErrNotConfigured = errors.New("content lake connection not configured")

	// ErrKindRequired indicates an operation needs a document kind.
	ErrKindRequired = errors.New("document kind is required")
)
