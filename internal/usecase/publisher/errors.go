// Package publisher provides use cases for managing publishers and their
// editor and journalist member sets.
package publisher

import "errors"

// Sentinel errors for publisher use case operations.
var (
	// ErrPublisherNotFound indicates that the requested publisher was not found.
	ErrPublisherNotFound = errors.New("publisher not found")

	// ErrInvalidPublisherID indicates that the provided publisher ID is invalid.
	// Publisher IDs must be positive integers.
	ErrInvalidPublisherID = errors.New("invalid publisher ID")
)
