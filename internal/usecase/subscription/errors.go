// Package subscription provides use cases for the reader subscription
// registry: toggling publisher and journalist subscriptions and listing
// a reader's current ones.
package subscription

import "errors"

// Sentinel errors for subscription use case operations.
var (
	// ErrTargetNotFound indicates that the subscription target (publisher
	// or journalist) does not exist.
	ErrTargetNotFound = errors.New("subscription target not found")

	// ErrInvalidTargetID indicates that the provided target ID is invalid.
	// Target IDs must be positive integers.
	ErrInvalidTargetID = errors.New("invalid subscription target ID")
)
