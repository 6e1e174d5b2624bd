// Package account provides use cases for user registration and lookup.
// It implements registration with role validation and password hashing,
// and the journalist directory used by reader subscriptions.
package account

import "errors"

// Sentinel errors for account use case operations.
var (
	// ErrUserNotFound indicates that the requested user was not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUserID indicates that the provided user ID is invalid.
	// User IDs must be positive integers.
	ErrInvalidUserID = errors.New("invalid user ID")

	// ErrInvalidCredentials indicates that the username or password did not
	// match a registered account.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
