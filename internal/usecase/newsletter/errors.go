// Package newsletter provides use cases for managing newsletters.
// Newsletters follow the same lifecycle as articles: independent ones go
// out immediately, publisher-bound ones wait for an editor.
package newsletter

import "errors"

// Sentinel errors for newsletter use case operations.
var (
	// ErrNewsletterNotFound indicates that the requested newsletter was not found.
	ErrNewsletterNotFound = errors.New("newsletter not found")

	// ErrInvalidNewsletterID indicates that the provided newsletter ID is invalid.
	// Newsletter IDs must be positive integers.
	ErrInvalidNewsletterID = errors.New("invalid newsletter ID")

	// ErrAlreadyPublished indicates a publish attempt on a newsletter that is
	// already published. The stored row is untouched.
	ErrAlreadyPublished = errors.New("newsletter is already published")
)
