// Package article provides use cases for managing articles through their
// publication lifecycle: authoring, role-scoped listing, editorial
// approval, and the reader feed.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrAlreadyApproved indicates an approval attempt on an article that is
	// already approved. The stored row is untouched.
	ErrAlreadyApproved = errors.New("article is already approved")
)
