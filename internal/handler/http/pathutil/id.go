package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path segment as a positive int64 ID.
// Returns ErrInvalidID for anything that is not a positive integer.
func ParseID(idStr string) (int64, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ErrInvalidLimit is returned when the limit query parameter is invalid.
var ErrInvalidLimit = errors.New("invalid limit: must be an integer between 1 and 100")

// MaxListLimit caps the limit query parameter on listing endpoints.
const MaxListLimit = 100

// ParseLimit parses an optional limit query parameter. An empty value
// means no limit and returns 0.
func ParseLimit(limitStr string) (int, error) {
	if limitStr == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > MaxListLimit {
		return 0, ErrInvalidLimit
	}
	return limit, nil
}

// ExtractID extracts and parses an integer ID from a URL path by
// stripping the given prefix.
//
// Example:
//
//	id, err := ExtractID("/articles/123", "/articles/")
//	// Returns: 123, nil
func ExtractID(path, prefix string) (int64, error) {
	return ParseID(strings.TrimPrefix(path, prefix))
}
