package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization so normalization stays cheap on the hot path.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/articles/\d+/approve$`), Template: "/articles/:id/approve"},
	{Pattern: regexp.MustCompile(`^/articles/\d+$`), Template: "/articles/:id"},

	{Pattern: regexp.MustCompile(`^/newsletters/\d+/publish$`), Template: "/newsletters/:id/publish"},
	{Pattern: regexp.MustCompile(`^/newsletters/\d+$`), Template: "/newsletters/:id"},

	{Pattern: regexp.MustCompile(`^/publishers/\d+/editors/\d+$`), Template: "/publishers/:id/editors/:userID"},
	{Pattern: regexp.MustCompile(`^/publishers/\d+/editors$`), Template: "/publishers/:id/editors"},
	{Pattern: regexp.MustCompile(`^/publishers/\d+/journalists/\d+$`), Template: "/publishers/:id/journalists/:userID"},
	{Pattern: regexp.MustCompile(`^/publishers/\d+/journalists$`), Template: "/publishers/:id/journalists"},
	{Pattern: regexp.MustCompile(`^/publishers/\d+$`), Template: "/publishers/:id"},

	{Pattern: regexp.MustCompile(`^/journalists/\d+$`), Template: "/journalists/:id"},

	{Pattern: regexp.MustCompile(`^/subscriptions/publishers/\d+/toggle$`), Template: "/subscriptions/publishers/:id/toggle"},
	{Pattern: regexp.MustCompile(`^/subscriptions/journalists/\d+/toggle$`), Template: "/subscriptions/journalists/:id/toggle"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label
// cardinality explosion. Paths with IDs (e.g. /articles/123) become
// template form (/articles/:id); static paths pass through unchanged.
//
// Query parameters and trailing slashes are stripped first:
//
//	NormalizePath("/articles/123?page=1")   // "/articles/:id"
//	NormalizePath("/articles/123/")         // "/articles/:id"
//	NormalizePath("/health")                // "/health"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// GetExpectedCardinality returns the expected number of unique path
// labels after normalization, for capacity planning around the metrics
// endpoint.
func GetExpectedCardinality() int {
	templateCount := len(pathPatterns)
	staticCount := 10 // /health, /metrics, /auth/token, list endpoints
	return templateCount + staticCount
}
