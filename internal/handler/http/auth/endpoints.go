package auth

import "strings"

// PublicEndpoints lists the paths reachable without a token:
// orchestration probes, the Prometheus scrape target, and the two
// endpoints that exist to obtain an account or a token in the first place.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/auth/register",
	"/auth/token",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
//
// Endpoints ending with '/' use prefix matching; all others require an
// exact match, optionally with a trailing slash or query string. This
// keeps /health from matching /healthcheck or /health/detail.
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint || path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
