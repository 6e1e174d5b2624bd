// Package middleware provides cross-cutting HTTP middleware that is not
// tied to any one handler package.
package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	// Example: ["http://localhost:3000", "https://example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	AllowedHeaders []string

	// AllowCredentials indicates whether credentials are supported.
	// Must be true for JWT Bearer token authentication from a browser.
	AllowCredentials bool

	// MaxAge specifies how long preflight results can be cached (in seconds).
	MaxAge int

	// Logger receives warnings about rejected origins. Optional.
	Logger *slog.Logger
}

// LoadCORSConfig builds a CORSConfig from environment variables.
//
//	CORS_ALLOWED_ORIGINS  comma-separated origin whitelist (required to enable)
//	CORS_ALLOWED_METHODS  comma-separated method list
//	CORS_ALLOWED_HEADERS  comma-separated header list
//	CORS_MAX_AGE          preflight cache lifetime in seconds
//
// An empty whitelist disables cross-origin access entirely.
func LoadCORSConfig() CORSConfig {
	cfg := CORSConfig{
		AllowedOrigins:   splitEnvList("CORS_ALLOWED_ORIGINS", nil),
		AllowedMethods:   splitEnvList("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:   splitEnvList("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization", "X-Request-ID"}),
		AllowCredentials: true,
		MaxAge:           86400,
	}
	if v := os.Getenv("CORS_MAX_AGE"); v != "" {
		if maxAge, err := strconv.Atoi(v); err == nil && maxAge >= 0 {
			cfg.MaxAge = maxAge
		}
	}
	return cfg
}

func splitEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CORS returns middleware that handles cross-origin requests against the
// configured whitelist.
//
// Behavior:
//   - No Origin header: same-origin request, pass through untouched.
//   - Origin not in the whitelist: log a warning and continue without CORS
//     headers; the browser enforces the block.
//   - Allowed OPTIONS preflight: answer 204 with the full header set.
//   - Allowed actual request: set Allow-Origin and pass through.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(config.AllowedOrigins))
	for _, o := range config.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := allowed[origin]; !ok {
				if config.Logger != nil {
					config.Logger.Warn("cors origin rejected",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path))
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			// response varies by Origin, caches must not mix them
			w.Header().Add("Vary", "Origin")
			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
