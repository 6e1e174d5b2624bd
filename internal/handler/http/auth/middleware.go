package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"newsroom/internal/handler/http/respond"
)

// Authn requires a valid JWT on every protected endpoint, for all HTTP
// methods. Public endpoints pass through without an identity. On success
// the verified identity is stored in the request context for handlers to
// turn into an access actor.
//
// Role enforcement is deliberately absent here: which role may do what
// depends on the resource, so it is decided per operation in the
// usecase layer.
func Authn(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsPublicEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			id, err := identityFromHeader(r.Header.Get("Authorization"), secret)
			if err != nil {
				respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func identityFromHeader(authz string, secret []byte) (*Identity, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return nil, errors.New("missing bearer token")
	}
	return ParseToken(strings.TrimPrefix(authz, prefix), secret)
}

// RequireIdentity is a helper for handlers: it returns the identity or
// writes a 401 and returns ok=false. Protected endpoints behind Authn
// always have one; this guards against wiring mistakes.
func RequireIdentity(w http.ResponseWriter, r *http.Request) (*Identity, bool) {
	id, ok := FromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errors.New("unauthorized"))
		return nil, false
	}
	return id, true
}
