// Package auth issues and validates JWT access tokens and exposes the
// authenticated identity to downstream handlers. Authorization decisions
// themselves live in the access package; this package only establishes
// who is making the request.
package auth

import (
	"context"

	"newsroom/internal/domain/access"
	"newsroom/internal/domain/entity"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	UserID   int64
	Username string
	Role     entity.Role
}

// Actor converts the identity into an access actor for permission checks.
func (id *Identity) Actor() access.Actor {
	return access.Actor{
		UserID: id.UserID,
		Role:   id.Role,
	}
}

// FromContext returns the identity stored by the Authn middleware.
// ok is false on public endpoints where no token was presented.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(*Identity)
	return id, ok
}

// WithIdentity stores the identity in the context. Exposed for handler tests.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}
