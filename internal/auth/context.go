package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Identity is the verified caller of a request that passed the gate.
type Identity struct {
	Subject  string
	Username string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity attached by the gate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}

// GetSubject returns the authenticated account id for a gin request,
// or "" on public paths.
func GetSubject(c *gin.Context) string {
	identity, ok := IdentityFromContext(c.Request.Context())
	if !ok {
		return ""
	}
	return identity.Subject
}
