package auth

import "context"

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

type contextKey struct{}

// ContextWithIdentity attaches the identity to the context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the identity, or nil when unauthenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
