package auth

import (
	"context"
	"slices"
)

// Role names carried in JWT claims and stored on users
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Identity is the authenticated caller extracted from the request credentials
type Identity struct {
	UserID int
	Roles  []string
}

// IsAdmin reports whether the identity holds the admin role
func (i *Identity) IsAdmin() bool {
	return slices.Contains(i.Roles, RoleAdmin)
}

// CanAccess reports whether the identity may act on a resource owned by ownerID.
// Admins may act on any resource, other callers only on their own.
func (i *Identity) CanAccess(ownerID int) bool {
	return i.IsAdmin() || i.UserID == ownerID
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the authenticated identity
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFrom retrieves the authenticated identity from context.
// The second return value is false for unauthenticated requests.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	ident, ok := ctx.Value(identityKey).(*Identity)
	return ident, ok && ident != nil
}
