package services

import "context"

// UserIdentity is the authenticated identity supplied by the auth middleware.
type UserIdentity struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"is_admin"`
}

type identityContextKey struct{}

// WithUserIdentity attaches the authenticated identity to the context.
func WithUserIdentity(ctx context.Context, identity UserIdentity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// UserIdentityFromContext retrieves the authenticated identity, if any.
func UserIdentityFromContext(ctx context.Context) (UserIdentity, bool) {
	identity, ok := ctx.Value(identityContextKey{}).(UserIdentity)
	return identity, ok
}
