package domain

import "context"

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying the authenticated administrator.
func WithPrincipal(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, principalKey{}, admin)
}

// PrincipalFrom returns the administrator attached by the auth gate, if any.
func PrincipalFrom(ctx context.Context) (*Admin, bool) {
	admin, ok := ctx.Value(principalKey{}).(*Admin)
	return admin, ok && admin != nil
}
