package auth

import "context"

// principalKey is a private type for the principal context key, preventing
// collisions with other packages.
type principalKey struct{}

// SetPrincipal stores the verified principal in the context.
func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext retrieves the verified principal. The second return
// is false when the request did not pass the auth gate.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
