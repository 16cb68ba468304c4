package auth

import (
	"context"
	"time"
)

// Principal is the identity carried by a verified token.
type Principal struct {
	Username string
	IsAdmin  bool
	IssuedAt time.Time
}

type contextKey struct {
	name string
}

var principalKey = &contextKey{"principal"}

// WithPrincipal stores the principal of the current request in the context.
func WithPrincipal(ctx context.Context, principal *Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext returns the principal of the current request, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	if ctx != nil {
		if val, ok := ctx.Value(principalKey).(*Principal); ok {
			return val
		}
	}
	return nil
}
