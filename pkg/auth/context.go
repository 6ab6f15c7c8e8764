package auth

import (
	"context"

	"github.com/wikibhasha/wikibhasha-engine/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// principalKey is the context key for the authenticated principal.
	principalKey contextKey = "principal"
	// claimsKey is the context key for the verified JWT claims.
	claimsKey contextKey = "claims"
)

// WithPrincipal returns a context carrying the principal and its claims.
func WithPrincipal(ctx context.Context, principal *models.Principal, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, principalKey, principal)
	return context.WithValue(ctx, claimsKey, claims)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns nil and false if the request was not authenticated.
func GetPrincipal(ctx context.Context) (*models.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*models.Principal)
	return principal, ok
}

// GetClaims retrieves the verified JWT claims from the context.
func GetClaims(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
