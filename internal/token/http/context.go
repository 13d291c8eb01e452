// Package http provides HTTP handlers and middleware for credential operations.
package http

import (
	"context"

	"github.com/allisson/jwtservice/internal/token/domain"
)

// claimsKey is a context key type for storing verified claims.
type claimsKey struct{}

// WithClaims stores verified claims in the context.
// This is typically called by the authentication middleware after successful verification.
func WithClaims(ctx context.Context, claims domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves verified claims from the context.
// Returns (claims, true) if claims are present, or (nil, false) if none were set.
func GetClaims(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(domain.Claims)
	return claims, ok
}
