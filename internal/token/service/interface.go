// Package service provides credential signing and verification.
package service

import (
	"time"

	"github.com/allisson/jwtservice/internal/token/domain"
)

// TokenSigner signs claims into compact credentials and verifies them back.
type TokenSigner interface {
	// Sign adds iat and exp (iat + ttl) to a copy of claims and returns the signed credential.
	Sign(claims domain.Claims, ttl time.Duration) (*domain.SignedToken, error)

	// Verify checks structure, signature, exp and nbf and returns a fresh claims map.
	Verify(token string) (domain.Claims, error)

	// Decode returns the claims without verifying the signature or the time fields.
	Decode(token string) (domain.Claims, error)

	// Algorithm returns the configured signing algorithm name.
	Algorithm() string
}
