// Package domain defines the credential domain model: claims sets, expiry directives,
// revocation ledger entries, the failure taxonomy and the role-based authorization rule.
package domain

import "slices"

// Reserved claim names. Time fields are always assigned by the signer and any
// caller-supplied value for them is discarded on issuance.
const (
	// ClaimRole carries the caller's role and is read by Authorize.
	ClaimRole = "role"

	// ClaimIssuedAt is the issuance time in epoch seconds.
	ClaimIssuedAt = "iat"

	// ClaimExpiresAt is the expiration time in epoch seconds.
	ClaimExpiresAt = "exp"

	// ClaimNotBefore is the activation time in epoch seconds.
	ClaimNotBefore = "nbf"
)

// timeClaims lists the reserved time fields.
var timeClaims = []string{ClaimIssuedAt, ClaimExpiresAt, ClaimNotBefore}

// Algorithm identifies the HMAC signing algorithm used for credentials.
type Algorithm string

const (
	// HS256 signs with HMAC-SHA256.
	HS256 Algorithm = "HS256"

	// HS384 signs with HMAC-SHA384.
	HS384 Algorithm = "HS384"

	// HS512 signs with HMAC-SHA512.
	HS512 Algorithm = "HS512"
)

// SupportedAlgorithms lists the accepted signing algorithms.
var SupportedAlgorithms = []Algorithm{HS256, HS384, HS512}

// IsSupported reports whether the algorithm can be used to sign credentials.
func (a Algorithm) IsSupported() bool {
	return slices.Contains(SupportedAlgorithms, a)
}
