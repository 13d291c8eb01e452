package domain

import "time"

// SignedToken is the result of signing a claims set.
type SignedToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RevokedToken is a revocation ledger entry. Token is the credential string verbatim.
// ExpiresAt is read from the unverified payload and is nil when the credential has no exp.
type RevokedToken struct {
	Token     string
	ExpiresAt *time.Time
	RevokedAt time.Time
}

// IsExpired reports whether the revoked credential has passed its own expiry.
func (r *RevokedToken) IsExpired(now time.Time) bool {
	if r.ExpiresAt == nil {
		return false
	}
	return !now.Before(*r.ExpiresAt)
}

// IssueTokenInput contains the parameters for issuing a credential.
// An empty ExpiresIn selects the configured default lifetime.
type IssueTokenInput struct {
	Claims    Claims
	ExpiresIn string
}

// IssueTokenOutput contains the issued credential and the effective expiry directive.
type IssueTokenOutput struct {
	Token     string
	ExpiresIn string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
