// Package usecase defines business logic interfaces for credential issuance, verification and revocation.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/jwtservice/internal/token/domain"
)

// RevocationLedger records revoked credentials. Implementations must be safe for concurrent use.
type RevocationLedger interface {
	// Contains reports whether the exact credential string has been revoked.
	Contains(token string) bool

	// Add records a revoked credential. Re-adding an existing credential is a no-op.
	Add(entry *domain.RevokedToken)

	// Len returns the number of revoked credentials.
	Len() int

	// PruneExpired removes entries whose own exp is at or before now.
	PruneExpired(now time.Time) int
}

// TokenUseCase defines the credential lifecycle operations.
type TokenUseCase interface {
	// Issue signs the caller's claims with iat and exp added. The expiry directive falls back
	// to the configured default when empty.
	//
	// Returns ErrEmptyPayload for an empty claims set, ErrInvalidExpiry for an unparsable
	// directive and ErrEncoding for values that cannot be serialized.
	Issue(ctx context.Context, issueTokenInput *domain.IssueTokenInput) (*domain.IssueTokenOutput, error)

	// VerifyAndAuthenticate returns the claims of a credential that is neither revoked nor
	// cryptographically invalid. The revocation check always runs first.
	VerifyAndAuthenticate(ctx context.Context, token string) (domain.Claims, error)

	// Revoke adds a structurally valid credential to the ledger. The signature and expiry
	// are not checked. Revoking twice succeeds.
	Revoke(ctx context.Context, token string) error

	// PruneRevoked drops ledger entries whose own exp has passed and returns how many were removed.
	PruneRevoked(ctx context.Context) (int, error)
}
