// Package usecase implements business logic orchestration for credential operations.
package usecase

import (
	"context"
	"time"

	apperrors "github.com/allisson/jwtservice/internal/errors"
	"github.com/allisson/jwtservice/internal/token/domain"
	tokenService "github.com/allisson/jwtservice/internal/token/service"
)

// tokenUseCase implements TokenUseCase on top of a signer and a revocation ledger.
type tokenUseCase struct {
	defaultExpiry domain.ExpiryDirective
	signer        tokenService.TokenSigner
	ledger        RevocationLedger
	now           func() time.Time
}

// Issue validates the claims, resolves the expiry directive and signs the credential.
//
// Reserved time fields supplied by the caller are dropped after the emptiness check,
// so a payload made only of iat/exp still produces a credential.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *domain.IssueTokenInput,
) (*domain.IssueTokenOutput, error) {
	if issueTokenInput == nil || len(issueTokenInput.Claims) == 0 {
		return nil, domain.ErrEmptyPayload
	}

	directive := t.defaultExpiry
	if issueTokenInput.ExpiresIn != "" {
		parsed, err := domain.ParseExpiryDirective(issueTokenInput.ExpiresIn)
		if err != nil {
			return nil, apperrors.WithCause(domain.ErrInvalidExpiry, err)
		}
		directive = parsed
	}

	signed, err := t.signer.Sign(issueTokenInput.Claims.WithoutTimeFields(), directive.TTL)
	if err != nil {
		return nil, err
	}

	return &domain.IssueTokenOutput{
		Token:     signed.Token,
		ExpiresIn: directive.Raw,
		IssuedAt:  signed.IssuedAt,
		ExpiresAt: signed.ExpiresAt,
	}, nil
}

// VerifyAndAuthenticate checks the revocation ledger, then the signer.
func (t *tokenUseCase) VerifyAndAuthenticate(ctx context.Context, token string) (domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	if t.ledger.Contains(token) {
		return nil, domain.ErrRevokedToken
	}

	return t.signer.Verify(token)
}

// Revoke records the credential in the ledger. The unverified exp is kept for pruning.
func (t *tokenUseCase) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrMissingToken
	}

	claims, err := t.signer.Decode(token)
	if err != nil {
		return err
	}

	entry := &domain.RevokedToken{
		Token:     token,
		RevokedAt: t.now().UTC(),
	}
	if expiresAt, ok := claims.ExpiresAt(); ok {
		entry.ExpiresAt = &expiresAt
	}

	t.ledger.Add(entry)
	return nil
}

// PruneRevoked removes ledger entries that are past their own exp.
func (t *tokenUseCase) PruneRevoked(ctx context.Context) (int, error) {
	return t.ledger.PruneExpired(t.now().UTC()), nil
}

// NewTokenUseCase creates a new TokenUseCase with the provided dependencies.
func NewTokenUseCase(
	defaultExpiry domain.ExpiryDirective,
	signer tokenService.TokenSigner,
	ledger RevocationLedger,
) TokenUseCase {
	return &tokenUseCase{
		defaultExpiry: defaultExpiry,
		signer:        signer,
		ledger:        ledger,
		now:           time.Now,
	}
}
