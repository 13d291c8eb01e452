package usecase

import (
	"context"
	"time"

	"github.com/allisson/jwtservice/internal/metrics"
	"github.com/allisson/jwtservice/internal/token/domain"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
// The status label carries the failure reason code so rejections can be told apart.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for credential issuance.
func (t *tokenUseCaseWithMetrics) Issue(
	ctx context.Context,
	issueTokenInput *domain.IssueTokenInput,
) (*domain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := t.next.Issue(ctx, issueTokenInput)
	t.record(ctx, "token_issue", start, err)
	return output, err
}

// VerifyAndAuthenticate records metrics for credential verification.
func (t *tokenUseCaseWithMetrics) VerifyAndAuthenticate(ctx context.Context, token string) (domain.Claims, error) {
	start := time.Now()
	claims, err := t.next.VerifyAndAuthenticate(ctx, token)
	t.record(ctx, "token_verify", start, err)
	return claims, err
}

// Revoke records metrics for credential revocation.
func (t *tokenUseCaseWithMetrics) Revoke(ctx context.Context, token string) error {
	start := time.Now()
	err := t.next.Revoke(ctx, token)
	t.record(ctx, "token_revoke", start, err)
	return err
}

// PruneRevoked records metrics for ledger pruning.
func (t *tokenUseCaseWithMetrics) PruneRevoked(ctx context.Context) (int, error) {
	start := time.Now()
	removed, err := t.next.PruneRevoked(ctx)
	t.record(ctx, "token_prune", start, err)
	return removed, err
}

func (t *tokenUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	t.metrics.ObserveOperation(ctx, operation, domain.Reason(err), time.Since(start))
}
