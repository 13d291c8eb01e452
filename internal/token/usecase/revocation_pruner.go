package usecase

import (
	"context"
	"log/slog"
	"time"
)

// RevocationPruner periodically drops revoked credentials that are past their own exp.
type RevocationPruner struct {
	tokenUseCase TokenUseCase
	interval     time.Duration
	logger       *slog.Logger
}

// NewRevocationPruner creates a new RevocationPruner.
func NewRevocationPruner(tokenUseCase TokenUseCase, interval time.Duration, logger *slog.Logger) *RevocationPruner {
	return &RevocationPruner{
		tokenUseCase: tokenUseCase,
		interval:     interval,
		logger:       logger,
	}
}

// Start runs the pruning loop until ctx is cancelled.
func (p *RevocationPruner) Start(ctx context.Context) error {
	if p.logger != nil {
		p.logger.Info("starting revocation ledger pruner", slog.Duration("interval", p.interval))
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if p.logger != nil {
				p.logger.Info("stopping revocation ledger pruner")
			}
			return ctx.Err()
		case <-ticker.C:
			p.prune(ctx)
		}
	}
}

func (p *RevocationPruner) prune(ctx context.Context) {
	removed, err := p.tokenUseCase.PruneRevoked(ctx)
	if p.logger == nil {
		return
	}
	if err != nil {
		p.logger.Error("failed to prune revocation ledger", slog.Any("error", err))
		return
	}
	if removed > 0 {
		p.logger.Info("pruned revocation ledger", slog.Int("removed", removed))
	}
}
