package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/allisson/jwtservice/internal/token/domain"
	"github.com/allisson/jwtservice/internal/token/http/dto"
	tokenUseCase "github.com/allisson/jwtservice/internal/token/usecase"
)

// RunVerifyToken verifies a credential and prints its claims. The revocation ledger of a
// CLI process is empty, so only signature, structure and expiry are checked in practice.
func RunVerifyToken(
	ctx context.Context,
	tokenUseCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	claims, err := tokenUseCase.VerifyAndAuthenticate(ctx, token)
	if err != nil {
		logger.Warn("token verification failed", slog.String("reason", domain.Reason(err)))
		return fmt.Errorf("token is not valid: %w", err)
	}

	response := dto.MapClaimsToVerifyResponse(claims)
	if format == "json" {
		return writeJSON(writer, response)
	}

	if _, err := fmt.Fprintln(writer, "Token is valid"); err != nil {
		return err
	}
	if issuedAt, ok := claims.IssuedAt(); ok {
		if _, err := fmt.Fprintf(writer, "Issued: %s\n", dto.FormatTimestamp(issuedAt)); err != nil {
			return err
		}
	}
	if response.Expires != "" {
		if _, err := fmt.Fprintf(writer, "Expires: %s\n", response.Expires); err != nil {
			return err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(claims)) {
		if _, err := fmt.Fprintf(writer, "  %s: %v\n", key, claims[key]); err != nil {
			return err
		}
	}
	return nil
}
