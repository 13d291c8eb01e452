package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/allisson/jwtservice/internal/token/domain"
	"github.com/allisson/jwtservice/internal/token/http/dto"
	tokenUseCase "github.com/allisson/jwtservice/internal/token/usecase"
)

// RunIssueToken issues a credential for the claims given as a JSON object.
// An empty expiresIn uses the configured default lifetime.
func RunIssueToken(
	ctx context.Context,
	tokenUseCase tokenUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	claimsJSON string,
	expiresIn string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	var claims domain.Claims
	decoder := json.NewDecoder(strings.NewReader(claimsJSON))
	if err := decoder.Decode(&claims); err != nil {
		return fmt.Errorf("claims must be a JSON object: %w", err)
	}

	output, err := tokenUseCase.Issue(ctx, &domain.IssueTokenInput{
		Claims:    claims,
		ExpiresIn: expiresIn,
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	logger.Info("token issued", slog.String("expires_in", output.ExpiresIn))

	response := dto.MapIssueOutputToResponse(output)
	if format == "json" {
		return writeJSON(writer, response)
	}

	_, err = fmt.Fprintf(writer, "Token: %s\nExpires In: %s\nExpires At: %s\n",
		response.Token, response.ExpiresIn, response.ExpiresAt)
	return err
}
