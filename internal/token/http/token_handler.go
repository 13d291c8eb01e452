package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/jwtservice/internal/errors"
	"github.com/allisson/jwtservice/internal/httputil"
	"github.com/allisson/jwtservice/internal/token/domain"
	"github.com/allisson/jwtservice/internal/token/http/dto"
	tokenUseCase "github.com/allisson/jwtservice/internal/token/usecase"
)

// TokenHandler handles HTTP requests for credential operations.
type TokenHandler struct {
	tokenUseCase tokenUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase tokenUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// GenerateHandler issues a credential for the posted claims.
// POST /api/token/generate - The body is a JSON object of claims plus an optional expiresIn.
func (h *TokenHandler) GenerateHandler(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	req, err := dto.NewGenerateTokenRequest(body)
	if err != nil {
		httputil.HandleErrorGin(c, apperrors.WithCause(domain.ErrInvalidExpiry, err), h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, apperrors.WithCause(domain.ErrInvalidExpiry, err), h.logger)
		return
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &domain.IssueTokenInput{
		Claims:    req.Claims,
		ExpiresIn: req.ExpiresIn,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapIssueOutputToResponse(output))
}

// VerifyHandler verifies a credential and returns its claims.
// POST /api/token/verify - Body: {"token": "..."}.
func (h *TokenHandler) VerifyHandler(c *gin.Context) {
	token, ok := h.bindToken(c)
	if !ok {
		return
	}

	claims, err := h.tokenUseCase.VerifyAndAuthenticate(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClaimsToVerifyResponse(claims))
}

// RevokeHandler adds a credential to the revocation ledger.
// POST /api/token/revoke - Body: {"token": "..."}. Expired or foreign credentials are accepted.
func (h *TokenHandler) RevokeHandler(c *gin.Context) {
	token, ok := h.bindToken(c)
	if !ok {
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), token); err != nil {
		if errors.Is(err, domain.ErrMalformedToken) {
			err = apperrors.WithCause(domain.ErrInvalidTokenFormat, err)
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "token revoked successfully",
	})
}

func (h *TokenHandler) bindToken(c *gin.Context) (string, bool) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return "", false
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, apperrors.WithCause(domain.ErrMissingToken, err), h.logger)
		return "", false
	}

	return req.Token, true
}
