package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/jwtservice/internal/httputil"
	"github.com/allisson/jwtservice/internal/token/domain"
	"github.com/allisson/jwtservice/internal/token/http/dto"
)

// ProtectedHandler serves routes behind the authorization gate.
type ProtectedHandler struct {
	logger *slog.Logger
}

// NewProtectedHandler creates a new protected handler.
func NewProtectedHandler(logger *slog.Logger) *ProtectedHandler {
	return &ProtectedHandler{logger: logger}
}

// ProtectedHandler returns the caller's claims to any authenticated caller.
// GET /api/protected
func (h *ProtectedHandler) ProtectedHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Message: "access granted to protected resource",
		User:    claims,
	})
}

// AdminHandler returns the caller's claims. Requires the admin role.
// GET /api/admin
func (h *ProtectedHandler) AdminHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.UserResponse{
		Success: true,
		Message: "access granted to admin area",
		User:    claims,
	})
}

// ProfileHandler returns the caller's claims without iat, exp and nbf.
// GET /api/profile
func (h *ProtectedHandler) ProfileHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		Success: true,
		Profile: claims.WithoutTimeFields(),
	})
}

func (h *ProtectedHandler) claims(c *gin.Context) (domain.Claims, bool) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, domain.ErrMissingCredential, h.logger)
		return nil, false
	}
	return claims, true
}
