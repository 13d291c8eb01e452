package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/jwtservice/internal/httputil"
	"github.com/allisson/jwtservice/internal/token/domain"
	tokenUseCase "github.com/allisson/jwtservice/internal/token/usecase"
)

const bearerPrefix = "bearer "

// ExtractBearerToken returns the credential from an Authorization header value.
// The scheme is matched case-insensitively. A missing header, another scheme or an
// empty credential yields ErrMissingCredential.
func ExtractBearerToken(header string) (string, error) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", domain.ErrMissingCredential
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", domain.ErrMissingCredential
	}

	return token, nil
}

// AuthenticationMiddleware verifies the Bearer credential in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer credential (case-insensitive scheme)
// 2. Checks it with TokenUseCase.VerifyAndAuthenticate (revocation first, then signature and expiry)
// 3. Stores the claims and the raw credential in the request context
//
// Error handling:
//   - Missing or malformed Authorization header → 401 missing_credential
//   - Revoked, expired, tampered or malformed credential → 401 with the matching reason
//
// Usage:
//
//	router.GET("/api/protected",
//	    AuthenticationMiddleware(tokenUseCase, logger),
//	    handler)
func AuthenticationMiddleware(tokenUseCase tokenUseCase.TokenUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		claims, err := tokenUseCase.VerifyAndAuthenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("reason", domain.Reason(err)))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))

		role, _ := claims.Role()
		logger.Debug("authentication successful", slog.String("role", role))

		c.Next()
	}
}

// AuthorizationMiddleware allows the request only when the authenticated caller's role is
// one of allowedRoles.
//
// This middleware MUST be used after AuthenticationMiddleware. Without claims in the
// context it responds 401; with a role outside the allow-list it responds 403.
//
// Usage:
//
//	router.GET("/api/admin",
//	    AuthenticationMiddleware(tokenUseCase, logger),
//	    AuthorizationMiddleware([]string{"admin"}, logger),
//	    handler)
func AuthorizationMiddleware(allowedRoles []string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c.Request.Context())
		if !ok || claims == nil {
			logger.Debug("authorization failed: no authenticated caller in context")
			httputil.HandleErrorGin(c, domain.ErrMissingCredential, logger)
			c.Abort()
			return
		}

		if err := domain.Authorize(claims, allowedRoles); err != nil {
			role, _ := claims.Role()
			logger.Debug("authorization failed: insufficient role",
				slog.String("role", role),
				slog.String("path", c.Request.URL.Path),
				slog.Any("allowed_roles", allowedRoles))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
