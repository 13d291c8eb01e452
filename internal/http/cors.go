package http

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	corsWildcard = "*"
	corsMaxAge   = 12 * time.Hour
)

var (
	corsMethods        = []string{"GET", "POST", "OPTIONS"}
	corsRequestHeaders = []string{"Authorization", "Content-Type", "X-Request-Id"}
	corsExposedHeaders = []string{"X-Request-Id", "Retry-After"}
)

// createCORSMiddleware builds the CORS middleware for browser clients calling the token
// endpoints directly. It returns nil when CORS is disabled or no usable origin remains
// after parsing allowOrigins.
//
// allowOrigins is a comma-separated list of http(s) origins, or "*" to allow any origin.
// Credentials are only allowed with an explicit origin list.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins := validOrigins(parseOrigins(allowOrigins), logger)
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	}

	config := cors.Config{
		AllowMethods:  corsMethods,
		AllowHeaders:  corsRequestHeaders,
		ExposeHeaders: corsExposedHeaders,
		MaxAge:        corsMaxAge,
	}

	if containsWildcard(origins) {
		config.AllowAllOrigins = true
		logger.Warn("CORS allows any origin")
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
		logger.Info("CORS enabled", slog.Any("origins", origins))
	}

	return cors.New(config)
}

// parseOrigins splits a comma-separated origin list, dropping empty entries.
func parseOrigins(allowOrigins string) []string {
	if allowOrigins == "" {
		return nil
	}

	var origins []string
	for _, part := range strings.Split(allowOrigins, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// validOrigins drops entries the cors package would reject at construction time.
func validOrigins(origins []string, logger *slog.Logger) []string {
	valid := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin == corsWildcard || isHTTPOrigin(origin) {
			valid = append(valid, origin)
			continue
		}
		logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
	}
	return valid
}

func isHTTPOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && (u.Path == "" || u.Path == "/") && u.RawQuery == ""
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == corsWildcard {
			return true
		}
	}
	return false
}
