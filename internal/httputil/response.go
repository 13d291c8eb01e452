// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/jwtservice/internal/errors"
)

const (
	// debugContextKey is the gin context key holding the debug flag.
	debugContextKey = "httputil.debug"

	// errorCodeContextKey holds the code of the error response written for the request.
	errorCodeContextKey = "httputil.error_code"
)

// ErrorResponse represents a structured error response.
// Detail carries the internal error chain and is only set in debug mode.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// DebugMiddleware marks every request with the debug flag read by the error handlers.
func DebugMiddleware(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(debugContextKey, enabled)
		c.Next()
	}
}

// MarkErrorCode records the error code of the response so request metrics can label it.
// The error handlers in this package call it; code writing its own error body should too.
func MarkErrorCode(c *gin.Context, code string) {
	c.Set(errorCodeContextKey, code)
}

// ErrorCode returns the error code recorded for the request, or an empty string.
func ErrorCode(c *gin.Context) string {
	return c.GetString(errorCodeContextKey)
}

// HandleErrorGin maps domain errors to HTTP status codes and returns a JSON response using Gin.
//
// Errors defined with apperrors.Define keep their own code and caller-safe message; the
// status comes from their kind. Unknown errors become 500 internal_error and never expose
// their text unless debug mode is on.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, errorResponse := mapError(err)
	writeError(c, statusCode, errorResponse, err, logger)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters using Gin.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	writeError(c, http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: "request body must be a JSON object",
	}, err, logger)
}

func mapError(err error) (int, ErrorResponse) {
	var domainErr *apperrors.Error
	if apperrors.As(err, &domainErr) {
		return statusForKind(domainErr.Kind), ErrorResponse{
			Error:   domainErr.Code,
			Message: domainErr.Message,
		}
	}

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: "the requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_input",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{
			Error:   "forbidden",
			Message: "you don't have permission to access this resource",
		}

	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "an internal error occurred",
		}
	}
}

func statusForKind(kind error) int {
	switch {
	case apperrors.Is(kind, apperrors.ErrNotFound):
		return http.StatusNotFound
	case apperrors.Is(kind, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case apperrors.Is(kind, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case apperrors.Is(kind, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, statusCode int, errorResponse ErrorResponse, err error, logger *slog.Logger) {
	errorResponse.Success = false
	MarkErrorCode(c, errorResponse.Error)
	if c.GetBool(debugContextKey) {
		errorResponse.Detail = err.Error()
	}

	if logger != nil {
		attrs := []any{
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		}
		if statusCode >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
		} else {
			logger.Warn("request rejected", attrs...)
		}
	}

	c.JSON(statusCode, errorResponse)
}
