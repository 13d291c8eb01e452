// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/jwtservice/internal/token/domain"
)

// TimestampLayout is the ISO-8601 layout used for expiry timestamps, always in UTC.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// StatusResponse is returned by the root endpoint.
type StatusResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// GenerateTokenResponse contains the issued credential.
type GenerateTokenResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	ExpiresIn string `json:"expiresIn"`
	ExpiresAt string `json:"expiresAt"`
}

// MapIssueOutputToResponse converts the use case output to an API response.
func MapIssueOutputToResponse(output *domain.IssueTokenOutput) GenerateTokenResponse {
	return GenerateTokenResponse{
		Success:   true,
		Token:     output.Token,
		ExpiresIn: output.ExpiresIn,
		ExpiresAt: FormatTimestamp(output.ExpiresAt),
	}
}

// VerifyTokenResponse contains the verified claims. Expires is omitted when the
// credential carries no exp.
type VerifyTokenResponse struct {
	Success bool          `json:"success"`
	Payload domain.Claims `json:"payload"`
	Expires string        `json:"expires,omitempty"`
}

// MapClaimsToVerifyResponse converts verified claims to an API response.
func MapClaimsToVerifyResponse(claims domain.Claims) VerifyTokenResponse {
	response := VerifyTokenResponse{
		Success: true,
		Payload: claims,
	}
	if expiresAt, ok := claims.ExpiresAt(); ok {
		response.Expires = FormatTimestamp(expiresAt)
	}
	return response
}

// MessageResponse is a success response carrying only a message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserResponse is returned by protected routes.
type UserResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    domain.Claims `json:"user"`
}

// ProfileResponse contains the caller's claims without time fields.
type ProfileResponse struct {
	Success bool          `json:"success"`
	Profile domain.Claims `json:"profile"`
}

// FormatTimestamp formats t in UTC with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
