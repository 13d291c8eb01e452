package domain

import (
	apperrors "github.com/allisson/jwtservice/internal/errors"
)

// Issuance errors.
var (
	// ErrEmptyPayload indicates the caller supplied no claims.
	ErrEmptyPayload = apperrors.Define(apperrors.ErrInvalidInput, "empty_payload", "payload cannot be empty")

	// ErrInvalidExpiry indicates the expiry directive could not be parsed.
	ErrInvalidExpiry = apperrors.Define(
		apperrors.ErrInvalidInput,
		"invalid_expiry",
		"expiresIn must be a duration such as 1h, 30m, 7d or a number of seconds",
	)

	// ErrEncoding indicates the claims contain values that cannot be serialized.
	ErrEncoding = apperrors.Define(apperrors.ErrInvalidInput, "encoding_error", "payload cannot be encoded")
)

// Verification and revocation errors.
var (
	// ErrMissingToken indicates the token field was absent or empty.
	ErrMissingToken = apperrors.Define(apperrors.ErrInvalidInput, "missing_token", "token is required")

	// ErrInvalidTokenFormat is reported by revocation when the string is not a credential at all.
	ErrInvalidTokenFormat = apperrors.Define(
		apperrors.ErrInvalidInput,
		"invalid_token_format",
		"invalid token format",
	)

	// ErrMalformedToken indicates the string does not decode into header, payload and signature.
	ErrMalformedToken = apperrors.Define(
		apperrors.ErrUnauthorized,
		"malformed_token",
		"token is invalid or malformed",
	)

	// ErrInvalidSignature indicates a structurally valid credential whose signature does not match.
	// Callers see the same message as ErrMalformedToken; the code differs.
	ErrInvalidSignature = apperrors.Define(
		apperrors.ErrUnauthorized,
		"invalid_signature",
		"token is invalid or malformed",
	)

	// ErrExpiredToken indicates a correctly signed credential past its exp.
	ErrExpiredToken = apperrors.Define(apperrors.ErrUnauthorized, "token_expired", "token has expired")

	// ErrTokenNotActive indicates a correctly signed credential whose nbf is in the future.
	ErrTokenNotActive = apperrors.Define(apperrors.ErrUnauthorized, "token_not_active", "token is not active yet")

	// ErrRevokedToken indicates the credential is present in the revocation ledger.
	ErrRevokedToken = apperrors.Define(apperrors.ErrUnauthorized, "token_revoked", "token has been revoked")
)

// Authorization gate errors.
var (
	// ErrMissingCredential indicates the bearer carrier was absent or malformed.
	ErrMissingCredential = apperrors.Define(
		apperrors.ErrUnauthorized,
		"missing_credential",
		"authentication token required",
	)

	// ErrInsufficientRole indicates an authenticated caller whose role is not allowed.
	ErrInsufficientRole = apperrors.Define(
		apperrors.ErrForbidden,
		"insufficient_role",
		"access denied for this role",
	)
)

// Reason returns the failure code used to label logs and metrics. It returns "success"
// for a nil error and "error" for errors outside the credential taxonomy.
func Reason(err error) string {
	if err == nil {
		return "success"
	}
	if code := apperrors.Code(err); code != "" {
		return code
	}
	return "error"
}
