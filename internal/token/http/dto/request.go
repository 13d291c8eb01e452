// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"fmt"
	"maps"
	"strconv"

	validation "github.com/jellydator/validation"

	"github.com/allisson/jwtservice/internal/token/domain"
	customValidation "github.com/allisson/jwtservice/internal/validation"
)

// ExpiresInField is the body field holding the expiry directive. It is never signed as a claim.
const ExpiresInField = "expiresIn"

// GenerateTokenRequest is the parsed body of a generate call: every field except
// expiresIn becomes a claim.
type GenerateTokenRequest struct {
	Claims    domain.Claims
	ExpiresIn string
}

// NewGenerateTokenRequest splits a decoded JSON object into claims and the expiry directive.
// expiresIn may be a string ("1h", "7d") or a JSON number of seconds.
func NewGenerateTokenRequest(body map[string]any) (*GenerateTokenRequest, error) {
	claims := domain.Claims(maps.Clone(body))
	if claims == nil {
		claims = domain.Claims{}
	}

	raw, ok := claims[ExpiresInField]
	delete(claims, ExpiresInField)

	req := &GenerateTokenRequest{Claims: claims}
	if !ok || raw == nil {
		return req, nil
	}

	switch v := raw.(type) {
	case string:
		req.ExpiresIn = v
	case float64:
		req.ExpiresIn = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return nil, fmt.Errorf("%s: must be a string or a number of seconds", ExpiresInField)
	}

	return req, nil
}

// Validate checks if the generate token request is valid. Emptiness of the claims is
// checked by the use case.
func (r *GenerateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ExpiresIn,
			customValidation.ExpiryDirective,
		),
	)
}

// TokenRequest carries a credential for the verify and revoke endpoints.
type TokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the token request is valid.
func (r *TokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
