// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/jwtservice/internal/token/domain"
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// ExpiryDirective validates a credential lifetime such as "1h", "7d" or "3600".
var ExpiryDirective = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := domain.ParseExpiryDirective(s)
		return err == nil
	},
	validation.NewError("validation_expiry_directive", "must be a duration such as 1h, 30m, 7d or a number of seconds"),
)

// SigningAlgorithm validates that a string names a supported HMAC algorithm.
var SigningAlgorithm = validation.NewStringRuleWithError(
	func(s string) bool {
		return domain.Algorithm(s).IsSupported()
	},
	validation.NewError("validation_signing_algorithm", "must be one of HS256, HS384, HS512"),
)
