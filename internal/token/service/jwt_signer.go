package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/allisson/jwtservice/internal/errors"
	"github.com/allisson/jwtservice/internal/token/domain"
)

// Option configures a JWT signer.
type Option func(*jwtSigner)

// WithClock overrides the time source used for iat, exp and verification.
func WithClock(now func() time.Time) Option {
	return func(s *jwtSigner) {
		s.now = now
	}
}

type jwtSigner struct {
	algorithm domain.Algorithm
	method    *jwt.SigningMethodHMAC
	secret    []byte
	parser    *jwt.Parser
	decoder   *jwt.Parser
	now       func() time.Time
}

// NewJWTSigner creates an HMAC signer for the given algorithm and shared secret.
func NewJWTSigner(algorithm domain.Algorithm, secret []byte, opts ...Option) (TokenSigner, error) {
	if !algorithm.IsSupported() {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if len(secret) == 0 {
		return nil, errors.New("signing secret cannot be empty")
	}

	method, ok := jwt.GetSigningMethod(string(algorithm)).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("signing method %q is not available", algorithm)
	}

	s := &jwtSigner{
		algorithm: algorithm,
		method:    method,
		secret:    append([]byte(nil), secret...),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{string(algorithm)}),
		jwt.WithTimeFunc(s.now),
		jwt.WithStrictDecoding(),
	)
	s.decoder = jwt.NewParser()

	return s, nil
}

// Sign adds iat and exp to a copy of claims and signs it. Time fields have second precision.
func (s *jwtSigner) Sign(claims domain.Claims, ttl time.Duration) (*domain.SignedToken, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl).Truncate(time.Second)

	payload := jwt.MapClaims{}
	for key, value := range claims {
		payload[key] = value
	}
	payload[domain.ClaimIssuedAt] = jwt.NewNumericDate(issuedAt)
	payload[domain.ClaimExpiresAt] = jwt.NewNumericDate(expiresAt)

	signed, err := jwt.NewWithClaims(s.method, payload).SignedString(s.secret)
	if err != nil {
		if isEncodingError(err) {
			return nil, apperrors.WithCause(domain.ErrEncoding, err)
		}
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &domain.SignedToken{
		Token:     signed,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the credential in three steps: structure, signature, then claims. Only the
// header is decoded before the HMAC runs over the raw header.payload text, so any edit to
// the payload of a well-formed credential reports ErrInvalidSignature.
func (s *jwtSigner) Verify(token string) (domain.Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, apperrors.WithCause(domain.ErrMalformedToken, jwt.ErrTokenMalformed)
	}

	if err := s.checkStructure(parts); err != nil {
		return nil, apperrors.WithCause(domain.ErrMalformedToken, err)
	}

	signature, err := s.parser.DecodeSegment(parts[2])
	if err != nil {
		return nil, apperrors.WithCause(domain.ErrInvalidSignature, err)
	}
	if err := s.method.Verify(parts[0]+"."+parts[1], signature, s.secret); err != nil {
		return nil, apperrors.WithCause(domain.ErrInvalidSignature, err)
	}

	parsed, err := s.parser.Parse(token, s.keyFunc)
	if err != nil {
		return nil, translateParseError(err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrMalformedToken
	}

	return domain.Claims(mapClaims), nil
}

// Decode returns the claims of a structurally valid credential without verifying it.
// Base64 padding bits are not checked here.
func (s *jwtSigner) Decode(token string) (domain.Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := s.decoder.ParseUnverified(token, claims); err != nil {
		return nil, apperrors.WithCause(domain.ErrMalformedToken, err)
	}
	return domain.Claims(claims), nil
}

// Algorithm returns the configured signing algorithm name.
func (s *jwtSigner) Algorithm() string {
	return string(s.algorithm)
}

func (s *jwtSigner) checkStructure(parts []string) error {
	headerBytes, err := s.parser.DecodeSegment(parts[0])
	if err != nil {
		return fmt.Errorf("could not decode header: %w", err)
	}

	var header map[string]any
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return fmt.Errorf("header is not a JSON object: %w", err)
	}

	return nil
}

func (s *jwtSigner) keyFunc(_ *jwt.Token) (any, error) {
	return s.secret, nil
}

func translateParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.WithCause(domain.ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.WithCause(domain.ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return apperrors.WithCause(domain.ErrTokenNotActive, err)
	default:
		return apperrors.WithCause(domain.ErrMalformedToken, err)
	}
}

func isEncodingError(err error) bool {
	var unsupportedValue *json.UnsupportedValueError
	var unsupportedType *json.UnsupportedTypeError
	var marshalerErr *json.MarshalerError
	return errors.As(err, &unsupportedValue) ||
		errors.As(err, &unsupportedType) ||
		errors.As(err, &marshalerErr)
}
