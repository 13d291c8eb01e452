package domain

import (
	"encoding/json"
	"maps"
	"math"
	"time"
)

// Claims is the open key/value payload carried by a credential.
type Claims map[string]any

// Clone returns a shallow copy of the claims. Nested maps and slices are shared.
func (c Claims) Clone() Claims {
	return maps.Clone(c)
}

// WithoutTimeFields returns a copy of the claims without the reserved time fields.
func (c Claims) WithoutTimeFields() Claims {
	clone := c.Clone()
	for _, key := range timeClaims {
		delete(clone, key)
	}
	return clone
}

// Role returns the role claim when it is present and is a string.
func (c Claims) Role() (string, bool) {
	role, ok := c[ClaimRole].(string)
	return role, ok
}

// ExpiresAt returns the exp claim as a UTC time.
func (c Claims) ExpiresAt() (time.Time, bool) {
	return c.timeClaim(ClaimExpiresAt)
}

// IssuedAt returns the iat claim as a UTC time.
func (c Claims) IssuedAt() (time.Time, bool) {
	return c.timeClaim(ClaimIssuedAt)
}

func (c Claims) timeClaim(key string) (time.Time, bool) {
	var seconds float64
	switch v := c[key].(type) {
	case float64:
		seconds = v
	case int64:
		seconds = float64(v)
	case int:
		seconds = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		seconds = f
	default:
		return time.Time{}, false
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return time.Time{}, false
	}
	whole, frac := math.Modf(seconds)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC(), true
}
