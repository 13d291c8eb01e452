package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ExpiryDirective is the caller's instruction for a credential lifetime. Raw keeps the
// original text so it can be echoed back; TTL is the parsed duration.
type ExpiryDirective struct {
	Raw string
	TTL time.Duration
}

// ParseExpiryDirective parses a lifetime expressed as a Go duration ("1h", "90m", "0s"),
// a number of days ("7d") or a plain number of seconds ("3600").
func ParseExpiryDirective(raw string) (ExpiryDirective, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ExpiryDirective{}, fmt.Errorf("empty expiry directive")
	}

	ttl, err := parseLifetime(value)
	if err != nil {
		return ExpiryDirective{}, err
	}
	if ttl < 0 {
		return ExpiryDirective{}, fmt.Errorf("expiry directive %q is negative", raw)
	}

	return ExpiryDirective{Raw: value, TTL: ttl}, nil
}

func parseLifetime(value string) (time.Duration, error) {
	if seconds, err := strconv.ParseInt(value, 10, 64); err == nil {
		if seconds > math.MaxInt64/int64(time.Second) {
			return 0, fmt.Errorf("expiry directive %q is too large", value)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	if days, ok := strings.CutSuffix(value, "d"); ok {
		n, err := strconv.ParseFloat(days, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid expiry directive %q", value)
		}
		ttl := n * float64(24*time.Hour)
		if math.IsNaN(ttl) || ttl > math.MaxInt64 || ttl < math.MinInt64 {
			return 0, fmt.Errorf("invalid expiry directive %q", value)
		}
		return time.Duration(ttl), nil
	}

	ttl, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid expiry directive %q", value)
	}
	return ttl, nil
}
