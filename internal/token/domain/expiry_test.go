package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiryDirective(t *testing.T) {
	testCases := []struct {
		name    string
		raw     string
		wantTTL time.Duration
		wantRaw string
	}{
		{"hours", "1h", time.Hour, "1h"},
		{"minutes", "30m", 30 * time.Minute, "30m"},
		{"compound", "1h30m", 90 * time.Minute, "1h30m"},
		{"zero_seconds", "0s", 0, "0s"},
		{"days", "7d", 7 * 24 * time.Hour, "7d"},
		{"fractional_days", "1.5d", 36 * time.Hour, "1.5d"},
		{"plain_seconds", "3600", time.Hour, "3600"},
		{"zero", "0", 0, "0"},
		{"trimmed", "  2h ", 2 * time.Hour, "2h"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			directive, err := ParseExpiryDirective(tc.raw)

			require.NoError(t, err)
			assert.Equal(t, tc.wantTTL, directive.TTL)
			assert.Equal(t, tc.wantRaw, directive.Raw)
		})
	}
}

func TestParseExpiryDirective_Errors(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"garbage", "soon"},
		{"bad_days", "xd"},
		{"negative_duration", "-1h"},
		{"negative_seconds", "-30"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseExpiryDirective(tc.raw)
			assert.Error(t, err)
		})
	}
}

func TestParseExpiryDirective_TooLarge(t *testing.T) {
	_, err := ParseExpiryDirective("9223372036854775807")
	assert.Error(t, err)

	_, err = ParseExpiryDirective("1e300d")
	assert.Error(t, err)
}
