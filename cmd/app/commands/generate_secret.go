package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// DefaultSecretBytes is the secret length used when --bytes is not given.
const DefaultSecretBytes = 64

// minSecretBytes matches the 256-bit minimum recommended for HS256.
const minSecretBytes = 32

// RunGenerateSecret writes a random base64url-encoded secret suitable for JWT_SECRET.
func RunGenerateSecret(writer io.Writer, size int, format string) error {
	if size < minSecretBytes {
		return fmt.Errorf("bytes must be at least %d, got: %d", minSecretBytes, size)
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"secret": secret,
			"bytes":  size,
		})
	}

	_, err := fmt.Fprintf(writer, "# Add this to your environment or .env file\nJWT_SECRET=\"%s\"\n", secret)
	return err
}
