// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	customValidation "github.com/allisson/jwtservice/internal/validation"
)

// DefaultJWTSecret is the fallback signing secret. It is only suitable for local development.
const DefaultJWTSecret = "secretkey" //nolint:gosec // development default, a warning is logged when used

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// AppEnv is the environment name (e.g., "development", "production").
	AppEnv string
	// Debug adds internal error details to error responses.
	Debug bool
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// JWTSecret is the shared HMAC secret used to sign and verify credentials.
	JWTSecret string
	// JWTExpiresIn is the default expiry directive applied when a request does not set one.
	JWTExpiresIn string
	// JWTAlgorithm is the HMAC signing algorithm (HS256, HS384 or HS512).
	JWTAlgorithm string

	// RateLimitTokenEnabled indicates whether rate limiting for the token endpoints is enabled.
	RateLimitTokenEnabled bool
	// RateLimitTokenRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitTokenRequestsPerSec float64
	// RateLimitTokenBurst is the burst size for the token endpoints rate limiting.
	RateLimitTokenBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// RevocationPruneEnabled turns on periodic removal of revoked credentials past their exp.
	RevocationPruneEnabled bool
	// RevocationPruneInterval is the time between two pruning runs.
	RevocationPruneInterval time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	appEnv := env.GetString("APP_ENV", "development")

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 3000),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 15, time.Second),

		// Environment and logging
		AppEnv:   appEnv,
		Debug:    env.GetBool("DEBUG", appEnv != "production"),
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Credentials
		JWTSecret:    env.GetString("JWT_SECRET", DefaultJWTSecret),
		JWTExpiresIn: env.GetString("JWT_EXPIRES_IN", "1h"),
		JWTAlgorithm: env.GetString("JWT_ALGORITHM", "HS256"),

		// Rate Limiting for token endpoints (IP-based, unauthenticated)
		RateLimitTokenEnabled:        env.GetBool("RATE_LIMIT_TOKEN_ENABLED", true),
		RateLimitTokenRequestsPerSec: env.GetFloat64("RATE_LIMIT_TOKEN_REQUESTS_PER_SEC", 5.0),
		RateLimitTokenBurst:          env.GetInt("RATE_LIMIT_TOKEN_BURST", 10),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "jwtservice"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),

		// Revocation ledger pruning
		RevocationPruneEnabled:  env.GetBool("REVOCATION_PRUNE_ENABLED", false),
		RevocationPruneInterval: env.GetDuration("REVOCATION_PRUNE_INTERVAL_SECONDS", 300, time.Second),
	}
}

// Validate checks that the configuration can be used to start the service.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.JWTSecret, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&c.JWTExpiresIn, validation.Required, customValidation.ExpiryDirective),
		validation.Field(&c.JWTAlgorithm, validation.Required, customValidation.SigningAlgorithm),
		validation.Field(&c.RateLimitTokenRequestsPerSec,
			validation.When(c.RateLimitTokenEnabled, validation.Required, validation.Min(0.0)),
		),
		validation.Field(&c.RateLimitTokenBurst,
			validation.When(c.RateLimitTokenEnabled, validation.Required, validation.Min(1)),
		),
		validation.Field(&c.MetricsNamespace, validation.When(c.MetricsEnabled, validation.Required)),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required, validation.Min(1), validation.Max(65535)),
		),
		validation.Field(&c.RevocationPruneInterval,
			validation.When(c.RevocationPruneEnabled, validation.Required, validation.Min(time.Second)),
		),
	)
}

// UsesDefaultSecret reports whether the signing secret is the development fallback.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	default:
		return "release"
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
