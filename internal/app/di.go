// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/jwtservice/internal/config"
	"github.com/allisson/jwtservice/internal/http"
	"github.com/allisson/jwtservice/internal/metrics"
	"github.com/allisson/jwtservice/internal/token/domain"
	tokenHTTP "github.com/allisson/jwtservice/internal/token/http"
	tokenRepository "github.com/allisson/jwtservice/internal/token/repository"
	tokenService "github.com/allisson/jwtservice/internal/token/service"
	tokenUseCase "github.com/allisson/jwtservice/internal/token/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config  *config.Config
	version string

	// Infrastructure
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Token components
	signer           tokenService.TokenSigner
	revocationLedger *tokenRepository.MemoryRevocationLedger
	tokenUseCase     tokenUseCase.TokenUseCase
	revocationPruner *tokenUseCase.RevocationPruner

	// Handlers
	tokenHandler     *tokenHTTP.TokenHandler
	protectedHandler *tokenHTTP.ProtectedHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                   sync.Mutex
	loggerInit           sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	signerInit           sync.Once
	revocationLedgerInit sync.Once
	tokenUseCaseInit     sync.Once
	revocationPrunerInit sync.Once
	tokenHandlerInit     sync.Once
	protectedHandlerInit sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		version:    "dev",
		initErrors: make(map[string]error),
	}
}

// WithVersion sets the version reported by the status endpoint.
func (c *Container) WithVersion(version string) *Container {
	c.version = version
	return c
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.setInitError("metricsProvider", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsProvider"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is returned
// when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.setInitError("businessMetrics", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("businessMetrics"); storedErr != nil {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Signer returns the credential signer built from JWT_ALGORITHM and JWT_SECRET.
func (c *Container) Signer() (tokenService.TokenSigner, error) {
	var err error
	c.signerInit.Do(func() {
		c.signer, err = c.initSigner()
		if err != nil {
			c.setInitError("signer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("signer"); storedErr != nil {
		return nil, storedErr
	}
	return c.signer, nil
}

// RevocationLedger returns the process-wide revocation ledger.
func (c *Container) RevocationLedger() *tokenRepository.MemoryRevocationLedger {
	c.revocationLedgerInit.Do(func() {
		c.revocationLedger = tokenRepository.NewMemoryRevocationLedger()
	})
	return c.revocationLedger
}

// TokenUseCase returns the credential service.
func (c *Container) TokenUseCase() (tokenUseCase.TokenUseCase, error) {
	var err error
	c.tokenUseCaseInit.Do(func() {
		c.tokenUseCase, err = c.initTokenUseCase()
		if err != nil {
			c.setInitError("tokenUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenUseCase, nil
}

// RevocationPruner returns the background pruner, or nil when pruning is disabled.
func (c *Container) RevocationPruner() (*tokenUseCase.RevocationPruner, error) {
	var err error
	c.revocationPrunerInit.Do(func() {
		c.revocationPruner, err = c.initRevocationPruner()
		if err != nil {
			c.setInitError("revocationPruner", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("revocationPruner"); storedErr != nil {
		return nil, storedErr
	}
	return c.revocationPruner, nil
}

// TokenHandler returns the HTTP handler for the token endpoints.
func (c *Container) TokenHandler() (*tokenHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.setInitError("tokenHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("tokenHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

// ProtectedHandler returns the HTTP handler for the gated routes.
func (c *Container) ProtectedHandler() *tokenHTTP.ProtectedHandler {
	c.protectedHandlerInit.Do(func() {
		c.protectedHandler = tokenHTTP.NewProtectedHandler(c.Logger())
	})
	return c.protectedHandler
}

// HTTPServer returns the HTTP server instance with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.setInitError("httpServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("httpServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.setInitError("metricsServer", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("metricsServer"); storedErr != nil {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) setInitError(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

func (c *Container) initError(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	ledger := c.RevocationLedger()
	if err := metrics.RegisterRevocationLedgerGauge(
		provider.MeterProvider(),
		c.config.MetricsNamespace,
		ledger.Len,
	); err != nil {
		return nil, fmt.Errorf("failed to register revocation ledger gauge: %w", err)
	}

	return businessMetrics, nil
}

// initSigner creates the HMAC signer. Using the built-in default secret is allowed but
// logged, since any party knowing it can mint credentials.
func (c *Container) initSigner() (tokenService.TokenSigner, error) {
	if c.config.UsesDefaultSecret() {
		c.Logger().Warn("JWT_SECRET is not set, using the default secret; set JWT_SECRET in production")
	}

	signer, err := tokenService.NewJWTSigner(
		domain.Algorithm(c.config.JWTAlgorithm),
		[]byte(c.config.JWTSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}
	return signer, nil
}

func (c *Container) initTokenUseCase() (tokenUseCase.TokenUseCase, error) {
	defaultExpiry, err := domain.ParseExpiryDirective(c.config.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN %q: %w", c.config.JWTExpiresIn, err)
	}

	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for token use case: %w", err)
	}

	baseUseCase := tokenUseCase.NewTokenUseCase(defaultExpiry, signer, c.RevocationLedger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return tokenUseCase.NewTokenUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

func (c *Container) initRevocationPruner() (*tokenUseCase.RevocationPruner, error) {
	if !c.config.RevocationPruneEnabled {
		return nil, nil
	}

	useCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for revocation pruner: %w", err)
	}

	return tokenUseCase.NewRevocationPruner(useCase, c.config.RevocationPruneInterval, c.Logger()), nil
}

func (c *Container) initTokenHandler() (*tokenHTTP.TokenHandler, error) {
	useCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
	}

	return tokenHTTP.NewTokenHandler(useCase, c.Logger()), nil
}

// initHTTPServer creates the HTTP server and configures its router.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	useCase, err := c.TokenUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get token use case for http server: %w", err)
	}

	tokenHandler, err := c.TokenHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get token handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(c.config.ServerHost, c.config.ServerPort, c.version, logger)
	server.SetupRouter(c.config, tokenHandler, c.ProtectedHandler(), useCase, metricsProvider)

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if metricsProvider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), metricsProvider), nil
}
