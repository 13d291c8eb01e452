// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/jwtservice/internal/config"
	"github.com/allisson/jwtservice/internal/httputil"
	"github.com/allisson/jwtservice/internal/metrics"
	tokenHTTP "github.com/allisson/jwtservice/internal/token/http"
	"github.com/allisson/jwtservice/internal/token/http/dto"
	tokenUseCase "github.com/allisson/jwtservice/internal/token/usecase"
)

// ServiceName is reported by the root status endpoint.
const ServiceName = "jwt-microservice"

// Server represents the HTTP server
type Server struct {
	server   *http.Server
	router   *gin.Engine
	logger   *slog.Logger
	version  string
	shutdown atomic.Bool

	// ctx bounds background work started by the router, such as limiter cleanup.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(host string, port int, version string, logger *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		logger:  logger,
		version: version,
		ctx:     ctx,
		cancel:  cancel,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
//
// Routes:
//   - GET  /                     service status
//   - GET  /health, /ready       liveness and readiness
//   - POST /api/token/generate   issue a credential (rate limited)
//   - POST /api/token/verify     verify a credential (rate limited)
//   - POST /api/token/revoke     revoke a credential (rate limited)
//   - GET  /api/protected        any authenticated caller
//   - GET  /api/admin            role admin only
//   - GET  /api/profile          caller claims without time fields
func (s *Server) SetupRouter(
	cfg *config.Config,
	tokenHandler *tokenHTTP.TokenHandler,
	protectedHandler *tokenHTTP.ProtectedHandler,
	tokenUseCase tokenUseCase.TokenUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(RecoveryMiddleware(s.logger))
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(httputil.DebugMiddleware(cfg.Debug))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/", s.statusHandler)
	router.GET("/health", healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")

	token := api.Group("/token")
	if cfg.RateLimitTokenEnabled {
		token.Use(tokenHTTP.TokenRateLimitMiddleware(
			s.ctx,
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	{
		token.POST("/generate", tokenHandler.GenerateHandler)
		token.POST("/verify", tokenHandler.VerifyHandler)
		token.POST("/revoke", tokenHandler.RevokeHandler)
	}

	authenticated := api.Group("")
	authenticated.Use(tokenHTTP.AuthenticationMiddleware(tokenUseCase, s.logger))
	{
		authenticated.GET("/protected", protectedHandler.ProtectedHandler)
		authenticated.GET("/profile", protectedHandler.ProfileHandler)
		authenticated.GET("/admin",
			tokenHTTP.AuthorizationMiddleware([]string{"admin"}, s.logger),
			protectedHandler.AdminHandler,
		)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.ErrorResponse{
			Success: false,
			Error:   "not_found",
			Message: "route not found",
		})
	})

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return fmt.Errorf("router is not configured")
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server. Readiness reports not_ready from
// this point on.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.shutdown.Store(true)
	s.cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) statusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:  "online",
		Service: ServiceName,
		Version: s.version,
	})
}

// healthHandler is liveness only and is shared with the metrics listener.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.shutdown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"components": gin.H{
				"http": "shutting_down",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
