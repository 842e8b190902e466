// Package http provides the HTTP server, routing, and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/zasta/tokenvault/internal/auth/domain"
	authHTTP "github.com/zasta/tokenvault/internal/auth/http"
	authService "github.com/zasta/tokenvault/internal/auth/service"
	"github.com/zasta/tokenvault/internal/config"
	"github.com/zasta/tokenvault/internal/metrics"
	vaultHTTP "github.com/zasta/tokenvault/internal/vault/http"
)

// Server represents the public HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
	host   string
	port   int
}

// NewServer creates a new HTTP server. The router is wired separately via
// SetupRouter before Start is called.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		host:   host,
		port:   port,
	}
}

// RouterConfig holds the dependencies needed to wire the API routes.
type RouterConfig struct {
	Config            *config.Config
	AuthHandler       *authHTTP.AuthHandler
	VaultHandler      *vaultHTTP.VaultHandler
	CredentialService authService.CredentialService
	MetricsProvider   *metrics.Provider
}

// SetupRouter builds the Gin router with middleware and API routes.
//
// Route protection:
//   - POST /v1/auth: unauthenticated, per-IP rate limited
//   - POST /v1/tokenize: bearer credential, TOKENIZER or DETOKENIZER role
//   - POST /v1/detokenize: bearer credential, DETOKENIZER role
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		cfg.Config.CORSEnabled,
		cfg.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.Config.MetricsEnabled && cfg.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			cfg.MetricsProvider.MeterProvider(),
			cfg.Config.MetricsNamespace,
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	authRoute := []gin.HandlerFunc{}
	if cfg.Config.RateLimitAuthEnabled {
		authRoute = append(authRoute, authHTTP.AuthRateLimitMiddleware(
			cfg.Config.RateLimitAuthRequestsPerSec,
			cfg.Config.RateLimitAuthBurst,
			s.logger,
		))
	}
	authRoute = append(authRoute, cfg.AuthHandler.AuthenticateHandler)
	v1.POST("/auth", authRoute...)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(cfg.CredentialService, s.logger))
	if cfg.Config.RateLimitEnabled {
		authenticated.Use(authHTTP.RateLimitMiddleware(
			cfg.Config.RateLimitRequestsPerSec,
			cfg.Config.RateLimitBurst,
			s.logger,
		))
	}

	authenticated.POST(
		"/tokenize",
		authHTTP.AuthorizationMiddleware(s.logger, authDomain.TokenizerRole, authDomain.DetokenizerRole),
		cfg.VaultHandler.TokenizeHandler,
	)
	authenticated.POST(
		"/detokenize",
		authHTTP.AuthorizationMiddleware(s.logger, authDomain.DetokenizerRole),
		cfg.VaultHandler.DetokenizeHandler,
	)

	s.router = router
}

// GetRouter returns the configured router for testing purposes.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, checking
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil {
		components["database"] = "error"
	} else if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.String("error", err.Error()))
		components["database"] = "error"
	}

	if components["database"] != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server. Blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured, call SetupRouter first")
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
