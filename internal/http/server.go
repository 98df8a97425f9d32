// Package http provides the HTTP server and request routing.
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

	filesHTTP "github.com/allisson/trustbox/internal/files/http"
)

// Option configures optional server behavior.
type Option func(*Server)

// WithFileHandler registers the encrypted file upload and download routes.
func WithFileHandler(handler *filesHTTP.FileHandler) Option {
	return func(s *Server) {
		s.fileHandler = handler
	}
}

// WithCORS enables CORS for the given comma-separated origin list.
func WithCORS(enabled bool, allowOrigins string) Option {
	return func(s *Server) {
		s.corsEnabled = enabled
		s.corsAllowOrigins = allowOrigins
	}
}

// WithRateLimit enables per-IP rate limiting on the file endpoints.
func WithRateLimit(enabled bool, rps float64, burst int) Option {
	return func(s *Server) {
		s.rateLimitEnabled = enabled
		s.rateLimitRPS = rps
		s.rateLimitBurst = burst
	}
}

// WithMetricsMiddleware installs an HTTP metrics collection middleware.
func WithMetricsMiddleware(middleware gin.HandlerFunc) Option {
	return func(s *Server) {
		s.metricsMiddleware = middleware
	}
}

// Server represents the HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger

	fileHandler       *filesHTTP.FileHandler
	metricsMiddleware gin.HandlerFunc

	corsEnabled      bool
	corsAllowOrigins string

	rateLimitEnabled bool
	rateLimitRPS     float64
	rateLimitBurst   int
}

// NewServer creates a new HTTP server. The database connection is used by
// the readiness endpoint; a nil connection reports not ready.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// setupRouter builds the gin engine with middleware and routes.
func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.metricsMiddleware != nil {
		router.Use(s.metricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(s.corsEnabled, s.corsAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	if s.fileHandler != nil {
		v1 := router.Group("/v1")

		if s.rateLimitEnabled {
			v1.Use(RateLimitMiddleware(s.rateLimitRPS, s.rateLimitBurst, s.logger))
		}

		v1.POST("/files", s.fileHandler.UploadHandler)
		v1.GET("/files/:token", s.fileHandler.DownloadHandler)
	}

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The
// database is the only hard dependency.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		components["database"] = "error"
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

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		s.router = s.setupRouter()
	}
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.router = s.setupRouter()
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
