// Package http provides the API server wiring routes, middleware, and
// health endpoints.
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
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/healthdesk/healthinfo/internal/auth/http"
	authUseCase "github.com/healthdesk/healthinfo/internal/auth/usecase"
	clientsHTTP "github.com/healthdesk/healthinfo/internal/clients/http"
	"github.com/healthdesk/healthinfo/internal/config"
	enrollmentsHTTP "github.com/healthdesk/healthinfo/internal/enrollments/http"
	"github.com/healthdesk/healthinfo/internal/metrics"
	programsHTTP "github.com/healthdesk/healthinfo/internal/programs/http"
)

// Handlers groups the feature handlers mounted on the API server.
type Handlers struct {
	Auth       *authHTTP.AuthHandler
	Client     *clientsHTTP.ClientHandler
	Program    *programsHTTP.ProgramHandler
	Enrollment *enrollmentsHTTP.EnrollmentHandler
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates the API server with all routes and middleware wired.
// meterProvider may be nil when metrics are disabled.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
	authUC authUseCase.AuthUseCase,
	handlers Handlers,
	meterProvider metric.MeterProvider,
) *Server {
	server := &Server{
		db:     db,
		logger: logger,
	}

	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(logger))

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", server.healthHandler)
	router.GET("/ready", server.readinessHandler)

	// The credential-accepting endpoints are rate limited per source IP; the
	// rest of the API is protected by the access token instead.
	authRateLimit := func(c *gin.Context) { c.Next() }
	if cfg.RateLimitAuthEnabled {
		authRateLimit = authHTTP.AuthRateLimitMiddleware(
			cfg.RateLimitAuthRequestsPerSec,
			cfg.RateLimitAuthBurst,
			logger,
		)
	}

	authenticated := authHTTP.AuthenticationMiddleware(authUC, logger)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", authRateLimit, handlers.Auth.RegisterHandler)
		auth.POST("/sign-in", authRateLimit, handlers.Auth.SignInHandler)
		auth.POST("/refresh", authRateLimit, handlers.Auth.RefreshHandler)
		auth.POST("/revoke", authenticated, handlers.Auth.RevokeHandler)

		clients := v1.Group("/clients", authenticated)
		clients.GET("", handlers.Client.ListHandler)
		clients.POST("", handlers.Client.CreateHandler)
		clients.GET("/:id", handlers.Client.GetHandler)
		clients.PUT("/:id", handlers.Client.UpdateHandler)
		clients.DELETE("/:id", handlers.Client.DeleteHandler)
		clients.GET("/:id/enrollments", handlers.Enrollment.ListByClientHandler)

		programs := v1.Group("/programs", authenticated)
		programs.GET("", handlers.Program.ListHandler)
		programs.POST("", handlers.Program.CreateHandler)
		programs.GET("/:id", handlers.Program.GetHandler)
		programs.PUT("/:id", handlers.Program.UpdateHandler)
		programs.DELETE("/:id", handlers.Program.DeleteHandler)

		enrollments := v1.Group("/enrollments", authenticated)
		enrollments.GET("", handlers.Enrollment.ListHandler)
		enrollments.POST("", handlers.Enrollment.CreateHandler)
		enrollments.GET("/:id", handlers.Enrollment.GetHandler)
		enrollments.PUT("/:id", handlers.Enrollment.UpdateHandler)
		enrollments.DELETE("/:id", handlers.Enrollment.DeleteHandler)
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// is the only hard dependency.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	if s.db == nil {
		components["database"] = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
		}
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

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
