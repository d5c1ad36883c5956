// Package api assembles the gin engine and HTTP server for the ChirpDeck
// backend: middleware, route registration, and lifecycle management.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/chirpdeck/chirpdeck/internal/api/handlers"
	"github.com/chirpdeck/chirpdeck/internal/buildinfo"
	"github.com/chirpdeck/chirpdeck/internal/config"
	"github.com/chirpdeck/chirpdeck/internal/logging"
)

// Server wraps the HTTP server and its gin engine.
type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	httpSrv  *http.Server
	handlers *handlers.Handlers
}

// NewServer creates the gin engine, installs the shared middleware, registers
// all routes, and returns a server ready to Run.
//
// Parameters:
//   - cfg: The application configuration
//   - h: The wired handler set
//
// Returns:
//   - *Server: A configured server instance
func NewServer(cfg *config.Config, h *handlers.Handlers) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.RequestIDMiddleware())
	engine.Use(logging.GinLogrus())

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		handlers: h,
		httpSrv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	s.registerRoutes()
	return s
}

// registerRoutes wires the HTTP surface the dashboard frontend calls.
func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.healthz)

	// Browser-driven OAuth flow.
	s.engine.GET("/auth/start", s.handlers.AuthStart)
	s.engine.GET("/auth/callback", s.handlers.AuthCallback)

	api := s.engine.Group("/api")

	twitterGroup := api.Group("/twitter")
	twitterGroup.GET("/status", s.handlers.Status)
	twitterGroup.POST("/publish", s.handlers.Publish)
	twitterGroup.POST("/disconnect", s.handlers.Disconnect)

	aiGroup := api.Group("/ai")
	aiGroup.POST("/themes", s.handlers.GenerateThemes)
	aiGroup.POST("/suggestions", s.handlers.GenerateSuggestions)
	aiGroup.POST("/refine", s.handlers.RefineContent)
	aiGroup.POST("/expand-thread", s.handlers.ExpandToThread)
	aiGroup.POST("/trends", s.handlers.AnalyzeTrends)
	aiGroup.POST("/strategy", s.handlers.GenerateEngagementStrategy)
	aiGroup.POST("/align", s.handlers.AlignPlatformContent)
}

// healthz reports liveness plus build metadata.
func (s *Server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

// Engine exposes the underlying gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until it stops. A graceful Shutdown
// is reported as a nil error.
func (s *Server) Run() error {
	log.Infof("chirpdeck server listening on %s", s.httpSrv.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: server stopped: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, waiting for in-flight requests
// up to the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
