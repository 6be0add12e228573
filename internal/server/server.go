// Package server exposes the worktree operations over HTTP. Every endpoint
// returns the uniform success/failure envelope; the HTTP status code is
// derived from the operation error's code.
package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"arbor/internal/logging"
	"arbor/internal/services"
)

// Server provides the HTTP operation surface
type Server struct {
	echo      *echo.Echo
	worktrees *services.WorktreeService
	branches  *services.BranchService
	commits   *services.CommitService
	features  *services.FeatureService
	addr      string
}

// New creates a new HTTP server bound to addr
func New(addr string,
	worktrees *services.WorktreeService,
	branches *services.BranchService,
	commits *services.CommitService,
	features *services.FeatureService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger)

	s := &Server{
		echo:      e,
		worktrees: worktrees,
		branches:  branches,
		commits:   commits,
		features:  features,
		addr:      addr,
	}
	s.registerRoutes()
	return s
}

// requestLogger logs every request through the project logger
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		logging.Logger.Info("http request",
			"method", c.Request().Method,
			"uri", c.Request().RequestURI,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return err
	}
}

// registerRoutes sets up the HTTP endpoints
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")

	v1.POST("/worktrees", s.handleCreateWorktree)
	v1.GET("/worktrees", s.handleListWorktrees)
	v1.DELETE("/worktrees", s.handleDeleteWorktree)
	v1.GET("/worktrees/status", s.handleWorktreeStatus)
	v1.POST("/worktrees/commit", s.handleCommitWorktree)

	v1.GET("/branches", s.handleListBranches)
	v1.POST("/branches/switch", s.handleSwitchBranch)

	v1.GET("/features", s.handleListFeatures)
	v1.POST("/features", s.handleAddFeature)
	v1.PUT("/features/:name/status", s.handleUpdateFeatureStatus)
	v1.DELETE("/features/:name", s.handleDeleteFeature)
}

// Start begins serving and blocks until Shutdown or failure
func (s *Server) Start() error {
	logging.Logger.Info("HTTP server starting", "addr", s.addr)
	return s.echo.Start(s.addr)
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
