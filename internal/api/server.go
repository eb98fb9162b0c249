// Package api provides the HTTP JSON API for tablero.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tablero-dev/tablero/internal/database"
	"github.com/tablero-dev/tablero/internal/events"
	"github.com/tablero-dev/tablero/internal/services/label"
	"github.com/tablero-dev/tablero/internal/services/project"
	"github.com/tablero-dev/tablero/internal/services/workflow"
	"github.com/tablero-dev/tablero/internal/services/workspace"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Services bundles the procedure sets the API exposes.
type Services struct {
	Projects   project.Service
	Labels     label.Service
	Workflows  workflow.Service
	Workspaces workspace.Service
}

// Server exposes the procedure sets over HTTP.
type Server struct {
	echo     *echo.Echo
	services Services
	users    database.UserReader
	hub      *events.Hub
	logger   *slog.Logger
	config   *Config
}

// NewServer creates a new HTTP server.
func NewServer(services Services, users database.UserReader, hub *events.Hub, logger *slog.Logger, cfg *Config) (*Server, error) {
	if users == nil {
		return nil, fmt.Errorf("user reader is required for authentication")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8460,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", duration,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		services: services,
		users:    users,
		hub:      hub,
		logger:   logger,
		config:   cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check and metrics stay outside auth
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/debug/metrics", s.handleMetrics)

	v1 := s.echo.Group("/api/v1", s.requireUser)

	v1.GET("/projects", s.handleListAllProjects)
	v1.POST("/projects", s.handleCreateProject)
	v1.GET("/projects/me", s.handleListUserProjects)
	v1.GET("/projects/:id", s.handleGetProject)
	v1.PATCH("/projects/:id", s.handleUpdateProject)
	v1.DELETE("/projects/:id", s.handleDeleteProject)
	v1.GET("/projects/:id/members", s.handleGetProjectMembers)
	v1.POST("/projects/:id/members", s.handleAssignUserToProject)
	v1.GET("/projects/:id/workflows", s.handleGetProjectWorkflows)
	v1.POST("/projects/:id/workflows", s.handleCreateWorkflow)
	v1.PATCH("/workflows/:id", s.handleRenameWorkflow)
	v1.DELETE("/workflows/:id", s.handleDeleteWorkflow)
	v1.GET("/projects/:id/labels", s.handleListProjectLabels)
	v1.POST("/projects/:id/labels", s.handleCreateProjectLabel)
	v1.PATCH("/labels/:id", s.handleUpdateProjectLabel)
	v1.DELETE("/labels/:id", s.handleDeleteProjectLabel)

	v1.POST("/workspaces", s.handleCreateWorkspace)
	v1.GET("/workspaces/:shortName", s.handleGetWorkspace)
	v1.GET("/workspaces/:shortName/members", s.handleListWorkspaceMembers)
	v1.POST("/workspaces/:shortName/members", s.handleAddWorkspaceMember)
	v1.DELETE("/workspaces/:shortName/members/:userID", s.handleRemoveWorkspaceMember)

	v1.GET("/events", s.handleEvents)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleMetrics reports the event hub's counters.
func (s *Server) handleMetrics(c echo.Context) error {
	if s.hub == nil {
		return c.JSON(http.StatusOK, map[string]string{"status": "no hub configured"})
	}
	return c.JSON(http.StatusOK, s.hub.Metrics().Snapshot())
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
