package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablero-dev/tablero/internal/services/workflow"
)

// CreateWorkflowRequest is the request body for POST /api/v1/projects/:id/workflows.
type CreateWorkflowRequest struct {
	Title string `json:"title"`
}

// RenameWorkflowRequest is the request body for PATCH /api/v1/workflows/:id.
type RenameWorkflowRequest struct {
	Title string `json:"title"`
}

// handleCreateWorkflow appends a workflow to the project's board.
func (s *Server) handleCreateWorkflow(c echo.Context) error {
	var req CreateWorkflowRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	created, err := s.services.Workflows.CreateWorkflow(c.Request().Context(), workflow.CreateWorkflowRequest{
		ProjectID: c.Param("id"),
		Title:     req.Title,
	})
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toWorkflowResponse(created))
}

// handleRenameWorkflow changes a workflow's title.
func (s *Server) handleRenameWorkflow(c echo.Context) error {
	var req RenameWorkflowRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	renamed, err := s.services.Workflows.RenameWorkflow(c.Request().Context(), c.Param("id"), req.Title)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toWorkflowResponse(renamed))
}

// handleDeleteWorkflow removes an empty workflow.
func (s *Server) handleDeleteWorkflow(c echo.Context) error {
	deleted, err := s.services.Workflows.DeleteWorkflow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toWorkflowResponse(deleted))
}
