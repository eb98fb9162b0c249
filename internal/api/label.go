package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablero-dev/tablero/internal/services/label"
)

// CreateLabelRequest is the request body for POST /api/v1/projects/:id/labels.
type CreateLabelRequest struct {
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

// UpdateLabelRequest is the request body for PATCH /api/v1/labels/:id.
type UpdateLabelRequest struct {
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	Description *string `json:"description"`
}

// handleListProjectLabels returns a project's labels with issue counts.
func (s *Server) handleListProjectLabels(c echo.Context) error {
	labels, err := s.services.Labels.ListProjectLabels(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toLabelResponses(labels))
}

// handleCreateProjectLabel creates a label after validation.
func (s *Server) handleCreateProjectLabel(c echo.Context) error {
	var req CreateLabelRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	created, err := s.services.Labels.CreateProjectLabel(c.Request().Context(), label.CreateLabelRequest{
		ProjectID:   c.Param("id"),
		Title:       req.Title,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toLabelResponse(&created.Label, created.IssueCount))
}

// handleUpdateProjectLabel updates a label's title, color, description.
func (s *Server) handleUpdateProjectLabel(c echo.Context) error {
	var req UpdateLabelRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	updated, err := s.services.Labels.UpdateProjectLabel(c.Request().Context(), label.UpdateLabelRequest{
		ID:          c.Param("id"),
		Title:       req.Title,
		Color:       req.Color,
		Description: req.Description,
	})
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toLabelResponse(updated, 0))
}

// handleDeleteProjectLabel removes a label and returns the deleted row.
func (s *Server) handleDeleteProjectLabel(c echo.Context) error {
	deleted, err := s.services.Labels.DeleteProjectLabel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toLabelResponse(deleted, 0))
}
