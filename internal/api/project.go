package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/services/project"
)

// CreateProjectRequest is the request body for POST /api/v1/projects.
type CreateProjectRequest struct {
	Name               string `json:"name"`
	ProjectType        string `json:"project_type"`
	WorkspaceShortName string `json:"workspace_short_name"`
}

// UpdateProjectRequest is the request body for PATCH /api/v1/projects/:id.
type UpdateProjectRequest struct {
	Name              string  `json:"name"`
	DefaultAssigneeID *string `json:"default_assignee_id"`
	ProjectLeadID     string  `json:"project_lead_id"`
}

// AssignUserRequest is the request body for POST /api/v1/projects/:id/members.
type AssignUserRequest struct {
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
}

// handleListAllProjects returns every project with its lead's name.
func (s *Server) handleListAllProjects(c echo.Context) error {
	summaries, err := s.services.Projects.ListAllProjects(c.Request().Context())
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectSummaryResponses(summaries))
}

// handleListUserProjects returns the caller's projects (member or lead).
func (s *Server) handleListUserProjects(c echo.Context) error {
	user := currentUser(c)
	summaries, err := s.services.Projects.ListUserProjects(c.Request().Context(), user.ID)
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectSummaryResponses(summaries))
}

// handleGetProject returns the full project view.
func (s *Server) handleGetProject(c echo.Context) error {
	detail, err := s.services.Projects.GetProjectByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.serviceError(c, err)
	}

	members := make([]*UserResponse, 0, len(detail.Members))
	for _, m := range detail.Members {
		members = append(members, toUserResponse(m))
	}

	return c.JSON(http.StatusOK, &ProjectDetailResponse{
		ProjectResponse: toProjectResponse(&detail.Project),
		Lead:            toUserResponse(detail.Lead),
		DefaultAssignee: toUserResponse(detail.DefaultAssignee),
		Members:         members,
		Labels:          toLabelResponses(detail.Labels),
	})
}

// handleCreateProject creates a project; the caller becomes the lead.
func (s *Server) handleCreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	user := currentUser(c)
	created, err := s.services.Projects.CreateProject(c.Request().Context(), user.ID, project.CreateProjectRequest{
		Name:               req.Name,
		ProjectType:        models.ProjectType(req.ProjectType),
		WorkspaceShortName: req.WorkspaceShortName,
	})
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toProjectResponse(created))
}

// handleUpdateProject updates name, default assignee, and lead.
func (s *Server) handleUpdateProject(c echo.Context) error {
	var req UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	user := currentUser(c)
	updated, err := s.services.Projects.UpdateProject(c.Request().Context(), user.ID, project.UpdateProjectRequest{
		ID:                c.Param("id"),
		Name:              req.Name,
		DefaultAssigneeID: req.DefaultAssigneeID,
		ProjectLeadID:     req.ProjectLeadID,
	})
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(updated))
}

// handleDeleteProject deletes a project; only the lead may do this.
func (s *Server) handleDeleteProject(c echo.Context) error {
	user := currentUser(c)
	deleted, err := s.services.Projects.DeleteProject(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toProjectResponse(deleted))
}

// handleGetProjectMembers returns a project's member set.
func (s *Server) handleGetProjectMembers(c echo.Context) error {
	members, err := s.services.Projects.GetProjectMembers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.serviceError(c, err)
	}

	out := make([]*UserResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toUserResponse(m))
	}
	return c.JSON(http.StatusOK, out)
}

// handleAssignUserToProject adds a workspace member to the project.
func (s *Server) handleAssignUserToProject(c echo.Context) error {
	var req AssignUserRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	err := s.services.Projects.AssignUserToProject(c.Request().Context(), project.AssignUserRequest{
		WorkspaceID: req.WorkspaceID,
		ProjectID:   c.Param("id"),
		UserID:      req.UserID,
	})
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleGetProjectWorkflows returns the board: workflows ordered by
// index, issues ordered by index inside each.
func (s *Server) handleGetProjectWorkflows(c echo.Context) error {
	board, err := s.services.Projects.GetProjectWorkflows(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toBoardResponse(board))
}
