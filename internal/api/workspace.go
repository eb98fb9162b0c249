package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tablero-dev/tablero/internal/services/workspace"
)

// CreateWorkspaceRequest is the request body for POST /api/v1/workspaces.
type CreateWorkspaceRequest struct {
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
}

// AddWorkspaceMemberRequest is the request body for
// POST /api/v1/workspaces/:shortName/members.
type AddWorkspaceMemberRequest struct {
	UserID string `json:"user_id"`
}

// handleCreateWorkspace creates a workspace; the caller becomes the
// creator and first member.
func (s *Server) handleCreateWorkspace(c echo.Context) error {
	var req CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	user := currentUser(c)
	created, err := s.services.Workspaces.CreateWorkspace(c.Request().Context(), user.ID, workspace.CreateWorkspaceRequest{
		ShortName: req.ShortName,
		Name:      req.Name,
	})
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, toWorkspaceResponse(created))
}

// handleGetWorkspace resolves a workspace by its short name.
func (s *Server) handleGetWorkspace(c echo.Context) error {
	ws, err := s.services.Workspaces.GetWorkspaceByShortName(c.Request().Context(), c.Param("shortName"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, toWorkspaceResponse(ws))
}

// handleListWorkspaceMembers returns the member-list view. The creator's
// row is marked non-removable; that member can only leave.
func (s *Server) handleListWorkspaceMembers(c echo.Context) error {
	ws, members, err := s.services.Workspaces.MemberList(c.Request().Context(), c.Param("shortName"))
	if err != nil {
		return s.serviceError(c, err)
	}

	rows := make([]*WorkspaceMemberResponse, 0, len(members))
	for _, m := range members {
		rows = append(rows, &WorkspaceMemberResponse{
			UserID:    m.UserID,
			Name:      m.Name,
			Image:     m.Image,
			Removable: m.UserID != ws.CreatedByID,
		})
	}

	return c.JSON(http.StatusOK, &MemberListResponse{
		WorkspaceID: ws.ID,
		CreatedByID: ws.CreatedByID,
		Members:     rows,
	})
}

// handleAddWorkspaceMember adds a user to the workspace.
func (s *Server) handleAddWorkspaceMember(c echo.Context) error {
	var req AddWorkspaceMemberRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	if err := s.services.Workspaces.AddMember(c.Request().Context(), c.Param("shortName"), req.UserID); err != nil {
		return s.serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleRemoveWorkspaceMember removes a member, or lets the creator leave.
func (s *Server) handleRemoveWorkspaceMember(c echo.Context) error {
	user := currentUser(c)
	err := s.services.Workspaces.RemoveMember(c.Request().Context(), user.ID, c.Param("shortName"), c.Param("userID"))
	if err != nil {
		return s.serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
