package database

import (
	"context"

	"github.com/tablero-dev/tablero/internal/models"
)

// WorkspaceReader defines read operations for workspaces.
type WorkspaceReader interface {
	GetWorkspaceByShortName(ctx context.Context, shortName string) (*models.Workspace, error)
	GetWorkspaceByID(ctx context.Context, id string) (*models.Workspace, error)
	GetWorkspaceMembers(ctx context.Context, workspaceID string) ([]*models.WorkspaceMember, error)
	IsWorkspaceMember(ctx context.Context, workspaceID, userID string) (bool, error)
}

// WorkspaceWriter defines write operations for workspaces.
type WorkspaceWriter interface {
	CreateWorkspace(ctx context.Context, ws *models.Workspace) error
	AddWorkspaceMember(ctx context.Context, workspaceID, userID string) error
	RemoveWorkspaceMember(ctx context.Context, workspaceID, userID string) error
}

// WorkspaceRepository combines all workspace-related operations.
type WorkspaceRepository interface {
	WorkspaceReader
	WorkspaceWriter
}
