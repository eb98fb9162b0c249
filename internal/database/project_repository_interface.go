package database

import (
	"context"

	"github.com/tablero-dev/tablero/internal/models"
)

// ProjectReader defines read operations for projects.
type ProjectReader interface {
	GetAllProjects(ctx context.Context) ([]*models.ProjectSummary, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetProjectsForUser(ctx context.Context, userID string) ([]*models.ProjectSummary, error)
	GetProjectMembers(ctx context.Context, projectID string) ([]*models.User, error)
	IsProjectMember(ctx context.Context, projectID, userID string) (bool, error)
}

// ProjectWriter defines write operations for projects.
type ProjectWriter interface {
	CreateProject(ctx context.Context, project *models.Project, workflows []*models.Workflow) error
	UpdateProject(ctx context.Context, id, name string, defaultAssigneeID *string, projectLeadID string) error
	DeleteProject(ctx context.Context, id string) error
	AddProjectMember(ctx context.Context, projectID, userID string) error
}

// ProjectRepository combines all project-related operations.
type ProjectRepository interface {
	ProjectReader
	ProjectWriter
}
