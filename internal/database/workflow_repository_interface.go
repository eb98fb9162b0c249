package database

import (
	"context"

	"github.com/tablero-dev/tablero/internal/models"
)

// WorkflowReader defines read operations for workflows.
type WorkflowReader interface {
	GetWorkflowByID(ctx context.Context, id string) (*models.Workflow, error)
	GetWorkflowsByProject(ctx context.Context, projectID string) ([]*models.Workflow, error)
	GetIssueCountByWorkflow(ctx context.Context, workflowID string) (int, error)
}

// WorkflowWriter defines write operations for workflows.
type WorkflowWriter interface {
	CreateWorkflow(ctx context.Context, wf *models.Workflow) (*models.Workflow, error)
	UpdateWorkflowTitle(ctx context.Context, id, title string) error
	DeleteWorkflow(ctx context.Context, id string) error
}

// WorkflowRepository combines all workflow-related operations.
type WorkflowRepository interface {
	WorkflowReader
	WorkflowWriter
}
