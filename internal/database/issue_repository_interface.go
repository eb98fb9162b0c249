package database

import (
	"context"

	"github.com/tablero-dev/tablero/internal/models"
)

// IssueReader defines read operations for issues.
type IssueReader interface {
	GetIssuesByWorkflow(ctx context.Context, workflowID string) ([]*models.IssueWithLabels, error)
}

// IssueWriter defines write operations for issues (seed/test tooling only).
type IssueWriter interface {
	CreateIssue(ctx context.Context, issue *models.Issue) error
	AttachLabelToIssue(ctx context.Context, issueID, labelID string) error
}

// IssueRepository combines all issue-related operations.
type IssueRepository interface {
	IssueReader
	IssueWriter
}
