package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tablero-dev/tablero/internal/models"
)

// IssueRepo handles issue reads for board queries. Issues are created and
// moved by the issue tracking surface; this service only reads them, plus
// an insert used by seed tooling.
type IssueRepo struct {
	db *sql.DB
}

// CreateIssue inserts an issue row. Only used by seed and test tooling.
func (r *IssueRepo) CreateIssue(ctx context.Context, issue *models.Issue) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO issues (id, title, idx, workflow_id, assignee_id) VALUES (?, ?, ?, ?, ?)`,
		issue.ID, issue.Title, issue.Index, issue.WorkflowID, ptrToNullString(issue.AssigneeID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert issue '%s': %w", issue.Title, err)
	}
	return nil
}

// GetIssuesByWorkflow retrieves a workflow's issues ordered by index, each
// with its labels attached.
func (r *IssueRepo) GetIssuesByWorkflow(ctx context.Context, workflowID string) ([]*models.IssueWithLabels, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, idx, workflow_id, assignee_id, created_at
		FROM issues WHERE workflow_id = ? ORDER BY idx
	`, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues for workflow %s: %w", workflowID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	issues := make([]*models.IssueWithLabels, 0, 10)
	for rows.Next() {
		issue := &models.IssueWithLabels{}
		var assignee sql.NullString
		if err := rows.Scan(&issue.ID, &issue.Title, &issue.Index, &issue.WorkflowID, &assignee, &issue.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan issue row: %w", err)
		}
		issue.AssigneeID = nullStringToPtr(assignee)
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating issue rows: %w", err)
	}

	// Attach labels per issue. Boards are small; one query per issue keeps
	// the scan logic simple.
	labelRepo := &LabelRepo{db: r.db}
	for _, issue := range issues {
		labels, err := labelRepo.GetLabelsForIssue(ctx, issue.ID)
		if err != nil {
			return nil, err
		}
		issue.Labels = labels
	}
	return issues, nil
}

// AttachLabelToIssue associates a label with an issue. Used by seed and
// test tooling.
func (r *IssueRepo) AttachLabelToIssue(ctx context.Context, issueID, labelID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO issue_labels (issue_id, label_id) VALUES (?, ?)`,
		issueID, labelID,
	)
	if err != nil {
		return fmt.Errorf("failed to attach label %s to issue %s: %w", labelID, issueID, err)
	}
	return nil
}
