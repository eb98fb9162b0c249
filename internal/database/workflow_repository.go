package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tablero-dev/tablero/internal/models"
)

// WorkflowRepo handles all workflow-related database operations.
type WorkflowRepo struct {
	db *sql.DB
}

// CreateWorkflow appends a workflow to the end of a project's board,
// assigning the next dense index inside a transaction.
func (r *WorkflowRepo) CreateWorkflow(ctx context.Context, wf *models.Workflow) (*models.Workflow, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(idx) + 1, 0) FROM workflows WHERE project_id = ?`,
			wf.ProjectID,
		).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to compute next index for project %s: %w", wf.ProjectID, err)
		}

		wf.Index = next
		_, err = tx.ExecContext(ctx,
			`INSERT INTO workflows (id, title, idx, project_id) VALUES (?, ?, ?, ?)`,
			wf.ID, wf.Title, wf.Index, wf.ProjectID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert workflow '%s': %w", wf.Title, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return wf, nil
}

// GetWorkflowByID retrieves a workflow by its ID.
func (r *WorkflowRepo) GetWorkflowByID(ctx context.Context, id string) (*models.Workflow, error) {
	wf := &models.Workflow{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, idx, project_id FROM workflows WHERE id = ?`, id,
	).Scan(&wf.ID, &wf.Title, &wf.Index, &wf.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow %s: %w", id, err)
	}
	return wf, nil
}

// GetWorkflowsByProject retrieves a project's workflows ordered by index.
func (r *WorkflowRepo) GetWorkflowsByProject(ctx context.Context, projectID string) ([]*models.Workflow, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, idx, project_id FROM workflows WHERE project_id = ? ORDER BY idx`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query workflows for project %s: %w", projectID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	workflows := make([]*models.Workflow, 0, 5)
	for rows.Next() {
		wf := &models.Workflow{}
		if err := rows.Scan(&wf.ID, &wf.Title, &wf.Index, &wf.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to scan workflow row: %w", err)
		}
		workflows = append(workflows, wf)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workflow rows: %w", err)
	}
	return workflows, nil
}

// UpdateWorkflowTitle renames a workflow.
func (r *WorkflowRepo) UpdateWorkflowTitle(ctx context.Context, id, title string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE workflows SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return fmt.Errorf("failed to update workflow %s: %w", id, err)
	}
	return nil
}

// DeleteWorkflow removes a workflow and compacts the remaining indices so
// they stay dense within the project.
func (r *WorkflowRepo) DeleteWorkflow(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var projectID string
		var idx int
		err := tx.QueryRowContext(ctx,
			`SELECT project_id, idx FROM workflows WHERE id = ?`, id,
		).Scan(&projectID, &idx)
		if err != nil {
			return fmt.Errorf("failed to get workflow %s: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM workflows WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete workflow %s: %w", id, err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE workflows SET idx = idx - 1 WHERE project_id = ? AND idx > ?`,
			projectID, idx,
		)
		if err != nil {
			return fmt.Errorf("failed to compact workflow indices for project %s: %w", projectID, err)
		}
		return nil
	})
}

// GetIssueCountByWorkflow returns the number of issues in a workflow.
func (r *WorkflowRepo) GetIssueCountByWorkflow(ctx context.Context, workflowID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issues WHERE workflow_id = ?`, workflowID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count issues for workflow %s: %w", workflowID, err)
	}
	return count, nil
}
