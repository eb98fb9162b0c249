package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tablero-dev/tablero/internal/models"
)

// LabelRepo handles all label-related database operations.
type LabelRepo struct {
	db *sql.DB
}

// CreateLabel inserts a new label for a project.
func (r *LabelRepo) CreateLabel(ctx context.Context, label *models.Label) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO labels (id, title, color, description, project_id) VALUES (?, ?, ?, ?, ?)`,
		label.ID, label.Title, label.Color, ptrToNullString(label.Description), label.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert label '%s': %w", label.Title, err)
	}
	return nil
}

// GetLabelByID retrieves a label by its ID.
func (r *LabelRepo) GetLabelByID(ctx context.Context, id string) (*models.Label, error) {
	label := &models.Label{}
	var description sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, color, description, project_id FROM labels WHERE id = ?`, id,
	).Scan(&label.ID, &label.Title, &label.Color, &description, &label.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get label %s: %w", id, err)
	}
	label.Description = nullStringToPtr(description)
	return label, nil
}

// GetLabelsByProject retrieves a project's labels with the number of
// issues carrying each, ordered by title.
func (r *LabelRepo) GetLabelsByProject(ctx context.Context, projectID string) ([]*models.LabelWithCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.title, l.color, l.description, l.project_id, COUNT(il.issue_id)
		FROM labels l
		LEFT JOIN issue_labels il ON l.id = il.label_id
		WHERE l.project_id = ?
		GROUP BY l.id
		ORDER BY l.title
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels for project %s: %w", projectID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	labels := make([]*models.LabelWithCount, 0, 10)
	for rows.Next() {
		label := &models.LabelWithCount{}
		var description sql.NullString
		if err := rows.Scan(&label.ID, &label.Title, &label.Color, &description, &label.ProjectID, &label.IssueCount); err != nil {
			return nil, fmt.Errorf("failed to scan label row: %w", err)
		}
		label.Description = nullStringToPtr(description)
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating label rows: %w", err)
	}
	return labels, nil
}

// GetLabelsForIssue retrieves all labels attached to an issue, ordered by
// title.
func (r *LabelRepo) GetLabelsForIssue(ctx context.Context, issueID string) ([]*models.Label, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.title, l.color, l.description, l.project_id
		FROM labels l
		INNER JOIN issue_labels il ON l.id = il.label_id
		WHERE il.issue_id = ?
		ORDER BY l.title
	`, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels for issue %s: %w", issueID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	labels := make([]*models.Label, 0, 4)
	for rows.Next() {
		label := &models.Label{}
		var description sql.NullString
		if err := rows.Scan(&label.ID, &label.Title, &label.Color, &description, &label.ProjectID); err != nil {
			return nil, fmt.Errorf("failed to scan label row: %w", err)
		}
		label.Description = nullStringToPtr(description)
		labels = append(labels, label)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating label rows: %w", err)
	}
	return labels, nil
}

// GetIssueCountForLabel returns the number of issues carrying a label.
func (r *LabelRepo) GetIssueCountForLabel(ctx context.Context, labelID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issue_labels WHERE label_id = ?`, labelID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count issues for label %s: %w", labelID, err)
	}
	return count, nil
}

// UpdateLabel updates an existing label's title, color, and description.
func (r *LabelRepo) UpdateLabel(ctx context.Context, id, title, color string, description *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE labels SET title = ?, color = ?, description = ? WHERE id = ?`,
		title, color, ptrToNullString(description), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update label %s: %w", id, err)
	}
	return nil
}

// DeleteLabel removes a label (cascade removes issue associations).
func (r *LabelRepo) DeleteLabel(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete label %s: %w", id, err)
	}
	return nil
}
