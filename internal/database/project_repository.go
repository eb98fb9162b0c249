package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tablero-dev/tablero/internal/models"
)

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

// CreateProject inserts a project, adds the lead as its first member, and
// seeds the given workflow rows, all in one transaction. Workflow rows
// whose title duplicates an earlier row in the batch are silently skipped.
func (r *ProjectRepo) CreateProject(ctx context.Context, project *models.Project, workflows []*models.Workflow) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, project_type, project_lead_id, default_assignee_id, workspace_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			project.ID, project.Name, string(project.ProjectType),
			project.ProjectLeadID, ptrToNullString(project.DefaultAssigneeID), project.WorkspaceID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project '%s': %w", project.Name, err)
		}

		// The creator is always a member of their own project
		_, err = tx.ExecContext(ctx,
			`INSERT INTO project_members (project_id, user_id) VALUES (?, ?)`,
			project.ID, project.ProjectLeadID,
		)
		if err != nil {
			return fmt.Errorf("failed to add lead to project %s: %w", project.ID, err)
		}

		seen := make(map[string]bool, len(workflows))
		for _, wf := range workflows {
			if seen[wf.Title] {
				continue
			}
			seen[wf.Title] = true

			_, err = tx.ExecContext(ctx,
				`INSERT INTO workflows (id, title, idx, project_id) VALUES (?, ?, ?, ?)`,
				wf.ID, wf.Title, wf.Index, project.ID,
			)
			if err != nil {
				return fmt.Errorf("failed to create workflow '%s' for project %s: %w", wf.Title, project.ID, err)
			}
		}
		return nil
	})
}

// GetProjectByID retrieves a project row by its ID.
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	project := &models.Project{}
	var assignee sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, project_type, project_lead_id, default_assignee_id, workspace_id, created_at, updated_at
		FROM projects WHERE id = ?
	`, id).Scan(
		&project.ID, &project.Name, &project.ProjectType, &project.ProjectLeadID,
		&assignee, &project.WorkspaceID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	project.DefaultAssigneeID = nullStringToPtr(assignee)
	return project, nil
}

// GetAllProjects retrieves all projects with their lead's name, ordered by
// creation time.
func (r *ProjectRepo) GetAllProjects(ctx context.Context) ([]*models.ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.project_type, p.project_lead_id, p.default_assignee_id,
		       p.workspace_id, p.created_at, p.updated_at, u.name
		FROM projects p
		INNER JOIN users u ON p.project_lead_id = u.id
		ORDER BY p.created_at, p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all projects: %w", err)
	}
	return scanProjectSummaries(rows)
}

// GetProjectsForUser retrieves all projects where the user is a member or
// the lead, deduplicated, ordered by creation time.
func (r *ProjectRepo) GetProjectsForUser(ctx context.Context, userID string) ([]*models.ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT p.id, p.name, p.project_type, p.project_lead_id, p.default_assignee_id,
		       p.workspace_id, p.created_at, p.updated_at, u.name
		FROM projects p
		INNER JOIN users u ON p.project_lead_id = u.id
		LEFT JOIN project_members pm ON p.id = pm.project_id
		WHERE pm.user_id = ? OR p.project_lead_id = ?
		ORDER BY p.created_at, p.id
	`, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects for user %s: %w", userID, err)
	}
	return scanProjectSummaries(rows)
}

func scanProjectSummaries(rows *sql.Rows) ([]*models.ProjectSummary, error) {
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	projects := make([]*models.ProjectSummary, 0, 10)
	for rows.Next() {
		summary := &models.ProjectSummary{}
		var assignee sql.NullString
		if err := rows.Scan(
			&summary.ID, &summary.Name, &summary.ProjectType, &summary.ProjectLeadID,
			&assignee, &summary.WorkspaceID, &summary.CreatedAt, &summary.UpdatedAt,
			&summary.LeadName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		summary.DefaultAssigneeID = nullStringToPtr(assignee)
		projects = append(projects, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// UpdateProject updates a project's name, default assignee, and lead.
func (r *ProjectRepo) UpdateProject(ctx context.Context, id, name string, defaultAssigneeID *string, projectLeadID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, default_assignee_id = ?, project_lead_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, name, ptrToNullString(defaultAssigneeID), projectLeadID, id)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", id, err)
	}
	return nil
}

// DeleteProject removes a project. Workflows, issues, labels, and
// membership rows go with it via CASCADE.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	return nil
}

// AddProjectMember adds a user to a project's member set. Adding an
// existing member is a no-op.
func (r *ProjectRepo) AddProjectMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_members (project_id, user_id) VALUES (?, ?)`,
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add member %s to project %s: %w", userID, projectID, err)
	}
	return nil
}

// GetProjectMembers retrieves the users in a project's member set,
// ordered by name.
func (r *ProjectRepo) GetProjectMembers(ctx context.Context, projectID string) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, u.image, u.created_at
		FROM users u
		INNER JOIN project_members pm ON u.id = pm.user_id
		WHERE pm.project_id = ?
		ORDER BY u.name
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members for project %s: %w", projectID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	members := make([]*models.User, 0, 10)
	for rows.Next() {
		user := &models.User{}
		var image sql.NullString
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &image, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		user.Image = nullStringToPtr(image)
		members = append(members, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

// IsProjectMember reports whether a user is in a project's member set.
func (r *ProjectRepo) IsProjectMember(ctx context.Context, projectID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership for project %s: %w", projectID, err)
	}
	return count > 0, nil
}
