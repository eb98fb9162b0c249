package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/tablero-dev/tablero/internal/models"
)

// WorkspaceRepo handles all workspace-related database operations.
type WorkspaceRepo struct {
	db *sql.DB
}

// CreateWorkspace inserts a workspace and adds the creator as its first
// member, in one transaction.
func (r *WorkspaceRepo) CreateWorkspace(ctx context.Context, ws *models.Workspace) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO workspaces (id, short_name, name, created_by_id) VALUES (?, ?, ?, ?)`,
			ws.ID, ws.ShortName, ws.Name, ws.CreatedByID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert workspace '%s': %w", ws.ShortName, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO workspace_members (workspace_id, user_id) VALUES (?, ?)`,
			ws.ID, ws.CreatedByID,
		)
		if err != nil {
			return fmt.Errorf("failed to add creator to workspace '%s': %w", ws.ShortName, err)
		}
		return nil
	})
}

// GetWorkspaceByShortName retrieves a workspace by its unique short name.
func (r *WorkspaceRepo) GetWorkspaceByShortName(ctx context.Context, shortName string) (*models.Workspace, error) {
	ws := &models.Workspace{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, short_name, name, created_by_id, created_at FROM workspaces WHERE short_name = ?`,
		shortName,
	).Scan(&ws.ID, &ws.ShortName, &ws.Name, &ws.CreatedByID, &ws.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace '%s': %w", shortName, err)
	}
	return ws, nil
}

// GetWorkspaceByID retrieves a workspace by its ID.
func (r *WorkspaceRepo) GetWorkspaceByID(ctx context.Context, id string) (*models.Workspace, error) {
	ws := &models.Workspace{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, short_name, name, created_by_id, created_at FROM workspaces WHERE id = ?`,
		id,
	).Scan(&ws.ID, &ws.ShortName, &ws.Name, &ws.CreatedByID, &ws.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get workspace %s: %w", id, err)
	}
	return ws, nil
}

// GetWorkspaceMembers retrieves the member rows for a workspace, joined
// with user display fields, ordered by name.
func (r *WorkspaceRepo) GetWorkspaceMembers(ctx context.Context, workspaceID string) ([]*models.WorkspaceMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.image
		FROM users u
		INNER JOIN workspace_members wm ON u.id = wm.user_id
		WHERE wm.workspace_id = ?
		ORDER BY u.name
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members for workspace %s: %w", workspaceID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	members := make([]*models.WorkspaceMember, 0, 10)
	for rows.Next() {
		member := &models.WorkspaceMember{}
		var image sql.NullString
		if err := rows.Scan(&member.UserID, &member.Name, &image); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		member.Image = nullStringToPtr(image)
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

// AddWorkspaceMember adds a user to a workspace. Adding an existing
// member is a no-op.
func (r *WorkspaceRepo) AddWorkspaceMember(ctx context.Context, workspaceID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO workspace_members (workspace_id, user_id) VALUES (?, ?)`,
		workspaceID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add member %s to workspace %s: %w", userID, workspaceID, err)
	}
	return nil
}

// RemoveWorkspaceMember removes a user from a workspace.
func (r *WorkspaceRepo) RemoveWorkspaceMember(ctx context.Context, workspaceID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM workspace_members WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove member %s from workspace %s: %w", userID, workspaceID, err)
	}
	return nil
}

// IsWorkspaceMember reports whether a user belongs to a workspace.
func (r *WorkspaceRepo) IsWorkspaceMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workspace_members WHERE workspace_id = ? AND user_id = ?`,
		workspaceID, userID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check membership for workspace %s: %w", workspaceID, err)
	}
	return count > 0, nil
}
