// Package testutil provides shared helpers for tests that need a real
// database.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tablero-dev/tablero/internal/database"
	"github.com/tablero-dev/tablero/internal/models"
)

// SetupTestDB creates an in-memory database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	// Enable foreign key constraints
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// CreateTestUser inserts a user with a deterministic token and returns it.
// The token is "token-" + the user's name.
func CreateTestUser(t *testing.T, db *sql.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: name + "@example.com",
	}
	_, err := db.Exec(
		`INSERT INTO users (id, name, email, api_token) VALUES (?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, "token-"+name,
	)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestWorkspace inserts a workspace owned by the given user, who is
// also added as a member.
func CreateTestWorkspace(t *testing.T, db *sql.DB, shortName, createdByID string) *models.Workspace {
	t.Helper()
	ws := &models.Workspace{
		ID:          uuid.NewString(),
		ShortName:   shortName,
		Name:        shortName + " workspace",
		CreatedByID: createdByID,
	}
	_, err := db.Exec(
		`INSERT INTO workspaces (id, short_name, name, created_by_id) VALUES (?, ?, ?, ?)`,
		ws.ID, ws.ShortName, ws.Name, ws.CreatedByID,
	)
	if err != nil {
		t.Fatalf("Failed to create test workspace: %v", err)
	}
	AddTestWorkspaceMember(t, db, ws.ID, createdByID)
	return ws
}

// AddTestWorkspaceMember adds a user to a workspace.
func AddTestWorkspaceMember(t *testing.T, db *sql.DB, workspaceID, userID string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT OR IGNORE INTO workspace_members (workspace_id, user_id) VALUES (?, ?)`,
		workspaceID, userID,
	)
	if err != nil {
		t.Fatalf("Failed to add workspace member: %v", err)
	}
}

// CreateTestProject inserts a bare project row with the lead as member.
func CreateTestProject(t *testing.T, db *sql.DB, workspaceID, leadID string) *models.Project {
	t.Helper()
	project := &models.Project{
		ID:            uuid.NewString(),
		Name:          "Test Project",
		ProjectType:   models.ProjectTypeKanban,
		ProjectLeadID: leadID,
		WorkspaceID:   workspaceID,
	}
	_, err := db.Exec(
		`INSERT INTO projects (id, name, project_type, project_lead_id, workspace_id) VALUES (?, ?, ?, ?, ?)`,
		project.ID, project.Name, string(project.ProjectType), project.ProjectLeadID, project.WorkspaceID,
	)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	_, err = db.Exec(
		`INSERT INTO project_members (project_id, user_id) VALUES (?, ?)`,
		project.ID, leadID,
	)
	if err != nil {
		t.Fatalf("Failed to add lead to test project: %v", err)
	}
	return project
}

// CreateTestWorkflow inserts a workflow row at the given index.
func CreateTestWorkflow(t *testing.T, db *sql.DB, projectID, title string, idx int) *models.Workflow {
	t.Helper()
	wf := &models.Workflow{
		ID:        uuid.NewString(),
		Title:     title,
		Index:     idx,
		ProjectID: projectID,
	}
	_, err := db.Exec(
		`INSERT INTO workflows (id, title, idx, project_id) VALUES (?, ?, ?, ?)`,
		wf.ID, wf.Title, wf.Index, wf.ProjectID,
	)
	if err != nil {
		t.Fatalf("Failed to create test workflow: %v", err)
	}
	return wf
}

// CreateTestIssue inserts an issue row at the given index.
func CreateTestIssue(t *testing.T, db *sql.DB, workflowID, title string, idx int) *models.Issue {
	t.Helper()
	issue := &models.Issue{
		ID:         uuid.NewString(),
		Title:      title,
		Index:      idx,
		WorkflowID: workflowID,
	}
	_, err := db.Exec(
		`INSERT INTO issues (id, title, idx, workflow_id) VALUES (?, ?, ?, ?)`,
		issue.ID, issue.Title, issue.Index, issue.WorkflowID,
	)
	if err != nil {
		t.Fatalf("Failed to create test issue: %v", err)
	}
	return issue
}

// CreateTestLabel inserts a label row.
func CreateTestLabel(t *testing.T, db *sql.DB, projectID, title, color string) *models.Label {
	t.Helper()
	label := &models.Label{
		ID:        uuid.NewString(),
		Title:     title,
		Color:     color,
		ProjectID: projectID,
	}
	_, err := db.Exec(
		`INSERT INTO labels (id, title, color, project_id) VALUES (?, ?, ?, ?)`,
		label.ID, label.Title, label.Color, label.ProjectID,
	)
	if err != nil {
		t.Fatalf("Failed to create test label: %v", err)
	}
	return label
}

// AttachTestLabel associates a label with an issue.
func AttachTestLabel(t *testing.T, db *sql.DB, issueID, labelID string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO issue_labels (issue_id, label_id) VALUES (?, ?)`,
		issueID, labelID,
	)
	if err != nil {
		t.Fatalf("Failed to attach label to issue: %v", err)
	}
}
