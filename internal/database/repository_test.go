package database_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/tablero-dev/tablero/internal/database"
	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/testutil"
)

func newRepo(t *testing.T) (*database.Repository, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return database.NewRepository(db), db
}

func TestCreateProject_SkipsDuplicateWorkflowTitles(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")
	ws := testutil.CreateTestWorkspace(t, db, "acme", user.ID)

	project := &models.Project{
		ID:            uuid.NewString(),
		Name:          "Board",
		ProjectType:   models.ProjectTypeKanban,
		ProjectLeadID: user.ID,
		WorkspaceID:   ws.ID,
	}
	workflows := []*models.Workflow{
		{ID: uuid.NewString(), Title: "To Do", Index: 0, ProjectID: project.ID},
		{ID: uuid.NewString(), Title: "To Do", Index: 1, ProjectID: project.ID},
		{ID: uuid.NewString(), Title: "Done", Index: 2, ProjectID: project.ID},
	}

	if err := repo.CreateProject(context.Background(), project, workflows); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM workflows WHERE project_id = ?`, project.ID).Scan(&count); err != nil {
		t.Fatalf("Failed to count workflows: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected duplicate title skipped (2 rows), got %d", count)
	}
}

func TestCreateProject_RollsBackOnFailure(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")
	ws := testutil.CreateTestWorkspace(t, db, "acme", user.ID)

	sameID := uuid.NewString()
	project := &models.Project{
		ID:            uuid.NewString(),
		Name:          "Board",
		ProjectType:   models.ProjectTypeKanban,
		ProjectLeadID: user.ID,
		WorkspaceID:   ws.ID,
	}
	// Second workflow reuses the first's primary key, so the batch fails
	// and the whole transaction must roll back.
	workflows := []*models.Workflow{
		{ID: sameID, Title: "To Do", Index: 0, ProjectID: project.ID},
		{ID: sameID, Title: "Done", Index: 1, ProjectID: project.ID},
	}

	if err := repo.CreateProject(context.Background(), project, workflows); err == nil {
		t.Fatal("Expected an error from the duplicate workflow ID")
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM projects WHERE id = ?`, project.ID).Scan(&count); err != nil {
		t.Fatalf("Failed to count projects: %v", err)
	}
	if count != 0 {
		t.Error("Expected project insert to be rolled back")
	}
}

func TestGetProjectByID_NoRows(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)

	_, err := repo.GetProjectByID(context.Background(), "missing")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected wrapped sql.ErrNoRows, got %v", err)
	}
}

func TestGetProjectsForUser_Deduplicates(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")
	ws := testutil.CreateTestWorkspace(t, db, "acme", user.ID)

	// The lead also has an explicit membership row, which the query must
	// not double-count.
	proj := testutil.CreateTestProject(t, db, ws.ID, user.ID)

	got, err := repo.GetProjectsForUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 project, got %d", len(got))
	}
	if got[0].ID != proj.ID {
		t.Errorf("Expected project %s, got %s", proj.ID, got[0].ID)
	}
	if got[0].LeadName != "alice" {
		t.Errorf("Expected lead name 'alice', got %q", got[0].LeadName)
	}
}

func TestDeleteProject_Cascades(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")
	ws := testutil.CreateTestWorkspace(t, db, "acme", user.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, user.ID)
	wf := testutil.CreateTestWorkflow(t, db, proj.ID, "To Do", 0)
	lbl := testutil.CreateTestLabel(t, db, proj.ID, "backend", "#FF5733")
	issue := testutil.CreateTestIssue(t, db, wf.ID, "task", 0)
	testutil.AttachTestLabel(t, db, issue.ID, lbl.ID)

	if err := repo.DeleteProject(context.Background(), proj.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, q := range []string{
		`SELECT COUNT(*) FROM workflows`,
		`SELECT COUNT(*) FROM issues`,
		`SELECT COUNT(*) FROM labels`,
		`SELECT COUNT(*) FROM issue_labels`,
		`SELECT COUNT(*) FROM project_members`,
	} {
		var count int
		if err := db.QueryRow(q).Scan(&count); err != nil {
			t.Fatalf("Failed to count rows: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected cascade to clear rows for %q, got %d", q, count)
		}
	}
}

func TestCreateWorkflow_AssignsNextIndex(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")
	ws := testutil.CreateTestWorkspace(t, db, "acme", user.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, user.ID)
	testutil.CreateTestWorkflow(t, db, proj.ID, "Backlog", 0)
	testutil.CreateTestWorkflow(t, db, proj.ID, "Done", 1)

	created, err := repo.CreateWorkflow(context.Background(), &models.Workflow{
		ID:        uuid.NewString(),
		Title:     "Blocked",
		ProjectID: proj.ID,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if created.Index != 2 {
		t.Errorf("Expected index 2, got %d", created.Index)
	}
}

func TestDeleteWorkflow_CompactsOnlyOwnProject(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")
	ws := testutil.CreateTestWorkspace(t, db, "acme", user.ID)
	p1 := testutil.CreateTestProject(t, db, ws.ID, user.ID)
	p2 := testutil.CreateTestProject(t, db, ws.ID, user.ID)

	victim := testutil.CreateTestWorkflow(t, db, p1.ID, "To Do", 0)
	testutil.CreateTestWorkflow(t, db, p1.ID, "Done", 1)
	other := testutil.CreateTestWorkflow(t, db, p2.ID, "Done", 1)

	if err := repo.DeleteWorkflow(context.Background(), victim.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var idx int
	if err := db.QueryRow(`SELECT idx FROM workflows WHERE project_id = ? AND title = 'Done'`, p1.ID).Scan(&idx); err != nil {
		t.Fatalf("Failed to read workflow: %v", err)
	}
	if idx != 0 {
		t.Errorf("Expected compaction to shift index to 0, got %d", idx)
	}

	// The sibling project's indices are untouched
	if err := db.QueryRow(`SELECT idx FROM workflows WHERE id = ?`, other.ID).Scan(&idx); err != nil {
		t.Fatalf("Failed to read workflow: %v", err)
	}
	if idx != 1 {
		t.Errorf("Expected other project's index unchanged, got %d", idx)
	}
}

func TestGetIssuesByWorkflow_OrderAndLabels(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")
	ws := testutil.CreateTestWorkspace(t, db, "acme", user.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, user.ID)
	wf := testutil.CreateTestWorkflow(t, db, proj.ID, "To Do", 0)
	lbl := testutil.CreateTestLabel(t, db, proj.ID, "backend", "#FF5733")

	second := testutil.CreateTestIssue(t, db, wf.ID, "second", 1)
	first := testutil.CreateTestIssue(t, db, wf.ID, "first", 0)
	testutil.AttachTestLabel(t, db, second.ID, lbl.ID)

	issues, err := repo.GetIssuesByWorkflow(context.Background(), wf.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(issues))
	}
	if issues[0].ID != first.ID || issues[1].ID != second.ID {
		t.Error("Expected issues ordered by index")
	}
	if len(issues[0].Labels) != 0 {
		t.Errorf("Expected no labels on first issue, got %d", len(issues[0].Labels))
	}
	if len(issues[1].Labels) != 1 || issues[1].Labels[0].ID != lbl.ID {
		t.Error("Expected label attached to second issue")
	}
}

func TestGetUserByToken(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	user := testutil.CreateTestUser(t, db, "alice")

	got, err := repo.GetUserByToken(context.Background(), "token-alice")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected user %s, got %s", user.ID, got.ID)
	}

	_, err = repo.GetUserByToken(context.Background(), "bogus")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Expected wrapped sql.ErrNoRows, got %v", err)
	}
}

func TestRemoveWorkspaceMember(t *testing.T) {
	t.Parallel()

	repo, db := newRepo(t)
	creator := testutil.CreateTestUser(t, db, "creator")
	member := testutil.CreateTestUser(t, db, "member")
	ws := testutil.CreateTestWorkspace(t, db, "acme", creator.ID)
	testutil.AddTestWorkspaceMember(t, db, ws.ID, member.ID)

	ok, err := repo.IsWorkspaceMember(context.Background(), ws.ID, member.ID)
	if err != nil || !ok {
		t.Fatalf("Expected membership, got ok=%v err=%v", ok, err)
	}

	if err := repo.RemoveWorkspaceMember(context.Background(), ws.ID, member.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ok, err = repo.IsWorkspaceMember(context.Background(), ws.ID, member.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok {
		t.Error("Expected membership to be gone")
	}
}
