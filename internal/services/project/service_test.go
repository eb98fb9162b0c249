package project

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/tablero-dev/tablero/internal/database"
	"github.com/tablero-dev/tablero/internal/models"
	"github.com/tablero-dev/tablero/internal/testutil"
)

// newTestService wires the service against a fresh in-memory database and
// returns the plumbing needed for assertions.
func newTestService(t *testing.T) (Service, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	svc := NewService(repo, repo, repo, repo, repo, nil)
	return svc, db
}

func TestCreateProject_KanbanTemplate(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	user := testutil.CreateTestUser(t, db, "alice")
	testutil.CreateTestWorkspace(t, db, "acme", user.ID)

	created, err := svc.CreateProject(context.Background(), user.ID, CreateProjectRequest{
		Name:               "Board",
		ProjectType:        models.ProjectTypeKanban,
		WorkspaceShortName: "acme",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	assertWorkflowTemplate(t, db, created.ID, []string{"Backlog", "To Do", "In Progress", "Done"})
}

func TestCreateProject_ScrumScenario(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	user := testutil.CreateTestUser(t, db, "alice")
	testutil.CreateTestWorkspace(t, db, "acme", user.ID)

	created, err := svc.CreateProject(context.Background(), user.ID, CreateProjectRequest{
		Name:               "Sprint Board",
		ProjectType:        models.ProjectTypeScrum,
		WorkspaceShortName: "acme",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if created.ProjectLeadID != user.ID {
		t.Errorf("Expected lead %s, got %s", user.ID, created.ProjectLeadID)
	}
	if created.ProjectType != models.ProjectTypeScrum {
		t.Errorf("Expected SCRUM project, got %s", created.ProjectType)
	}

	assertWorkflowTemplate(t, db, created.ID, []string{"Backlog", "To Do", "In Progress", "Review", "Done"})

	// The creator is the sole initial member
	members, err := svc.GetProjectMembers(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Failed to get members: %v", err)
	}
	if len(members) != 1 || members[0].ID != user.ID {
		t.Errorf("Expected members = {creator}, got %d members", len(members))
	}
}

// assertWorkflowTemplate checks the seeded workflows match the template
// titles at indices 0..n-1.
func assertWorkflowTemplate(t *testing.T, db *sql.DB, projectID string, want []string) {
	t.Helper()

	rows, err := db.Query(`SELECT title, idx FROM workflows WHERE project_id = ? ORDER BY idx`, projectID)
	if err != nil {
		t.Fatalf("Failed to query workflows: %v", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var title string
		var idx int
		if err := rows.Scan(&title, &idx); err != nil {
			t.Fatalf("Failed to scan workflow: %v", err)
		}
		if i >= len(want) {
			t.Fatalf("More workflows than expected (%d)", len(want))
		}
		if title != want[i] {
			t.Errorf("Workflow %d: expected title %q, got %q", i, want[i], title)
		}
		if idx != i {
			t.Errorf("Workflow %q: expected index %d, got %d", title, i, idx)
		}
		i++
	}
	if i != len(want) {
		t.Errorf("Expected %d workflows, got %d", len(want), i)
	}
}

func TestCreateProject_UnknownWorkspace(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	user := testutil.CreateTestUser(t, db, "alice")

	_, err := svc.CreateProject(context.Background(), user.ID, CreateProjectRequest{
		Name:               "Board",
		ProjectType:        models.ProjectTypeKanban,
		WorkspaceShortName: "nowhere",
	})
	if !errors.Is(err, ErrWorkspaceNotFound) {
		t.Errorf("Expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestCreateProject_Validation(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	user := testutil.CreateTestUser(t, db, "alice")
	testutil.CreateTestWorkspace(t, db, "acme", user.ID)

	testCases := []struct {
		name string
		req  CreateProjectRequest
		want error
	}{
		{"empty name", CreateProjectRequest{Name: "", ProjectType: models.ProjectTypeKanban, WorkspaceShortName: "acme"}, ErrEmptyName},
		{"bad type", CreateProjectRequest{Name: "Board", ProjectType: "WATERFALL", WorkspaceShortName: "acme"}, ErrInvalidProjectType},
		{"empty short name", CreateProjectRequest{Name: "Board", ProjectType: models.ProjectTypeScrum, WorkspaceShortName: ""}, ErrEmptyShortName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProject(context.Background(), user.ID, tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDeleteProject_OnlyLead(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	lead := testutil.CreateTestUser(t, db, "lead")
	other := testutil.CreateTestUser(t, db, "other")
	ws := testutil.CreateTestWorkspace(t, db, "acme", lead.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, lead.ID)

	// A non-lead caller is rejected with the ownership error
	if _, err := svc.DeleteProject(context.Background(), other.ID, proj.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Expected ErrUnauthorized for non-lead, got %v", err)
	}

	// The lead succeeds and gets the deleted project back
	deleted, err := svc.DeleteProject(context.Background(), lead.ID, proj.ID)
	if err != nil {
		t.Fatalf("Expected lead delete to succeed, got %v", err)
	}
	if deleted.ID != proj.ID {
		t.Errorf("Expected deleted project %s, got %s", proj.ID, deleted.ID)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM projects WHERE id = ?`, proj.ID).Scan(&count); err != nil {
		t.Fatalf("Failed to count projects: %v", err)
	}
	if count != 0 {
		t.Error("Expected project row to be gone")
	}
}

func TestDeleteProject_MissingIsBadRequest(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	user := testutil.CreateTestUser(t, db, "alice")

	// The delete path wraps a failed lookup as a bad request, not a
	// not-found
	_, err := svc.DeleteProject(context.Background(), user.ID, "no-such-project")
	if !errors.Is(err, ErrBadRequest) {
		t.Errorf("Expected ErrBadRequest, got %v", err)
	}
	if errors.Is(err, ErrProjectNotFound) {
		t.Error("Delete must not report not-found directly")
	}
}

func TestListUserProjects(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	u1 := testutil.CreateTestUser(t, db, "u1")
	u2 := testutil.CreateTestUser(t, db, "u2")
	u3 := testutil.CreateTestUser(t, db, "u3")
	ws := testutil.CreateTestWorkspace(t, db, "acme", u1.ID)

	p1 := testutil.CreateTestProject(t, db, ws.ID, u1.ID)
	testutil.CreateTestProject(t, db, ws.ID, u3.ID)

	if _, err := db.Exec(`INSERT INTO project_members (project_id, user_id) VALUES (?, ?)`, p1.ID, u2.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}

	got, err := svc.ListUserProjects(context.Background(), u2.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected exactly 1 project for u2, got %d", len(got))
	}
	if got[0].ID != p1.ID {
		t.Errorf("Expected project %s, got %s", p1.ID, got[0].ID)
	}

	// The lead sees their project without an explicit membership row
	got, err = svc.ListUserProjects(context.Background(), u3.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Expected 1 project for u3, got %d", len(got))
	}
}

func TestGetProjectByID_Detail(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	lead := testutil.CreateTestUser(t, db, "lead")
	ws := testutil.CreateTestWorkspace(t, db, "acme", lead.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, lead.ID)
	wf := testutil.CreateTestWorkflow(t, db, proj.ID, "To Do", 0)
	lbl := testutil.CreateTestLabel(t, db, proj.ID, "bugs", "#FF0000")
	issue := testutil.CreateTestIssue(t, db, wf.ID, "Fix login", 0)
	testutil.AttachTestLabel(t, db, issue.ID, lbl.ID)

	detail, err := svc.GetProjectByID(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if detail.Lead == nil || detail.Lead.ID != lead.ID {
		t.Error("Expected lead to be resolved")
	}
	if detail.DefaultAssignee != nil {
		t.Error("Expected no default assignee")
	}
	if len(detail.Members) != 1 {
		t.Errorf("Expected 1 member, got %d", len(detail.Members))
	}
	if len(detail.Labels) != 1 {
		t.Fatalf("Expected 1 label, got %d", len(detail.Labels))
	}
	if detail.Labels[0].IssueCount != 1 {
		t.Errorf("Expected label issue count 1, got %d", detail.Labels[0].IssueCount)
	}
}

func TestGetProjectByID_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.GetProjectByID(context.Background(), "missing")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}

func TestGetProjectWorkflows_Ordering(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	lead := testutil.CreateTestUser(t, db, "lead")
	ws := testutil.CreateTestWorkspace(t, db, "acme", lead.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, lead.ID)

	// Insert out of order; the query must sort by index
	wfB := testutil.CreateTestWorkflow(t, db, proj.ID, "Done", 1)
	wfA := testutil.CreateTestWorkflow(t, db, proj.ID, "To Do", 0)
	testutil.CreateTestIssue(t, db, wfA.ID, "second", 1)
	testutil.CreateTestIssue(t, db, wfA.ID, "first", 0)

	board, err := svc.GetProjectWorkflows(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(board) != 2 {
		t.Fatalf("Expected 2 workflows, got %d", len(board))
	}
	if board[0].ID != wfA.ID || board[1].ID != wfB.ID {
		t.Error("Expected workflows ordered ascending by index")
	}
	if board[0].IssueCount != 2 {
		t.Errorf("Expected 2 issues in first workflow, got %d", board[0].IssueCount)
	}
	if board[0].Issues[0].Title != "first" || board[0].Issues[1].Title != "second" {
		t.Error("Expected issues ordered ascending by index")
	}
}

func TestGetProjectWorkflows_ProjectAbsent(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	_, err := svc.GetProjectWorkflows(context.Background(), "missing")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}

func TestUpdateProject(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	lead := testutil.CreateTestUser(t, db, "lead")
	assignee := testutil.CreateTestUser(t, db, "assignee")
	ws := testutil.CreateTestWorkspace(t, db, "acme", lead.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, lead.ID)

	updated, err := svc.UpdateProject(context.Background(), lead.ID, UpdateProjectRequest{
		ID:                proj.ID,
		Name:              "Renamed",
		DefaultAssigneeID: &assignee.ID,
		ProjectLeadID:     lead.ID,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("Expected name 'Renamed', got %q", updated.Name)
	}
	if updated.DefaultAssigneeID == nil || *updated.DefaultAssigneeID != assignee.ID {
		t.Error("Expected default assignee to be set")
	}

	// Clearing the default assignee with nil
	updated, err = svc.UpdateProject(context.Background(), lead.ID, UpdateProjectRequest{
		ID:            proj.ID,
		Name:          "Renamed",
		ProjectLeadID: lead.ID,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if updated.DefaultAssigneeID != nil {
		t.Error("Expected default assignee to be cleared")
	}
}

func TestUpdateProject_NonMemberRejected(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	lead := testutil.CreateTestUser(t, db, "lead")
	stranger := testutil.CreateTestUser(t, db, "stranger")
	ws := testutil.CreateTestWorkspace(t, db, "acme", lead.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, lead.ID)

	_, err := svc.UpdateProject(context.Background(), stranger.ID, UpdateProjectRequest{
		ID:            proj.ID,
		Name:          "Hijack",
		ProjectLeadID: stranger.ID,
	})
	if !errors.Is(err, ErrNotProjectMember) {
		t.Errorf("Expected ErrNotProjectMember, got %v", err)
	}
}

func TestAssignUserToProject(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	lead := testutil.CreateTestUser(t, db, "lead")
	joiner := testutil.CreateTestUser(t, db, "joiner")
	outsider := testutil.CreateTestUser(t, db, "outsider")
	ws := testutil.CreateTestWorkspace(t, db, "acme", lead.ID)
	testutil.AddTestWorkspaceMember(t, db, ws.ID, joiner.ID)
	proj := testutil.CreateTestProject(t, db, ws.ID, lead.ID)

	err := svc.AssignUserToProject(context.Background(), AssignUserRequest{
		WorkspaceID: ws.ID,
		ProjectID:   proj.ID,
		UserID:      joiner.ID,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	members, err := svc.GetProjectMembers(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("Failed to get members: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("Expected 2 members, got %d", len(members))
	}

	// Re-assigning is a no-op
	if err := svc.AssignUserToProject(context.Background(), AssignUserRequest{ProjectID: proj.ID, UserID: joiner.ID}); err != nil {
		t.Fatalf("Expected idempotent assign, got %v", err)
	}

	// A user outside the workspace cannot join the project
	err = svc.AssignUserToProject(context.Background(), AssignUserRequest{
		ProjectID: proj.ID,
		UserID:    outsider.ID,
	})
	if !errors.Is(err, ErrNotWorkspaceMember) {
		t.Errorf("Expected ErrNotWorkspaceMember, got %v", err)
	}
}

func TestAssignUserToProject_ForeignWorkspaceRejected(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	lead := testutil.CreateTestUser(t, db, "lead")
	outsider := testutil.CreateTestUser(t, db, "outsider")
	wsA := testutil.CreateTestWorkspace(t, db, "alpha", lead.ID)
	wsB := testutil.CreateTestWorkspace(t, db, "beta", outsider.ID)
	proj := testutil.CreateTestProject(t, db, wsA.ID, lead.ID)

	// Naming a workspace the user does belong to must not smuggle them
	// into a project of a different workspace.
	err := svc.AssignUserToProject(context.Background(), AssignUserRequest{
		WorkspaceID: wsB.ID,
		ProjectID:   proj.ID,
		UserID:      outsider.ID,
	})
	if !errors.Is(err, ErrWorkspaceMismatch) {
		t.Fatalf("Expected ErrWorkspaceMismatch, got %v", err)
	}

	members, err := svc.GetProjectMembers(context.Background(), proj.ID)
	if err != nil {
		t.Fatalf("Failed to get members: %v", err)
	}
	for _, m := range members {
		if m.ID == outsider.ID {
			t.Fatal("Expected outsider to stay out of the member set")
		}
	}

	// Even with the matching workspace named explicitly, membership in the
	// project's own workspace is still required.
	err = svc.AssignUserToProject(context.Background(), AssignUserRequest{
		WorkspaceID: wsA.ID,
		ProjectID:   proj.ID,
		UserID:      outsider.ID,
	})
	if !errors.Is(err, ErrNotWorkspaceMember) {
		t.Errorf("Expected ErrNotWorkspaceMember, got %v", err)
	}
}
