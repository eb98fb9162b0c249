package api

import (
	"time"

	"github.com/tablero-dev/tablero/internal/models"
)

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Image *string `json:"image,omitempty"`
}

// ProjectResponse is the wire form of a project row.
type ProjectResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	ProjectType       string    `json:"project_type"`
	ProjectLeadID     string    `json:"project_lead_id"`
	DefaultAssigneeID *string   `json:"default_assignee_id,omitempty"`
	WorkspaceID       string    `json:"workspace_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProjectSummaryResponse is a project row with its lead's name, as
// returned by the list endpoints.
type ProjectSummaryResponse struct {
	ProjectResponse
	LeadName string `json:"lead_name"`
}

// ProjectDetailResponse is the full view of a single project.
type ProjectDetailResponse struct {
	ProjectResponse
	Lead            *UserResponse    `json:"lead,omitempty"`
	DefaultAssignee *UserResponse    `json:"default_assignee,omitempty"`
	Members         []*UserResponse  `json:"members"`
	Labels          []*LabelResponse `json:"labels"`
}

// LabelResponse is the wire form of a label with its issue count.
type LabelResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	Description *string `json:"description,omitempty"`
	ProjectID   string  `json:"project_id"`
	IssueCount  int     `json:"issue_count"`
}

// WorkflowResponse is the wire form of a workflow row.
type WorkflowResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Index     int    `json:"index"`
	ProjectID string `json:"project_id"`
}

// IssueResponse is the wire form of an issue card.
type IssueResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Index      int              `json:"index"`
	WorkflowID string           `json:"workflow_id"`
	AssigneeID *string          `json:"assignee_id,omitempty"`
	Labels     []*LabelResponse `json:"labels"`
	LabelCount int              `json:"label_count"`
}

// WorkflowWithIssuesResponse is one board column with its issues.
type WorkflowWithIssuesResponse struct {
	WorkflowResponse
	Issues     []*IssueResponse `json:"issues"`
	IssueCount int              `json:"issue_count"`
}

// WorkspaceResponse is the wire form of a workspace.
type WorkspaceResponse struct {
	ID          string    `json:"id"`
	ShortName   string    `json:"short_name"`
	Name        string    `json:"name"`
	CreatedByID string    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// WorkspaceMemberResponse is one row of the member-list view. Removable
// is false for the creator, whose row only offers "leave".
type WorkspaceMemberResponse struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Image     *string `json:"image,omitempty"`
	Removable bool    `json:"removable"`
}

// MemberListResponse groups the member rows with the workspace's creator
// so the view can render remove/leave actions.
type MemberListResponse struct {
	WorkspaceID string                     `json:"workspace_id"`
	CreatedByID string                     `json:"created_by_id"`
	Members     []*WorkspaceMemberResponse `json:"members"`
}

// ============================================================================
// CONVERTERS
// ============================================================================

func toUserResponse(u *models.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Image: u.Image}
}

func toProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:                p.ID,
		Name:              p.Name,
		ProjectType:       string(p.ProjectType),
		ProjectLeadID:     p.ProjectLeadID,
		DefaultAssigneeID: p.DefaultAssigneeID,
		WorkspaceID:       p.WorkspaceID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toProjectSummaryResponses(summaries []*models.ProjectSummary) []*ProjectSummaryResponse {
	out := make([]*ProjectSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, &ProjectSummaryResponse{
			ProjectResponse: toProjectResponse(&s.Project),
			LeadName:        s.LeadName,
		})
	}
	return out
}

func toLabelResponse(l *models.Label, issueCount int) *LabelResponse {
	return &LabelResponse{
		ID:          l.ID,
		Title:       l.Title,
		Color:       l.Color,
		Description: l.Description,
		ProjectID:   l.ProjectID,
		IssueCount:  issueCount,
	}
}

func toLabelResponses(labels []*models.LabelWithCount) []*LabelResponse {
	out := make([]*LabelResponse, 0, len(labels))
	for _, l := range labels {
		out = append(out, toLabelResponse(&l.Label, l.IssueCount))
	}
	return out
}

func toWorkflowResponse(w *models.Workflow) WorkflowResponse {
	return WorkflowResponse{ID: w.ID, Title: w.Title, Index: w.Index, ProjectID: w.ProjectID}
}

func toBoardResponse(board []*models.WorkflowWithIssues) []*WorkflowWithIssuesResponse {
	out := make([]*WorkflowWithIssuesResponse, 0, len(board))
	for _, wf := range board {
		issues := make([]*IssueResponse, 0, len(wf.Issues))
		for _, issue := range wf.Issues {
			labels := make([]*LabelResponse, 0, len(issue.Labels))
			for _, l := range issue.Labels {
				labels = append(labels, toLabelResponse(l, 0))
			}
			issues = append(issues, &IssueResponse{
				ID:         issue.ID,
				Title:      issue.Title,
				Index:      issue.Index,
				WorkflowID: issue.WorkflowID,
				AssigneeID: issue.AssigneeID,
				Labels:     labels,
				LabelCount: len(labels),
			})
		}
		out = append(out, &WorkflowWithIssuesResponse{
			WorkflowResponse: toWorkflowResponse(&wf.Workflow),
			Issues:           issues,
			IssueCount:       wf.IssueCount,
		})
	}
	return out
}

func toWorkspaceResponse(ws *models.Workspace) *WorkspaceResponse {
	return &WorkspaceResponse{
		ID:          ws.ID,
		ShortName:   ws.ShortName,
		Name:        ws.Name,
		CreatedByID: ws.CreatedByID,
		CreatedAt:   ws.CreatedAt,
	}
}
