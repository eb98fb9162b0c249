package models

import "time"

// Issue belongs to a workflow and is ordered within it by Index.
// Issues are read-only in this service; they are written by the issue
// tracking surface, not the project management procedures.
type Issue struct {
	ID         string
	Title      string
	Index      int
	WorkflowID string
	AssigneeID *string
	CreatedAt  time.Time
}

// IssueWithLabels is an issue joined with its labels, as rendered on
// board cards.
type IssueWithLabels struct {
	Issue
	Labels []*Label
}
