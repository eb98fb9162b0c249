package models

// Workflow represents an ordered stage/column (e.g., "To Do") on a
// project's board. Index is dense and unique within a project and
// defines display order.
type Workflow struct {
	ID        string
	Title     string
	Index     int
	ProjectID string
}

// WorkflowWithIssues is a workflow together with its issues ordered by
// issue index, plus the issue count for the column header.
type WorkflowWithIssues struct {
	Workflow
	Issues     []*IssueWithLabels
	IssueCount int
}
