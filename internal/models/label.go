package models

// Label represents a colored tag attachable to issues within a project.
// Color is always a 7-character hex code like "#7D56F4".
type Label struct {
	ID          string
	Title       string
	Color       string
	Description *string
	ProjectID   string
}

// LabelWithCount is a label joined with the number of issues carrying it.
type LabelWithCount struct {
	Label
	IssueCount int
}
