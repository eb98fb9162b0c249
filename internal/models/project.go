package models

import "time"

// ProjectType determines the board style and the default workflow set
// seeded when the project is created. It is immutable after creation.
type ProjectType string

const (
	ProjectTypeKanban ProjectType = "KANBAN"
	ProjectTypeScrum  ProjectType = "SCRUM"
)

// Valid reports whether t is a known project type.
func (t ProjectType) Valid() bool {
	return t == ProjectTypeKanban || t == ProjectTypeScrum
}

// Project is a unit of work inside a workspace with its own workflows,
// labels, and membership.
type Project struct {
	ID                string
	Name              string
	ProjectType       ProjectType
	ProjectLeadID     string
	DefaultAssigneeID *string
	WorkspaceID       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProjectSummary is a project row joined with its lead's display name,
// as returned by the list endpoints.
type ProjectSummary struct {
	Project
	LeadName string
}

// ProjectDetail is the full view of a single project: members, lead,
// optional default assignee, and labels with issue counts.
type ProjectDetail struct {
	Project
	Lead            *User
	DefaultAssignee *User
	Members         []*User
	Labels          []*LabelWithCount
}
