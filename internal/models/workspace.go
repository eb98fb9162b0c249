package models

import "time"

// Workspace is the top-level container grouping projects and members.
// ShortName is a unique, human-chosen handle used in URLs and lookups.
type Workspace struct {
	ID          string
	ShortName   string
	Name        string
	CreatedByID string
	CreatedAt   time.Time
}

// WorkspaceMember is a member row joined with the user's display fields.
// The member-list view uses CreatedByID on the workspace to decide whether
// a row gets a "remove" action or only "leave".
type WorkspaceMember struct {
	UserID string
	Name   string
	Image  *string
}
