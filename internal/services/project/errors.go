package project

import "errors"

// Domain errors for project service
var (
	// Validation errors
	ErrInvalidProjectID   = errors.New("project ID cannot be empty")
	ErrEmptyName          = errors.New("project name cannot be empty")
	ErrNameTooLong        = errors.New("project name cannot exceed 100 characters")
	ErrInvalidProjectType = errors.New("project type must be KANBAN or SCRUM")
	ErrEmptyShortName     = errors.New("workspace short name cannot be empty")
	ErrInvalidUserID      = errors.New("user ID cannot be empty")

	// Business logic errors
	ErrProjectNotFound   = errors.New("project not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrNotWorkspaceMember = errors.New("user is not a member of the workspace")
	ErrNotProjectMember   = errors.New("caller is not a member of the project")
	ErrWorkspaceMismatch  = errors.New("workspace does not match the project's workspace")

	// ErrUnauthorized is returned when the caller is not the project lead.
	ErrUnauthorized = errors.New("only the project lead may delete the project")

	// ErrBadRequest is the coarse wrapper DeleteProject reports for every
	// failure other than a failed lead check, including a failed lookup.
	ErrBadRequest = errors.New("bad request")
)
