package workspace

import "errors"

// Workspace-related errors
var (
	// Validation errors
	ErrEmptyShortName   = errors.New("workspace short name cannot be empty")
	ErrEmptyName        = errors.New("workspace name cannot be empty")
	ErrInvalidUserID    = errors.New("user ID cannot be empty")

	// Business logic errors
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrShortNameTaken     = errors.New("workspace short name is already taken")
	ErrCannotRemoveCreator = errors.New("the workspace creator cannot be removed, only leave")
)
