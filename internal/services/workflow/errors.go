package workflow

import "errors"

// Workflow-related errors
var (
	// Validation errors
	ErrEmptyTitle         = errors.New("workflow title cannot be empty")
	ErrTitleTooLong       = errors.New("workflow title cannot exceed 50 characters")
	ErrInvalidWorkflowID  = errors.New("workflow ID cannot be empty")
	ErrInvalidProjectID   = errors.New("project ID cannot be empty")

	// Business logic errors
	ErrWorkflowNotFound  = errors.New("workflow not found")
	ErrWorkflowHasIssues = errors.New("cannot delete a workflow that still has issues")
)
