package label

import "errors"

// Label-related errors
var (
	// Validation errors
	ErrTitleTooShort    = errors.New("label title must be at least 4 characters")
	ErrTitleTooLong     = errors.New("label title cannot exceed 50 characters")
	ErrInvalidColor     = errors.New("label color must be exactly 7 characters (e.g. #7D56F4)")
	ErrInvalidLabelID   = errors.New("label ID cannot be empty")
	ErrInvalidProjectID = errors.New("project ID cannot be empty")

	// Business logic errors
	ErrLabelNotFound = errors.New("label not found")
)
