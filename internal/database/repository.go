package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*WorkspaceRepo
	*ProjectRepo
	*WorkflowRepo
	*LabelRepo
	*IssueRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:      &UserRepo{db: db},
		WorkspaceRepo: &WorkspaceRepo{db: db},
		ProjectRepo:   &ProjectRepo{db: db},
		WorkflowRepo:  &WorkflowRepo{db: db},
		LabelRepo:     &LabelRepo{db: db},
		IssueRepo:     &IssueRepo{db: db},
	}
}
