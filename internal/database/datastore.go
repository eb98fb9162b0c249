package database

// DataStore defines the unified interface for all data operations needed
// by the service layer. It is composed of smaller, domain-specific
// interfaces following the Interface Segregation Principle. Consumers can
// depend on the smaller interfaces (e.g., ProjectRepository,
// LabelRepository) for better testability and clearer dependencies.
type DataStore interface {
	UserRepository
	WorkspaceRepository
	ProjectRepository
	WorkflowRepository
	LabelRepository
	IssueRepository
}

// Compile-time verification that *Repository satisfies DataStore.
var _ DataStore = (*Repository)(nil)
