package models

// ============================================================================
// DEFAULT WORKFLOW TEMPLATES
// ============================================================================

// Default workflow titles seeded when a project is created, keyed by
// project type. Each workflow gets its list position as its index.
var (
	KanbanWorkflows = []string{"Backlog", "To Do", "In Progress", "Done"}
	ScrumWorkflows  = []string{"Backlog", "To Do", "In Progress", "Review", "Done"}
)

// DefaultWorkflows returns the workflow template for a project type.
// Unknown types get the kanban template.
func DefaultWorkflows(t ProjectType) []string {
	if t == ProjectTypeScrum {
		return ScrumWorkflows
	}
	return KanbanWorkflows
}

// ============================================================================
// VALIDATION LIMITS
// ============================================================================

const (
	// MaxProjectNameLength caps project names at creation and update.
	MaxProjectNameLength = 100

	// MinLabelTitleLength is the minimum label title length.
	MinLabelTitleLength = 4

	// MaxLabelTitleLength caps label titles.
	MaxLabelTitleLength = 50

	// LabelColorLength is the exact length of a label color code ("#RRGGBB").
	LabelColorLength = 7

	// MaxWorkflowTitleLength caps workflow titles.
	MaxWorkflowTitleLength = 50
)
