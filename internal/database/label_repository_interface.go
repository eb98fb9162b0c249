package database

import (
	"context"

	"github.com/tablero-dev/tablero/internal/models"
)

// LabelReader defines read operations for labels.
type LabelReader interface {
	GetLabelByID(ctx context.Context, id string) (*models.Label, error)
	GetLabelsByProject(ctx context.Context, projectID string) ([]*models.LabelWithCount, error)
	GetLabelsForIssue(ctx context.Context, issueID string) ([]*models.Label, error)
	GetIssueCountForLabel(ctx context.Context, labelID string) (int, error)
}

// LabelWriter defines write operations for labels.
type LabelWriter interface {
	CreateLabel(ctx context.Context, label *models.Label) error
	UpdateLabel(ctx context.Context, id, title, color string, description *string) error
	DeleteLabel(ctx context.Context, id string) error
}

// LabelRepository combines all label-related operations.
type LabelRepository interface {
	LabelReader
	LabelWriter
}
