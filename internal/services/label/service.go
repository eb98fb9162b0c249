package label

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/tablero-dev/tablero/internal/events"
	"github.com/tablero-dev/tablero/internal/models"
)

// Service defines all label-related business operations
type Service interface {
	// Read operations
	ListProjectLabels(ctx context.Context, projectID string) ([]*models.LabelWithCount, error)

	// Write operations
	CreateProjectLabel(ctx context.Context, req CreateLabelRequest) (*models.LabelWithCount, error)
	UpdateProjectLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)
	DeleteProjectLabel(ctx context.Context, id string) (*models.Label, error)
}

// CreateLabelRequest encapsulates data for creating a label
type CreateLabelRequest struct {
	ProjectID   string
	Title       string
	Color       string // 7-character code like #FF5733
	Description *string
}

// UpdateLabelRequest encapsulates data for updating a label
type UpdateLabelRequest struct {
	ID          string
	Title       string
	Color       string
	Description *string // nil clears the description
}

// repository defines the label data access methods needed by the service.
type repository interface {
	CreateLabel(ctx context.Context, label *models.Label) error
	GetLabelByID(ctx context.Context, id string) (*models.Label, error)
	GetLabelsByProject(ctx context.Context, projectID string) ([]*models.LabelWithCount, error)
	UpdateLabel(ctx context.Context, id, title, color string, description *string) error
	DeleteLabel(ctx context.Context, id string) error
	GetIssueCountForLabel(ctx context.Context, labelID string) (int, error)
}

// service implements Service
type service struct {
	repo      repository
	publisher events.Publisher
}

// NewService creates a new label service
func NewService(repo repository, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

// ListProjectLabels retrieves all labels for a project with their
// issue-count aggregates.
func (s *service) ListProjectLabels(ctx context.Context, projectID string) ([]*models.LabelWithCount, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetLabelsByProject(ctx, projectID)
}

// CreateProjectLabel creates a label after validating title and color.
// Validation happens before any store access.
func (s *service) CreateProjectLabel(ctx context.Context, req CreateLabelRequest) (*models.LabelWithCount, error) {
	if req.ProjectID == "" {
		return nil, ErrInvalidProjectID
	}
	if err := validateTitleAndColor(req.Title, req.Color); err != nil {
		return nil, err
	}

	label := &models.Label{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Color:       req.Color,
		Description: req.Description,
		ProjectID:   req.ProjectID,
	}
	if err := s.repo.CreateLabel(ctx, label); err != nil {
		return nil, fmt.Errorf("failed to create label: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: req.ProjectID,
	})

	// A fresh label has no issues yet
	return &models.LabelWithCount{Label: *label, IssueCount: 0}, nil
}

// UpdateProjectLabel updates a label's title, color, and description with
// the same validation as creation.
func (s *service) UpdateProjectLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error) {
	if req.ID == "" {
		return nil, ErrInvalidLabelID
	}
	if err := validateTitleAndColor(req.Title, req.Color); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetLabelByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLabelNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateLabel(ctx, req.ID, req.Title, req.Color, req.Description); err != nil {
		return nil, fmt.Errorf("failed to update label: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: existing.ProjectID,
	})

	return &models.Label{
		ID:          req.ID,
		Title:       req.Title,
		Color:       req.Color,
		Description: req.Description,
		ProjectID:   existing.ProjectID,
	}, nil
}

// DeleteProjectLabel removes a label and returns the deleted row.
func (s *service) DeleteProjectLabel(ctx context.Context, id string) (*models.Label, error) {
	if id == "" {
		return nil, ErrInvalidLabelID
	}

	existing, err := s.repo.GetLabelByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLabelNotFound
		}
		return nil, err
	}

	if err := s.repo.DeleteLabel(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete label: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: existing.ProjectID,
	})
	return existing, nil
}

// validateTitleAndColor enforces the label constraints: title between 4
// and 50 characters, color exactly 7 characters.
func validateTitleAndColor(title, color string) error {
	titleLen := utf8.RuneCountInString(title)
	if titleLen < models.MinLabelTitleLength {
		return ErrTitleTooShort
	}
	if titleLen > models.MaxLabelTitleLength {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(color) != models.LabelColorLength {
		return ErrInvalidColor
	}
	return nil
}
