package workflow

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

// Service defines workflow management operations. Workflows are created
// and deleted independently after the project's default set is seeded.
type Service interface {
	CreateWorkflow(ctx context.Context, req CreateWorkflowRequest) (*models.Workflow, error)
	RenameWorkflow(ctx context.Context, id, title string) (*models.Workflow, error)
	DeleteWorkflow(ctx context.Context, id string) (*models.Workflow, error)
}

// CreateWorkflowRequest encapsulates data for appending a workflow to a
// project's board.
type CreateWorkflowRequest struct {
	ProjectID string
	Title     string
}

// repository defines the workflow data access methods needed by the service.
type repository interface {
	CreateWorkflow(ctx context.Context, wf *models.Workflow) (*models.Workflow, error)
	GetWorkflowByID(ctx context.Context, id string) (*models.Workflow, error)
	UpdateWorkflowTitle(ctx context.Context, id, title string) error
	DeleteWorkflow(ctx context.Context, id string) error
	GetIssueCountByWorkflow(ctx context.Context, workflowID string) (int, error)
}

// service implements Service
type service struct {
	repo      repository
	publisher events.Publisher
}

// NewService creates a new workflow service
func NewService(repo repository, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateWorkflow appends a workflow at the end of the project's board.
// The index is assigned by the store to keep the sequence dense.
func (s *service) CreateWorkflow(ctx context.Context, req CreateWorkflowRequest) (*models.Workflow, error) {
	if req.ProjectID == "" {
		return nil, ErrInvalidProjectID
	}
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	wf := &models.Workflow{
		ID:        uuid.NewString(),
		Title:     req.Title,
		ProjectID: req.ProjectID,
	}
	created, err := s.repo.CreateWorkflow(ctx, wf)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: req.ProjectID,
	})
	return created, nil
}

// RenameWorkflow changes a workflow's title.
func (s *service) RenameWorkflow(ctx context.Context, id, title string) (*models.Workflow, error) {
	if id == "" {
		return nil, ErrInvalidWorkflowID
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetWorkflowByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkflowNotFound
		}
		return nil, err
	}

	if err := s.repo.UpdateWorkflowTitle(ctx, id, title); err != nil {
		return nil, fmt.Errorf("failed to rename workflow: %w", err)
	}
	existing.Title = title

	events.Publish(s.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: existing.ProjectID,
	})
	return existing, nil
}

// DeleteWorkflow removes an empty workflow. The remaining workflow
// indices are compacted so they stay dense.
func (s *service) DeleteWorkflow(ctx context.Context, id string) (*models.Workflow, error) {
	if id == "" {
		return nil, ErrInvalidWorkflowID
	}

	existing, err := s.repo.GetWorkflowByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkflowNotFound
		}
		return nil, err
	}

	count, err := s.repo.GetIssueCountByWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrWorkflowHasIssues
	}

	if err := s.repo.DeleteWorkflow(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete workflow: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:      events.EventProjectChanged,
		ProjectID: existing.ProjectID,
	})
	return existing, nil
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length == 0 {
		return ErrEmptyTitle
	}
	if length > models.MaxWorkflowTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
