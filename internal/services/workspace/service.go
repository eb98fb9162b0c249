package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tablero-dev/tablero/internal/events"
	"github.com/tablero-dev/tablero/internal/models"
)

// Service defines workspace and membership operations.
type Service interface {
	CreateWorkspace(ctx context.Context, actorID string, req CreateWorkspaceRequest) (*models.Workspace, error)
	GetWorkspaceByShortName(ctx context.Context, shortName string) (*models.Workspace, error)

	// MemberList returns the workspace and its members together so the
	// member-list view can mark the creator row as "leave"-only.
	MemberList(ctx context.Context, shortName string) (*models.Workspace, []*models.WorkspaceMember, error)
	AddMember(ctx context.Context, shortName, userID string) error
	RemoveMember(ctx context.Context, actorID, shortName, userID string) error
}

// CreateWorkspaceRequest encapsulates data for creating a workspace
type CreateWorkspaceRequest struct {
	ShortName string
	Name      string
}

// repository defines the workspace data access methods needed by the service.
type repository interface {
	CreateWorkspace(ctx context.Context, ws *models.Workspace) error
	GetWorkspaceByShortName(ctx context.Context, shortName string) (*models.Workspace, error)
	GetWorkspaceMembers(ctx context.Context, workspaceID string) ([]*models.WorkspaceMember, error)
	AddWorkspaceMember(ctx context.Context, workspaceID, userID string) error
	RemoveWorkspaceMember(ctx context.Context, workspaceID, userID string) error
}

// service implements Service
type service struct {
	repo      repository
	publisher events.Publisher
}

// NewService creates a new workspace service
func NewService(repo repository, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateWorkspace creates a workspace with a unique short name. The
// creator is added as the first member.
func (s *service) CreateWorkspace(ctx context.Context, actorID string, req CreateWorkspaceRequest) (*models.Workspace, error) {
	if actorID == "" {
		return nil, ErrInvalidUserID
	}
	if req.ShortName == "" {
		return nil, ErrEmptyShortName
	}
	if req.Name == "" {
		return nil, ErrEmptyName
	}

	ws := &models.Workspace{
		ID:          uuid.NewString(),
		ShortName:   req.ShortName,
		Name:        req.Name,
		CreatedByID: actorID,
	}
	if err := s.repo.CreateWorkspace(ctx, ws); err != nil {
		// sqlite reports UNIQUE violations as generic errors; the short
		// name is the only unique column this insert touches
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrShortNameTaken
		}
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:        events.EventWorkspaceChanged,
		WorkspaceID: ws.ID,
	})
	return ws, nil
}

// GetWorkspaceByShortName resolves a workspace by its unique handle.
func (s *service) GetWorkspaceByShortName(ctx context.Context, shortName string) (*models.Workspace, error) {
	if shortName == "" {
		return nil, ErrEmptyShortName
	}
	ws, err := s.repo.GetWorkspaceByShortName(ctx, shortName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return ws, nil
}

// MemberList returns the workspace with its member rows.
func (s *service) MemberList(ctx context.Context, shortName string) (*models.Workspace, []*models.WorkspaceMember, error) {
	ws, err := s.GetWorkspaceByShortName(ctx, shortName)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetWorkspaceMembers(ctx, ws.ID)
	if err != nil {
		return nil, nil, err
	}
	return ws, members, nil
}

// AddMember adds a user to the workspace. Re-adding is a no-op.
func (s *service) AddMember(ctx context.Context, shortName, userID string) error {
	if userID == "" {
		return ErrInvalidUserID
	}

	ws, err := s.GetWorkspaceByShortName(ctx, shortName)
	if err != nil {
		return err
	}

	if err := s.repo.AddWorkspaceMember(ctx, ws.ID, userID); err != nil {
		return fmt.Errorf("failed to add workspace member: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:        events.EventWorkspaceChanged,
		WorkspaceID: ws.ID,
	})
	return nil
}

// RemoveMember removes a user from the workspace. The creator cannot be
// removed by anyone else; they can only leave themselves.
func (s *service) RemoveMember(ctx context.Context, actorID, shortName, userID string) error {
	if actorID == "" || userID == "" {
		return ErrInvalidUserID
	}

	ws, err := s.GetWorkspaceByShortName(ctx, shortName)
	if err != nil {
		return err
	}

	if userID == ws.CreatedByID && actorID != ws.CreatedByID {
		return ErrCannotRemoveCreator
	}

	if err := s.repo.RemoveWorkspaceMember(ctx, ws.ID, userID); err != nil {
		return fmt.Errorf("failed to remove workspace member: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:        events.EventWorkspaceChanged,
		WorkspaceID: ws.ID,
	})
	return nil
}
