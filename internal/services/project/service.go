package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tablero-dev/tablero/internal/events"
	"github.com/tablero-dev/tablero/internal/models"
)

// Service defines all project-related business operations. Every
// operation that acts on behalf of a caller takes the authenticated
// user's ID explicitly; there is no ambient session state.
type Service interface {
	// Read operations
	ListAllProjects(ctx context.Context) ([]*models.ProjectSummary, error)
	GetProjectByID(ctx context.Context, id string) (*models.ProjectDetail, error)
	ListUserProjects(ctx context.Context, userID string) ([]*models.ProjectSummary, error)
	GetProjectMembers(ctx context.Context, projectID string) ([]*models.User, error)
	GetProjectWorkflows(ctx context.Context, projectID string) ([]*models.WorkflowWithIssues, error)

	// Write operations
	CreateProject(ctx context.Context, actorID string, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, actorID string, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, actorID, id string) (*models.Project, error)
	AssignUserToProject(ctx context.Context, req AssignUserRequest) error
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Name               string
	ProjectType        models.ProjectType
	WorkspaceShortName string
}

// UpdateProjectRequest encapsulates data for updating a project
type UpdateProjectRequest struct {
	ID                string
	Name              string
	DefaultAssigneeID *string // nil clears the default assignee
	ProjectLeadID     string
}

// AssignUserRequest encapsulates data for adding a user to a project's
// member set.
type AssignUserRequest struct {
	WorkspaceID string
	ProjectID   string
	UserID      string
}

// repository defines the project data access methods needed by the
// service. This interface is private to the service layer.
type repository interface {
	CreateProject(ctx context.Context, project *models.Project, workflows []*models.Workflow) error
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.ProjectSummary, error)
	GetProjectsForUser(ctx context.Context, userID string) ([]*models.ProjectSummary, error)
	UpdateProject(ctx context.Context, id, name string, defaultAssigneeID *string, projectLeadID string) error
	DeleteProject(ctx context.Context, id string) error
	AddProjectMember(ctx context.Context, projectID, userID string) error
	GetProjectMembers(ctx context.Context, projectID string) ([]*models.User, error)
	IsProjectMember(ctx context.Context, projectID, userID string) (bool, error)
}

// workspaceRepository resolves workspaces and checks their membership.
type workspaceRepository interface {
	GetWorkspaceByShortName(ctx context.Context, shortName string) (*models.Workspace, error)
	IsWorkspaceMember(ctx context.Context, workspaceID, userID string) (bool, error)
}

// userRepository loads user rows for the project detail view.
type userRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// boardRepository reads workflows and their issues for the board view.
type boardRepository interface {
	GetWorkflowsByProject(ctx context.Context, projectID string) ([]*models.Workflow, error)
	GetIssuesByWorkflow(ctx context.Context, workflowID string) ([]*models.IssueWithLabels, error)
}

// labelRepository reads label aggregates for the project detail view.
type labelRepository interface {
	GetLabelsByProject(ctx context.Context, projectID string) ([]*models.LabelWithCount, error)
}

// service implements Service
type service struct {
	repo          repository
	workspaceRepo workspaceRepository
	userRepo      userRepository
	boardRepo     boardRepository
	labelRepo     labelRepository
	publisher     events.Publisher
}

// NewService creates a new project service.
func NewService(
	repo repository,
	workspaceRepo workspaceRepository,
	userRepo userRepository,
	boardRepo boardRepository,
	labelRepo labelRepository,
	publisher events.Publisher,
) Service {
	return &service{
		repo:          repo,
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		boardRepo:     boardRepo,
		labelRepo:     labelRepo,
		publisher:     publisher,
	}
}

// ListAllProjects retrieves every project with its lead's name.
func (s *service) ListAllProjects(ctx context.Context) ([]*models.ProjectSummary, error) {
	return s.repo.GetAllProjects(ctx)
}

// GetProjectByID retrieves the full view of a project: members, lead,
// default assignee, and labels with issue counts.
func (s *service) GetProjectByID(ctx context.Context, id string) (*models.ProjectDetail, error) {
	if id == "" {
		return nil, ErrInvalidProjectID
	}

	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	detail := &models.ProjectDetail{Project: *project}

	detail.Lead, err = s.userRepo.GetUserByID(ctx, project.ProjectLeadID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project lead: %w", err)
	}

	if project.DefaultAssigneeID != nil {
		detail.DefaultAssignee, err = s.userRepo.GetUserByID(ctx, *project.DefaultAssigneeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get default assignee: %w", err)
		}
	}

	detail.Members, err = s.repo.GetProjectMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	detail.Labels, err = s.labelRepo.GetLabelsByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// ListUserProjects retrieves the projects where the user is a member or
// the lead.
func (s *service) ListUserProjects(ctx context.Context, userID string) ([]*models.ProjectSummary, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return s.repo.GetProjectsForUser(ctx, userID)
}

// GetProjectMembers retrieves a project's member set.
func (s *service) GetProjectMembers(ctx context.Context, projectID string) ([]*models.User, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	return s.repo.GetProjectMembers(ctx, projectID)
}

// GetProjectWorkflows retrieves a project's workflows ordered by index,
// each with its issues ordered by index and their labels attached.
func (s *service) GetProjectWorkflows(ctx context.Context, projectID string) ([]*models.WorkflowWithIssues, error) {
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}

	// The board query fails loudly when the project is gone, unlike the
	// plain list operations.
	if _, err := s.repo.GetProjectByID(ctx, projectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	workflows, err := s.boardRepo.GetWorkflowsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	board := make([]*models.WorkflowWithIssues, 0, len(workflows))
	for _, wf := range workflows {
		issues, err := s.boardRepo.GetIssuesByWorkflow(ctx, wf.ID)
		if err != nil {
			return nil, err
		}
		board = append(board, &models.WorkflowWithIssues{
			Workflow:   *wf,
			Issues:     issues,
			IssueCount: len(issues),
		})
	}
	return board, nil
}

// CreateProject creates a project in the workspace named by its short
// name. The caller becomes the lead and the first member, and the
// project type's default workflow set is seeded in the same transaction.
func (s *service) CreateProject(ctx context.Context, actorID string, req CreateProjectRequest) (*models.Project, error) {
	if err := validateCreateProject(actorID, req); err != nil {
		return nil, err
	}

	workspace, err := s.workspaceRepo.GetWorkspaceByShortName(ctx, req.WorkspaceShortName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to resolve workspace: %w", err)
	}

	project := &models.Project{
		ID:            uuid.NewString(),
		Name:          req.Name,
		ProjectType:   req.ProjectType,
		ProjectLeadID: actorID,
		WorkspaceID:   workspace.ID,
	}

	titles := models.DefaultWorkflows(req.ProjectType)
	workflows := make([]*models.Workflow, 0, len(titles))
	for i, title := range titles {
		workflows = append(workflows, &models.Workflow{
			ID:        uuid.NewString(),
			Title:     title,
			Index:     i,
			ProjectID: project.ID,
		})
	}

	if err := s.repo.CreateProject(ctx, project, workflows); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	created, err := s.repo.GetProjectByID(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created project: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:        events.EventProjectChanged,
		ProjectID:   created.ID,
		WorkspaceID: created.WorkspaceID,
	})
	return created, nil
}

// UpdateProject updates a project's name, default assignee, and lead.
// The caller must belong to the project (member or lead).
func (s *service) UpdateProject(ctx context.Context, actorID string, req UpdateProjectRequest) (*models.Project, error) {
	if req.ID == "" {
		return nil, ErrInvalidProjectID
	}
	if actorID == "" {
		return nil, ErrInvalidUserID
	}
	if req.Name == "" {
		return nil, ErrEmptyName
	}
	if len(req.Name) > models.MaxProjectNameLength {
		return nil, ErrNameTooLong
	}
	if req.ProjectLeadID == "" {
		return nil, ErrInvalidUserID
	}

	existing, err := s.repo.GetProjectByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if existing.ProjectLeadID != actorID {
		isMember, err := s.repo.IsProjectMember(ctx, req.ID, actorID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotProjectMember
		}
	}

	if err := s.repo.UpdateProject(ctx, req.ID, req.Name, req.DefaultAssigneeID, req.ProjectLeadID); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	updated, err := s.repo.GetProjectByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	events.Publish(s.publisher, events.Event{
		Type:        events.EventProjectChanged,
		ProjectID:   updated.ID,
		WorkspaceID: updated.WorkspaceID,
	})
	return updated, nil
}

// DeleteProject deletes a project. Only the project lead may do this;
// any other caller gets ErrUnauthorized. Every other failure, including
// the lookup itself, is reported as ErrBadRequest with the original
// cause discarded.
func (s *service) DeleteProject(ctx context.Context, actorID, id string) (*models.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: could not delete project", ErrBadRequest)
	}

	if project.ProjectLeadID != actorID {
		return nil, ErrUnauthorized
	}

	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: could not delete project", ErrBadRequest)
	}

	events.Publish(s.publisher, events.Event{
		Type:        events.EventProjectChanged,
		ProjectID:   project.ID,
		WorkspaceID: project.WorkspaceID,
	})
	return project, nil
}

// AssignUserToProject adds a user to a project's member set. The user
// must already belong to the project's workspace. Re-adding an existing
// member is a no-op.
func (s *service) AssignUserToProject(ctx context.Context, req AssignUserRequest) error {
	if req.ProjectID == "" {
		return ErrInvalidProjectID
	}
	if req.UserID == "" {
		return ErrInvalidUserID
	}

	project, err := s.repo.GetProjectByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}

	// Membership is always checked against the project's own workspace; a
	// caller-supplied workspace ID must agree with it or the request is
	// rejected.
	if req.WorkspaceID != "" && req.WorkspaceID != project.WorkspaceID {
		return ErrWorkspaceMismatch
	}

	isMember, err := s.workspaceRepo.IsWorkspaceMember(ctx, project.WorkspaceID, req.UserID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrNotWorkspaceMember
	}

	if err := s.repo.AddProjectMember(ctx, req.ProjectID, req.UserID); err != nil {
		return fmt.Errorf("failed to assign user to project: %w", err)
	}

	events.Publish(s.publisher, events.Event{
		Type:        events.EventProjectChanged,
		ProjectID:   project.ID,
		WorkspaceID: project.WorkspaceID,
	})
	return nil
}

// validateCreateProject validates a CreateProjectRequest
func validateCreateProject(actorID string, req CreateProjectRequest) error {
	if actorID == "" {
		return ErrInvalidUserID
	}
	if req.Name == "" {
		return ErrEmptyName
	}
	if len(req.Name) > models.MaxProjectNameLength {
		return ErrNameTooLong
	}
	if !req.ProjectType.Valid() {
		return ErrInvalidProjectType
	}
	if req.WorkspaceShortName == "" {
		return ErrEmptyShortName
	}
	return nil
}
