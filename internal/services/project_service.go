// Package services holds the application services between the HTTP layer
// and the repositories: project and task CRUD with access control,
// authentication sessions, and AI status reports.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskan/internal/models"
	"taskan/internal/store"
)

// ProjectService owns the project lifecycle and tree assembly. Access
// rules: the owner has full rights; members may read and update but never
// delete or manage membership.
type ProjectService struct {
	projects store.ProjectRepository
	periods  store.PeriodRepository
	tasks    store.TaskRepository
	users    store.UserRepository
	logger   *zap.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(
	projects store.ProjectRepository,
	periods store.PeriodRepository,
	tasks store.TaskRepository,
	users store.UserRepository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		periods:  periods,
		tasks:    tasks,
		users:    users,
		logger:   logger,
	}
}

// ListProjectsForMember returns the shallow project list for a user.
func (s *ProjectService) ListProjectsForMember(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projects.FindByMember(ctx, userID)
}

// GetProjectWithTree fetches a project deep: periods ordered by position,
// tasks ordered by position within each period, assignees hydrated into
// full users. The tree is built fresh on every call; mutations elsewhere
// only become visible through a re-fetch.
func (s *ProjectService) GetProjectWithTree(ctx context.Context, userID, projectID string) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(userID) {
		return nil, models.ErrForbidden
	}

	periods, err := s.periods.FindByParent(ctx, projectID)
	if err != nil {
		return nil, err
	}

	assigneeIDs := make(map[string]struct{})
	for i := range periods {
		tasks, err := s.tasks.FindByParent(ctx, periods[i].ID)
		if err != nil {
			return nil, err
		}
		periods[i].Tasks = tasks
		for _, t := range tasks {
			for _, a := range t.Assignees {
				assigneeIDs[a.ID] = struct{}{}
			}
		}
	}

	if len(assigneeIDs) > 0 {
		ids := make([]string, 0, len(assigneeIDs))
		for id := range assigneeIDs {
			ids = append(ids, id)
		}
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]models.User, len(users))
		for _, u := range users {
			byID[u.ID] = u
		}
		for i := range periods {
			for j := range periods[i].Tasks {
				for k, stub := range periods[i].Tasks[j].Assignees {
					if full, ok := byID[stub.ID]; ok {
						periods[i].Tasks[j].Assignees[k] = full
					}
				}
			}
		}
	}

	project.Periods = periods
	return project, nil
}

// CreateProject stores a new project owned by ownerID. The owner becomes
// a member automatically.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name is required", models.ErrValidation)
	}

	project := &models.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		Members:     []string{ownerID},
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	s.logger.Info("project created",
		zap.String("project_id", project.ID),
		zap.String("owner_id", ownerID))
	return project, nil
}

// UpdateProject rewrites name and description. Any member may update.
func (s *ProjectService) UpdateProject(ctx context.Context, userID, projectID, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: project name is required", models.ErrValidation)
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasMember(userID) {
		return nil, models.ErrForbidden
	}
	return s.projects.Update(ctx, projectID, name, description)
}

// DeleteProject removes a project and everything under it. Owner only.
func (s *ProjectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return models.ErrForbidden
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("project deleted", zap.String("project_id", projectID))
	return nil
}

// UpdateMembers replaces the member list. Owner only; the repository
// keeps the owner in the list regardless of the input.
func (s *ProjectService) UpdateMembers(ctx context.Context, userID, projectID string, members []string) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, models.ErrForbidden
	}
	return s.projects.UpdateMembers(ctx, projectID, members)
}
