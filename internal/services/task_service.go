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

// TaskService owns period and task CRUD. Mutations are last-write-wins;
// the dashboard re-fetches the project tree after every successful
// mutation instead of patching in place.
type TaskService struct {
	projects store.ProjectRepository
	periods  store.PeriodRepository
	tasks    store.TaskRepository
	logger   *zap.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	projects store.ProjectRepository,
	periods store.PeriodRepository,
	tasks store.TaskRepository,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{projects: projects, periods: periods, tasks: tasks, logger: logger}
}

// memberOfProject verifies that userID may touch projectID.
func (s *TaskService) memberOfProject(ctx context.Context, userID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.HasMember(userID) {
		return models.ErrForbidden
	}
	return nil
}

// memberOfPeriod resolves a period to its project and checks membership.
func (s *TaskService) memberOfPeriod(ctx context.Context, userID, periodID string) (*models.Period, error) {
	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if err := s.memberOfProject(ctx, userID, period.ProjectID); err != nil {
		return nil, err
	}
	return period, nil
}

// memberOfTask resolves a task through its period to the owning project.
func (s *TaskService) memberOfTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberOfPeriod(ctx, userID, task.PeriodID); err != nil {
		return nil, err
	}
	return task, nil
}

// CreatePeriod adds a period to a project.
func (s *TaskService) CreatePeriod(ctx context.Context, userID, projectID, title string, position int) (*models.Period, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: period title is required", models.ErrValidation)
	}
	if err := s.memberOfProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	period := &models.Period{
		ID:        uuid.New().String(),
		Title:     title,
		Position:  position,
		ProjectID: projectID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.periods.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

// UpdatePeriod rewrites a period's title and position.
func (s *TaskService) UpdatePeriod(ctx context.Context, userID, periodID, title string, position int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: period title is required", models.ErrValidation)
	}
	if _, err := s.memberOfPeriod(ctx, userID, periodID); err != nil {
		return err
	}
	return s.periods.Update(ctx, periodID, title, position)
}

// DeletePeriod removes a period and its tasks.
func (s *TaskService) DeletePeriod(ctx context.Context, userID, periodID string) error {
	if _, err := s.memberOfPeriod(ctx, userID, periodID); err != nil {
		return err
	}
	if err := s.periods.Delete(ctx, periodID); err != nil {
		return err
	}
	s.logger.Info("period deleted", zap.String("period_id", periodID))
	return nil
}

// TaskInput carries the caller-settable task fields.
type TaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Position    int
	DueDate     *time.Time
	AssigneeIDs []string
	Attachments []models.Attachment
}

func (in TaskInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: task title is required", models.ErrValidation)
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", models.ErrValidation, in.Status)
	}
	return nil
}

func assigneeStubs(ids []string) []models.User {
	stubs := make([]models.User, 0, len(ids))
	for _, id := range ids {
		stubs = append(stubs, models.User{ID: id})
	}
	return stubs
}

// CreateTask adds a task to a period. Status defaults to pending.
func (s *TaskService) CreateTask(ctx context.Context, userID, periodID string, in TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.memberOfPeriod(ctx, userID, periodID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.StatusPending
	}
	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Position:    in.Position,
		PeriodID:    periodID,
		DueDate:     in.DueDate,
		Assignees:   assigneeStubs(in.AssigneeIDs),
		Attachments: in.Attachments,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask rewrites every mutable field of a task.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID string, in TaskInput) error {
	if err := in.validate(); err != nil {
		return err
	}
	task, err := s.memberOfTask(ctx, userID, taskID)
	if err != nil {
		return err
	}

	task.Title = in.Title
	task.Description = in.Description
	if in.Status != "" {
		task.Status = in.Status
	}
	task.Position = in.Position
	task.DueDate = in.DueDate
	task.Assignees = assigneeStubs(in.AssigneeIDs)
	task.Attachments = in.Attachments
	return s.tasks.Update(ctx, task)
}

// SetStatus changes only the lifecycle state of a task.
func (s *TaskService) SetStatus(ctx context.Context, userID, taskID string, status models.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", models.ErrValidation, status)
	}
	task, err := s.memberOfTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	task.Status = status
	return s.tasks.Update(ctx, task)
}

// SetAssignees replaces a task's assignee list.
func (s *TaskService) SetAssignees(ctx context.Context, userID, taskID string, assigneeIDs []string) error {
	task, err := s.memberOfTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	task.Assignees = assigneeStubs(assigneeIDs)
	return s.tasks.Update(ctx, task)
}

// SetAttachments replaces a task's attachment metadata. The records come
// from an external file picker and are stored opaquely.
func (s *TaskService) SetAttachments(ctx context.Context, userID, taskID string, attachments []models.Attachment) error {
	task, err := s.memberOfTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	task.Attachments = attachments
	return s.tasks.Update(ctx, task)
}

// DeleteTask removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if _, err := s.memberOfTask(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	s.logger.Info("task deleted", zap.String("task_id", taskID))
	return nil
}
