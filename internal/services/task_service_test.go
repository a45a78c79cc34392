package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskan/internal/models"
)

func newTaskService(t *testing.T) (*TaskService, *fakeProjectRepo, *fakePeriodRepo, *fakeTaskRepo) {
	t.Helper()
	projects := newFakeProjectRepo()
	periods := newFakePeriodRepo()
	tasks := newFakeTaskRepo()
	svc := NewTaskService(projects, periods, tasks, testLogger())
	return svc, projects, periods, tasks
}

func seedProject(t *testing.T, projects *fakeProjectRepo, periods *fakePeriodRepo) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, &models.Project{
		ID: "p1", Name: "Site", OwnerID: "owner-1", Members: []string{"owner-1", "member-1"},
	}))
	require.NoError(t, periods.Create(ctx, &models.Period{ID: "per1", Title: "Sprint 1", ProjectID: "p1"}))
}

func TestCreatePeriod(t *testing.T) {
	svc, projects, periods, _ := newTaskService(t)
	seedProject(t, projects, periods)

	period, err := svc.CreatePeriod(context.Background(), "member-1", "p1", "Sprint 2", 1)
	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", period.Title)
	assert.Equal(t, "p1", period.ProjectID)
}

func TestCreatePeriodValidation(t *testing.T) {
	svc, projects, periods, _ := newTaskService(t)
	seedProject(t, projects, periods)

	_, err := svc.CreatePeriod(context.Background(), "member-1", "p1", "  ", 0)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateTaskDefaultsToPending(t *testing.T) {
	svc, projects, periods, _ := newTaskService(t)
	seedProject(t, projects, periods)

	task, err := svc.CreateTask(context.Background(), "member-1", "per1", TaskInput{Title: "Wireframes"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, "per1", task.PeriodID)
}

func TestCreateTaskValidation(t *testing.T) {
	svc, projects, periods, _ := newTaskService(t)
	seedProject(t, projects, periods)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, "member-1", "per1", TaskInput{Title: ""})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateTask(ctx, "member-1", "per1", TaskInput{Title: "x", Status: "archived"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCreateTaskRejectsNonMembers(t *testing.T) {
	svc, projects, periods, _ := newTaskService(t)
	seedProject(t, projects, periods)

	_, err := svc.CreateTask(context.Background(), "stranger", "per1", TaskInput{Title: "Sneaky"})
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestSetStatus(t *testing.T) {
	svc, projects, periods, tasks := newTaskService(t)
	seedProject(t, projects, periods)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "member-1", "per1", TaskInput{Title: "Ship it"})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, "member-1", task.ID, models.StatusCompleted))
	stored, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)

	assert.ErrorIs(t, svc.SetStatus(ctx, "member-1", task.ID, "paused"), models.ErrValidation)
}

func TestUpdateTaskRewritesFields(t *testing.T) {
	svc, projects, periods, tasks := newTaskService(t)
	seedProject(t, projects, periods)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "member-1", "per1", TaskInput{Title: "Draft"})
	require.NoError(t, err)

	due := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	err = svc.UpdateTask(ctx, "member-1", task.ID, TaskInput{
		Title:       "Draft v2",
		Description: "second pass",
		Status:      models.StatusInProgress,
		Position:    3,
		DueDate:     &due,
		AssigneeIDs: []string{"u1", "u2"},
	})
	require.NoError(t, err)

	stored, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft v2", stored.Title)
	assert.Equal(t, models.StatusInProgress, stored.Status)
	assert.Equal(t, 3, stored.Position)
	require.NotNil(t, stored.DueDate)
	assert.True(t, stored.DueDate.Equal(due))
	assert.Len(t, stored.Assignees, 2)
}

func TestSetAttachments(t *testing.T) {
	svc, projects, periods, tasks := newTaskService(t)
	seedProject(t, projects, periods)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "member-1", "per1", TaskInput{Title: "Spec"})
	require.NoError(t, err)

	attachments := []models.Attachment{
		{ID: "a1", Name: "spec.pdf", URL: "https://drive.example/spec", Source: models.AttachmentGoogleDrive, MimeType: "application/pdf", SizeBytes: 2048},
	}
	require.NoError(t, svc.SetAttachments(ctx, "member-1", task.ID, attachments))

	stored, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, attachments, stored.Attachments)
}

func TestDeleteTask(t *testing.T) {
	svc, projects, periods, tasks := newTaskService(t)
	seedProject(t, projects, periods)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "member-1", "per1", TaskInput{Title: "Temp"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, "member-1", task.ID))
	_, err = tasks.FindByID(ctx, task.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestTaskOpsOnMissingIDs(t *testing.T) {
	svc, projects, periods, _ := newTaskService(t)
	seedProject(t, projects, periods)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetStatus(ctx, "member-1", "missing", models.StatusCompleted), models.ErrNotFound)
	assert.ErrorIs(t, svc.DeletePeriod(ctx, "member-1", "missing"), models.ErrNotFound)
	_, err := svc.CreateTask(ctx, "member-1", "missing", TaskInput{Title: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
