package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskan/internal/models"
)

func newProjectService(t *testing.T) (*ProjectService, *fakeProjectRepo, *fakePeriodRepo, *fakeTaskRepo, *fakeUserRepo) {
	t.Helper()
	projects := newFakeProjectRepo()
	periods := newFakePeriodRepo()
	tasks := newFakeTaskRepo()
	users := newFakeUserRepo()
	svc := NewProjectService(projects, periods, tasks, users, testLogger())
	return svc, projects, periods, tasks, users
}

func TestCreateProjectOwnerBecomesMember(t *testing.T) {
	svc, _, _, _, _ := newProjectService(t)

	project, err := svc.CreateProject(context.Background(), "owner-1", "Website", "relaunch")
	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "owner-1", project.OwnerID)
	assert.Contains(t, project.Members, "owner-1")
}

func TestCreateProjectRequiresName(t *testing.T) {
	svc, _, _, _, _ := newProjectService(t)

	_, err := svc.CreateProject(context.Background(), "owner-1", "   ", "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestGetProjectWithTreeHydratesAssignees(t *testing.T) {
	svc, projects, periods, tasks, users := newProjectService(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &models.User{ID: "u1", Name: "Alice", Email: "alice@example.com"}, "x"))
	require.NoError(t, projects.Create(ctx, &models.Project{ID: "p1", Name: "Site", OwnerID: "owner-1"}))
	require.NoError(t, periods.Create(ctx, &models.Period{ID: "per1", Title: "Sprint 1", ProjectID: "p1"}))
	require.NoError(t, tasks.Create(ctx, &models.Task{
		ID: "t1", Title: "Design", Status: models.StatusPending, PeriodID: "per1",
		Assignees: []models.User{{ID: "u1"}},
	}))

	tree, err := svc.GetProjectWithTree(ctx, "owner-1", "p1")
	require.NoError(t, err)
	require.Len(t, tree.Periods, 1)
	require.Len(t, tree.Periods[0].Tasks, 1)
	assert.Equal(t, "Alice", tree.Periods[0].Tasks[0].Assignees[0].Name)
}

func TestGetProjectWithTreeRejectsNonMembers(t *testing.T) {
	svc, projects, _, _, _ := newProjectService(t)
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, &models.Project{ID: "p1", Name: "Site", OwnerID: "owner-1"}))

	_, err := svc.GetProjectWithTree(ctx, "stranger", "p1")
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestGetProjectWithTreeMissingProject(t *testing.T) {
	svc, _, _, _, _ := newProjectService(t)

	_, err := svc.GetProjectWithTree(context.Background(), "owner-1", "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteProjectOwnerOnly(t *testing.T) {
	svc, projects, _, _, _ := newProjectService(t)
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, &models.Project{
		ID: "p1", Name: "Site", OwnerID: "owner-1", Members: []string{"owner-1", "member-1"},
	}))

	err := svc.DeleteProject(ctx, "member-1", "p1")
	assert.ErrorIs(t, err, models.ErrForbidden)

	require.NoError(t, svc.DeleteProject(ctx, "owner-1", "p1"))
	_, err = projects.FindByID(ctx, "p1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateMembersRetainsOwner(t *testing.T) {
	svc, projects, _, _, _ := newProjectService(t)
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, &models.Project{ID: "p1", Name: "Site", OwnerID: "owner-1"}))

	updated, err := svc.UpdateMembers(ctx, "owner-1", "p1", []string{"member-1", "member-2"})
	require.NoError(t, err)
	assert.Contains(t, updated.Members, "owner-1")
	assert.Contains(t, updated.Members, "member-1")
	assert.Contains(t, updated.Members, "member-2")
}

func TestUpdateMembersOwnerOnly(t *testing.T) {
	svc, projects, _, _, _ := newProjectService(t)
	ctx := context.Background()
	require.NoError(t, projects.Create(ctx, &models.Project{
		ID: "p1", Name: "Site", OwnerID: "owner-1", Members: []string{"owner-1", "member-1"},
	}))

	_, err := svc.UpdateMembers(ctx, "member-1", "p1", []string{"member-1"})
	assert.ErrorIs(t, err, models.ErrForbidden)
}

// A fetch started before navigation may finish after a newer fetch has
// already replaced the rendered tree. The late result lands in its own
// value and leaves the newer one untouched; nothing cancels it.
func TestStaleFetchDoesNotDisturbNewerResult(t *testing.T) {
	svc, projects, periods, tasks, _ := newProjectService(t)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, &models.Project{ID: "p1", Name: "Old", OwnerID: "owner-1"}))
	require.NoError(t, periods.Create(ctx, &models.Period{ID: "per1", Title: "Sprint", ProjectID: "p1"}))
	require.NoError(t, projects.Create(ctx, &models.Project{ID: "p2", Name: "New", OwnerID: "owner-1"}))

	tasks.fetchGate = make(chan struct{}, 1)

	type fetchResult struct {
		tree *models.Project
		err  error
	}
	stale := make(chan fetchResult)
	go func() {
		tree, err := svc.GetProjectWithTree(ctx, "owner-1", "p1")
		stale <- fetchResult{tree: tree, err: err}
	}()

	// The user navigates on; the second fetch completes first.
	current, err := svc.GetProjectWithTree(ctx, "owner-1", "p2")
	require.NoError(t, err)
	assert.Equal(t, "New", current.Name)

	// Release the first fetch; its result arrives late and separately.
	tasks.fetchGate <- struct{}{}
	late := <-stale
	require.NoError(t, late.err)
	assert.Equal(t, "Old", late.tree.Name)
	assert.Equal(t, "New", current.Name)
}
