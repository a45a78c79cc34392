package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskan/internal/models"
)

var testNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time { return &t }

func TestProgressStatusCounts(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", Status: models.StatusPending},
		{ID: "t2", Status: models.StatusInProgress},
		{ID: "t3", Status: models.StatusCompleted},
		{ID: "t4", Status: models.StatusCompleted},
	}

	stats := Progress(tasks, testNow)

	assert.Equal(t, 4, stats.TotalTasks)
	assert.Equal(t, 1, stats.TasksByStatus[models.StatusPending])
	assert.Equal(t, 1, stats.TasksByStatus[models.StatusInProgress])
	assert.Equal(t, 2, stats.TasksByStatus[models.StatusCompleted])
	assert.Equal(t, 50, stats.CompletionRate)
}

func TestProgressEmptyTaskSet(t *testing.T) {
	stats := Progress(nil, testNow)

	assert.Equal(t, 0, stats.TotalTasks)
	assert.Equal(t, 0, stats.CompletionRate)
	assert.Equal(t, 0, stats.OverdueCount)
	// Absent statuses report zero instead of being omitted.
	for _, s := range models.Statuses() {
		count, ok := stats.TasksByStatus[s]
		assert.True(t, ok, "status %s missing from map", s)
		assert.Equal(t, 0, count)
	}
}

func TestProgressCompletionRateBounds(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
	}{
		{"none done", 0, 7},
		{"all done", 5, 5},
		{"one of three", 1, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var tasks []models.Task
			for i := 0; i < tc.total; i++ {
				status := models.StatusPending
				if i < tc.completed {
					status = models.StatusCompleted
				}
				tasks = append(tasks, models.Task{Status: status})
			}
			stats := Progress(tasks, testNow)
			assert.GreaterOrEqual(t, stats.CompletionRate, 0)
			assert.LessOrEqual(t, stats.CompletionRate, 100)
		})
	}
}

func TestProgressOverdue(t *testing.T) {
	past := datePtr(testNow.Add(-48 * time.Hour))
	future := datePtr(testNow.Add(48 * time.Hour))

	tasks := []models.Task{
		{ID: "late", Status: models.StatusPending, DueDate: past},
		{ID: "late-but-done", Status: models.StatusCompleted, DueDate: past},
		{ID: "upcoming", Status: models.StatusInProgress, DueDate: future},
		{ID: "undated", Status: models.StatusPending},
	}

	stats := Progress(tasks, testNow)
	assert.Equal(t, 1, stats.OverdueCount)

	// Completing the late task removes it from the overdue count without
	// changing its due date.
	tasks[0].Status = models.StatusCompleted
	stats = Progress(tasks, testNow)
	assert.Equal(t, 0, stats.OverdueCount)
}

func TestProgressOverdueBoundaryIsStrict(t *testing.T) {
	tasks := []models.Task{
		{Status: models.StatusPending, DueDate: datePtr(testNow)},
	}
	stats := Progress(tasks, testNow)
	assert.Equal(t, 0, stats.OverdueCount, "due exactly now is not overdue")
}

func TestProgressAssigneeWorkload(t *testing.T) {
	alice := models.User{ID: "u1", Name: "Alice"}
	bob := models.User{ID: "u2", Name: "Bob"}
	carol := models.User{ID: "u3", Name: "Carol"}

	tasks := []models.Task{
		{ID: "t1", Status: models.StatusPending, Assignees: []models.User{alice, bob}},
		{ID: "t2", Status: models.StatusPending, Assignees: []models.User{bob}},
		{ID: "t3", Status: models.StatusPending, Assignees: []models.User{carol}},
		{ID: "t4", Status: models.StatusPending},
	}

	stats := Progress(tasks, testNow)
	require.Len(t, stats.TasksPerAssignee, 3)

	// Sum of counters equals the number of (task, assignee) pairs, not the
	// task count.
	total := 0
	for _, load := range stats.TasksPerAssignee {
		total += load.TaskCount
	}
	assert.Equal(t, 4, total)

	assert.Equal(t, "u2", stats.TasksPerAssignee[0].User.ID)
	assert.Equal(t, 2, stats.TasksPerAssignee[0].TaskCount)
	// Alice and Carol tie on one task each; first-seen order wins.
	assert.Equal(t, "u1", stats.TasksPerAssignee[1].User.ID)
	assert.Equal(t, "u3", stats.TasksPerAssignee[2].User.ID)
}

func TestPortfolio(t *testing.T) {
	projects := []models.Project{
		{
			ID: "p1",
			Periods: []models.Period{
				{Tasks: []models.Task{
					{Status: models.StatusCompleted},
					{Status: models.StatusPending},
				}},
			},
		},
		{
			ID: "p2",
			Periods: []models.Period{
				{Tasks: []models.Task{{Status: models.StatusCompleted}}},
			},
		},
	}

	stats := Portfolio(projects, testNow)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 67, stats.CompletionRate)
}
