// Package viewmodel derives the roadmap, timeline and statistics views
// from an in-memory project tree. Every derivation is a pure function,
// recomputed in full on each call; the viewport controller is the only
// stateful piece and owns nothing but transient interaction state.
package viewmodel

import (
	"math"
	"sort"
	"time"

	"taskan/internal/models"
)

// AssigneeLoad is one row of the per-member workload table.
type AssigneeLoad struct {
	User      models.User `json:"user"`
	TaskCount int         `json:"task_count"`
}

// Stats summarizes a task collection for the statistics view.
type Stats struct {
	TotalTasks       int                       `json:"total_tasks"`
	TasksByStatus    map[models.TaskStatus]int `json:"tasks_by_status"`
	CompletionRate   int                       `json:"completion_rate"`
	OverdueCount     int                       `json:"overdue_count"`
	TasksPerAssignee []AssigneeLoad            `json:"tasks_per_assignee"`
}

// PortfolioStats extends Stats for the all-projects statistics page.
type PortfolioStats struct {
	Stats
	TotalProjects int `json:"total_projects"`
}

// Progress computes summary statistics over tasks. The clock is injected:
// a task is overdue iff its due date is set, strictly before now, and the
// task is not completed. Absent statuses report 0 rather than being
// omitted. Assignee workload counts every (task, assignee) pair, sorted
// descending by count with ties keeping first-seen order.
func Progress(tasks []models.Task, now time.Time) Stats {
	byStatus := make(map[models.TaskStatus]int, 3)
	for _, s := range models.Statuses() {
		byStatus[s] = 0
	}

	counts := make(map[string]int)
	seen := make(map[string]models.User)
	var order []string
	overdue := 0

	for _, t := range tasks {
		byStatus[t.Status]++
		if t.DueDate != nil && t.DueDate.Before(now) && t.Status != models.StatusCompleted {
			overdue++
		}
		for _, a := range t.Assignees {
			if _, ok := seen[a.ID]; !ok {
				seen[a.ID] = a
				order = append(order, a.ID)
			}
			counts[a.ID]++
		}
	}

	loads := make([]AssigneeLoad, 0, len(order))
	for _, id := range order {
		loads = append(loads, AssigneeLoad{User: seen[id], TaskCount: counts[id]})
	}
	sort.SliceStable(loads, func(i, j int) bool {
		return loads[i].TaskCount > loads[j].TaskCount
	})

	rate := 0
	if len(tasks) > 0 {
		rate = int(math.Round(float64(byStatus[models.StatusCompleted]) / float64(len(tasks)) * 100))
	}

	return Stats{
		TotalTasks:       len(tasks),
		TasksByStatus:    byStatus,
		CompletionRate:   rate,
		OverdueCount:     overdue,
		TasksPerAssignee: loads,
	}
}

// Portfolio computes statistics across every project a user can see.
func Portfolio(projects []models.Project, now time.Time) PortfolioStats {
	var tasks []models.Task
	for _, p := range projects {
		tasks = append(tasks, p.AllTasks()...)
	}
	return PortfolioStats{
		Stats:         Progress(tasks, now),
		TotalProjects: len(projects),
	}
}
