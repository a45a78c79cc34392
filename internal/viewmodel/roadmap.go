package viewmodel

import (
	"sort"

	"taskan/internal/models"
)

// Column is one kanban column of the roadmap view: a period with its tasks
// in display order.
type Column struct {
	PeriodID  string        `json:"period_id"`
	Title     string        `json:"title"`
	TaskCount int           `json:"task_count"`
	Tasks     []models.Task `json:"tasks"`
}

// Roadmap orders periods ascending by position, and each period's tasks
// ascending by position. Both sorts are stable: equal positions keep their
// input order. Nothing is filtered; undated and completed tasks show like
// any other. The input project is not mutated.
func Roadmap(p models.Project) []Column {
	periods := make([]models.Period, len(p.Periods))
	copy(periods, p.Periods)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Position < periods[j].Position
	})

	columns := make([]Column, 0, len(periods))
	for _, period := range periods {
		tasks := make([]models.Task, len(period.Tasks))
		copy(tasks, period.Tasks)
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].Position < tasks[j].Position
		})
		columns = append(columns, Column{
			PeriodID:  period.ID,
			Title:     period.Title,
			TaskCount: len(tasks),
			Tasks:     tasks,
		})
	}
	return columns
}
