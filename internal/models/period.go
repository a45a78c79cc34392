package models

import "time"

// Period is a time-boxed grouping of tasks within a project, e.g. a sprint
// or phase. Position orders periods for display; values need not be
// contiguous, ties keep input order.
type Period struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	ProjectID string    `json:"project_id"`
	Tasks     []Task    `json:"tasks"`
	CreatedAt time.Time `json:"created_at"`
}
