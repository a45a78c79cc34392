package models

import "time"

// Project is the root of the domain tree. The owner is always implicitly a
// member; repositories enforce that on create and member updates.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Members     []string  `json:"members"`
	Periods     []Period  `json:"periods"`
	CreatedAt   time.Time `json:"created_at"`
}

// AllTasks flattens the project tree into a single task slice, preserving
// period order and per-period task order.
func (p Project) AllTasks() []Task {
	var tasks []Task
	for _, period := range p.Periods {
		tasks = append(tasks, period.Tasks...)
	}
	return tasks
}

// HasMember reports whether userID is the owner or a listed member.
func (p Project) HasMember(userID string) bool {
	if userID == p.OwnerID {
		return true
	}
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}
