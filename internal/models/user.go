package models

// User identifies an account. Used as task assignee and project member;
// never mutated by the view-model layer.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
