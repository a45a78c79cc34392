package store

import (
	"context"

	"taskan/internal/models"
)

// Repository contracts. The hierarchy is navigated generically: projects
// by member, children by parent id. Any storage backend satisfying these
// interfaces can serve as the data collaborator.

// ProjectRepository persists projects. All reads are shallow: periods are
// never populated here, the service layer assembles the tree.
type ProjectRepository interface {
	FindByMember(ctx context.Context, userID string) ([]models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, p *models.Project) error
	Update(ctx context.Context, id, name, description string) (*models.Project, error)
	UpdateMembers(ctx context.Context, id string, members []string) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

// PeriodRepository persists periods. FindByParent returns periods ordered
// by position; tasks are never populated here.
type PeriodRepository interface {
	FindByParent(ctx context.Context, projectID string) ([]models.Period, error)
	FindByID(ctx context.Context, id string) (*models.Period, error)
	Create(ctx context.Context, p *models.Period) error
	Update(ctx context.Context, id, title string, position int) error
	Delete(ctx context.Context, id string) error
}

// TaskRepository persists tasks. Returned tasks carry id-only assignee
// stubs; the service layer hydrates them into full users.
type TaskRepository interface {
	FindByParent(ctx context.Context, periodID string) ([]models.Task, error)
	FindByID(ctx context.Context, id string) (*models.Task, error)
	Create(ctx context.Context, t *models.Task) error
	Update(ctx context.Context, t *models.Task) error
	Delete(ctx context.Context, id string) error
}

// UserRepository persists accounts. The password hash never leaves this
// layer except through FindByEmail for credential checks.
type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) error
	FindByEmail(ctx context.Context, email string) (*models.User, string, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
}
