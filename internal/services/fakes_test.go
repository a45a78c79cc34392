package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"taskan/internal/models"
)

// In-memory repository fakes. They mirror the repository contracts
// closely enough for service tests: owner retention on member updates,
// ErrNotFound for missing ids, position-ordered child listings left to
// the insertion order the tests control.

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]models.Project)}
}

func (r *fakeProjectRepo) FindByMember(_ context.Context, userID string) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Project
	for _, p := range r.projects {
		if p.HasMember(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := p
	return &copied, nil
}

func (r *fakeProjectRepo) Create(_ context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !contains(p.Members, p.OwnerID) {
		p.Members = append([]string{p.OwnerID}, p.Members...)
	}
	r.projects[p.ID] = *p
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, id, name, description string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	p.Name = name
	p.Description = description
	r.projects[id] = p
	return &p, nil
}

func (r *fakeProjectRepo) UpdateMembers(_ context.Context, id string, members []string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !contains(members, p.OwnerID) {
		members = append([]string{p.OwnerID}, members...)
	}
	p.Members = members
	r.projects[id] = p
	return &p, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

type fakePeriodRepo struct {
	mu      sync.Mutex
	periods map[string]models.Period
	order   []string
}

func newFakePeriodRepo() *fakePeriodRepo {
	return &fakePeriodRepo{periods: make(map[string]models.Period)}
}

func (r *fakePeriodRepo) FindByParent(_ context.Context, projectID string) ([]models.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Period
	for _, id := range r.order {
		p := r.periods[id]
		if p.ProjectID == projectID {
			p.Tasks = nil
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePeriodRepo) FindByID(_ context.Context, id string) (*models.Period, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (r *fakePeriodRepo) Create(_ context.Context, p *models.Period) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.periods[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakePeriodRepo) Update(_ context.Context, id, title string, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.periods[id]
	if !ok {
		return models.ErrNotFound
	}
	p.Title = title
	p.Position = position
	r.periods[id] = p
	return nil
}

func (r *fakePeriodRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.periods, id)
	return nil
}

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[string]models.Task
	order []string

	// fetchGate, when set, is received from once per FindByParent call,
	// letting tests hold a fetch in flight.
	fetchGate chan struct{}
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[string]models.Task)}
}

func (r *fakeTaskRepo) FindByParent(_ context.Context, periodID string) ([]models.Task, error) {
	if r.fetchGate != nil {
		<-r.fetchGate
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Task
	for _, id := range r.order {
		t := r.tasks[id]
		if t.PeriodID == periodID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTaskRepo) Create(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = *t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *fakeTaskRepo) Update(_ context.Context, t *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return models.ErrNotFound
	}
	r.tasks[t.ID] = *t
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]models.User
	hashes map[string]string // email -> hash
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User), hashes: make(map[string]string)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.hashes[u.Email]; ok {
		return models.ErrValidation
	}
	r.users[u.ID] = *u
	r.hashes[u.Email] = passwordHash
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hash, ok := r.hashes[email]
	if !ok {
		return nil, "", models.ErrNotFound
	}
	for _, u := range r.users {
		if u.Email == email {
			copied := u
			return &copied, hash, nil
		}
	}
	return nil, "", models.ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func testLogger() *zap.Logger { return zap.NewNop() }
