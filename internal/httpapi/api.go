// Package httpapi exposes the dashboard over HTTP: auth, project and task
// CRUD, the derived roadmap/timeline/statistics views, AI reports and the
// preference store. Handlers decode the request, delegate to a service and
// encode the result; every service error maps to a status code from the
// shared taxonomy and the process never dies on a request.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"taskan/internal/models"
	"taskan/internal/prefs"
	"taskan/internal/services"
)

// AuthService is the identity surface the API consumes.
type AuthService interface {
	CreateAccount(ctx context.Context, email, password, name string) (*models.User, error)
	CreateSession(ctx context.Context, email, password string) (string, *models.User, error)
	CurrentSession(ctx context.Context, token string) (*models.User, error)
	EndSession(token string)
	BeginFederatedLogin(provider string) (string, error)
}

// ProjectService is the project surface the API consumes.
type ProjectService interface {
	ListProjectsForMember(ctx context.Context, userID string) ([]models.Project, error)
	GetProjectWithTree(ctx context.Context, userID, projectID string) (*models.Project, error)
	CreateProject(ctx context.Context, ownerID, name, description string) (*models.Project, error)
	UpdateProject(ctx context.Context, userID, projectID, name, description string) (*models.Project, error)
	DeleteProject(ctx context.Context, userID, projectID string) error
	UpdateMembers(ctx context.Context, userID, projectID string, members []string) (*models.Project, error)
}

// TaskService is the period/task surface the API consumes.
type TaskService interface {
	CreatePeriod(ctx context.Context, userID, projectID, title string, position int) (*models.Period, error)
	UpdatePeriod(ctx context.Context, userID, periodID, title string, position int) error
	DeletePeriod(ctx context.Context, userID, periodID string) error
	CreateTask(ctx context.Context, userID, periodID string, in services.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, in services.TaskInput) error
	DeleteTask(ctx context.Context, userID, taskID string) error
	SetStatus(ctx context.Context, userID, taskID string, status models.TaskStatus) error
	SetAssignees(ctx context.Context, userID, taskID string, assigneeIDs []string) error
	SetAttachments(ctx context.Context, userID, taskID string, attachments []models.Attachment) error
}

// ReportService is the report and assistant surface the API consumes.
type ReportService interface {
	GenerateProjectReport(ctx context.Context, project models.Project) (string, error)
	GeneratePortfolioReport(ctx context.Context, projects []models.Project) (string, error)
	GenerateAssistantReply(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// API bundles the services behind the HTTP handlers.
type API struct {
	auth     AuthService
	projects ProjectService
	tasks    TaskService
	reports  ReportService
	prefs    *prefs.Store
	logger   *zap.Logger
	now      func() time.Time
}

// New creates an API. now defaults to time.Now and exists so tests can
// pin the clock used for overdue detection and timeline windows.
func New(
	auth AuthService,
	projects ProjectService,
	tasks TaskService,
	reports ReportService,
	prefStore *prefs.Store,
	logger *zap.Logger,
) *API {
	return &API{
		auth:     auth,
		projects: projects,
		tasks:    tasks,
		reports:  reports,
		prefs:    prefStore,
		logger:   logger,
		now:      time.Now,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			a.logger.Error("encode response", zap.Error(err))
		}
	}
}

// respondError converts a service error into a status code and a JSON
// body. The error text is the wrapped message, which always starts with
// the taxonomy sentinel.
func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrServiceUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, models.ErrNetwork):
		status = http.StatusBadGateway
	}

	a.logger.Warn("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err))
	a.writeJSON(w, status, errorBody{Error: err.Error()})
}

func (a *API) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request payload"})
		return false
	}
	return true
}
