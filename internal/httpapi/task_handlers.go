package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"taskan/internal/models"
	"taskan/internal/services"
)

type periodRequest struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

type taskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Position    int                 `json:"position"`
	DueDate     *time.Time          `json:"dueDate"`
	AssigneeIDs []string            `json:"assigneeIds"`
	Attachments []models.Attachment `json:"attachments"`
}

func (req taskRequest) input() services.TaskInput {
	return services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Position:    req.Position,
		DueDate:     req.DueDate,
		AssigneeIDs: req.AssigneeIDs,
		Attachments: req.Attachments,
	}
}

type statusRequest struct {
	Status models.TaskStatus `json:"status"`
}

type assigneesRequest struct {
	AssigneeIDs []string `json:"assigneeIds"`
}

type attachmentsRequest struct {
	Attachments []models.Attachment `json:"attachments"`
}

// CreatePeriod handles POST /projects/{projectID}/periods.
func (a *API) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	var req periodRequest
	if !a.decode(w, r, &req) {
		return
	}
	period, err := a.tasks.CreatePeriod(r.Context(), currentUser(r).ID, projectID, req.Title, req.Position)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, period)
}

// UpdatePeriod handles PUT /periods/{periodID}.
func (a *API) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	periodID := mux.Vars(r)["periodID"]
	var req periodRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.tasks.UpdatePeriod(r.Context(), currentUser(r).ID, periodID, req.Title, req.Position); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePeriod handles DELETE /periods/{periodID}. Tasks under the
// period go with it.
func (a *API) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	periodID := mux.Vars(r)["periodID"]
	if err := a.tasks.DeletePeriod(r.Context(), currentUser(r).ID, periodID); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateTask handles POST /periods/{periodID}/tasks.
func (a *API) CreateTask(w http.ResponseWriter, r *http.Request) {
	periodID := mux.Vars(r)["periodID"]
	var req taskRequest
	if !a.decode(w, r, &req) {
		return
	}
	task, err := a.tasks.CreateTask(r.Context(), currentUser(r).ID, periodID, req.input())
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, task)
}

// UpdateTask handles PUT /tasks/{taskID}.
func (a *API) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	var req taskRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.tasks.UpdateTask(r.Context(), currentUser(r).ID, taskID, req.input()); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /tasks/{taskID}.
func (a *API) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	if err := a.tasks.DeleteTask(r.Context(), currentUser(r).ID, taskID); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetTaskStatus handles PUT /tasks/{taskID}/status.
func (a *API) SetTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	var req statusRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.tasks.SetStatus(r.Context(), currentUser(r).ID, taskID, req.Status); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetTaskAssignees handles PUT /tasks/{taskID}/assignees.
func (a *API) SetTaskAssignees(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	var req assigneesRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.tasks.SetAssignees(r.Context(), currentUser(r).ID, taskID, req.AssigneeIDs); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetTaskAttachments handles PUT /tasks/{taskID}/attachments.
func (a *API) SetTaskAttachments(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["taskID"]
	var req attachmentsRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.tasks.SetAttachments(r.Context(), currentUser(r).ID, taskID, req.Attachments); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
