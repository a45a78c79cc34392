package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type membersRequest struct {
	Members []string `json:"members"`
}

// ListProjects handles GET /projects: the shallow project list for the
// authenticated user.
func (a *API) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projects.ListProjectsForMember(r.Context(), currentUser(r).ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, projects)
}

// CreateProject handles POST /projects.
func (a *API) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !a.decode(w, r, &req) {
		return
	}
	project, err := a.projects.CreateProject(r.Context(), currentUser(r).ID, req.Name, req.Description)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, project)
}

// GetProject handles GET /projects/{projectID}: the deep tree with
// periods, tasks and hydrated assignees.
func (a *API) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	project, err := a.projects.GetProjectWithTree(r.Context(), currentUser(r).ID, projectID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, project)
}

// UpdateProject handles PUT /projects/{projectID}.
func (a *API) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	var req projectRequest
	if !a.decode(w, r, &req) {
		return
	}
	project, err := a.projects.UpdateProject(r.Context(), currentUser(r).ID, projectID, req.Name, req.Description)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, project)
}

// DeleteProject handles DELETE /projects/{projectID}. Owner only.
func (a *API) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	if err := a.projects.DeleteProject(r.Context(), currentUser(r).ID, projectID); err != nil {
		a.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateMembers handles PUT /projects/{projectID}/members. Owner only;
// the owner stays a member no matter what the payload says.
func (a *API) UpdateMembers(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	var req membersRequest
	if !a.decode(w, r, &req) {
		return
	}
	project, err := a.projects.UpdateMembers(r.Context(), currentUser(r).ID, projectID, req.Members)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, project)
}
