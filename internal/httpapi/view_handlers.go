package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"taskan/internal/models"
	"taskan/internal/viewmodel"
)

// ProjectRoadmap handles GET /projects/{projectID}/roadmap.
func (a *API) ProjectRoadmap(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	project, err := a.projects.GetProjectWithTree(r.Context(), currentUser(r).ID, projectID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, viewmodel.Roadmap(*project))
}

// ProjectTimeline handles GET /projects/{projectID}/timeline.
func (a *API) ProjectTimeline(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	project, err := a.projects.GetProjectWithTree(r.Context(), currentUser(r).ID, projectID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, viewmodel.Timeline(*project, a.now()))
}

// ProjectStats handles GET /projects/{projectID}/stats.
func (a *API) ProjectStats(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	project, err := a.projects.GetProjectWithTree(r.Context(), currentUser(r).ID, projectID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, viewmodel.Progress(project.AllTasks(), a.now()))
}

// PortfolioStats handles GET /stats: statistics across every project the
// user belongs to. The shallow member list lacks the task trees, so each
// project is fetched in full before aggregating.
func (a *API) PortfolioStats(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	trees, err := a.memberTrees(r, user.ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, viewmodel.Portfolio(trees, a.now()))
}

func (a *API) memberTrees(r *http.Request, userID string) ([]models.Project, error) {
	projects, err := a.projects.ListProjectsForMember(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	trees := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		tree, err := a.projects.GetProjectWithTree(r.Context(), userID, p.ID)
		if err != nil {
			return nil, err
		}
		trees = append(trees, *tree)
	}
	return trees, nil
}
