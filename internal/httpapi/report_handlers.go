package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type reportResponse struct {
	Report string `json:"report"`
}

type assistantRequest struct {
	Prompt            string `json:"prompt"`
	SystemInstruction string `json:"systemInstruction"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
}

// ProjectReport handles POST /projects/{projectID}/report: an AI status
// report generated from the project's current tree.
func (a *API) ProjectReport(w http.ResponseWriter, r *http.Request) {
	projectID := mux.Vars(r)["projectID"]
	project, err := a.projects.GetProjectWithTree(r.Context(), currentUser(r).ID, projectID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	report, err := a.reports.GenerateProjectReport(r.Context(), *project)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, reportResponse{Report: report})
}

// PortfolioReport handles POST /reports/portfolio: a summary report over
// every project the user belongs to.
func (a *API) PortfolioReport(w http.ResponseWriter, r *http.Request) {
	trees, err := a.memberTrees(r, currentUser(r).ID)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	report, err := a.reports.GeneratePortfolioReport(r.Context(), trees)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, reportResponse{Report: report})
}

// Assistant handles POST /assistant: a free-form prompt forwarded to the
// generator, optionally steered by a system instruction.
func (a *API) Assistant(w http.ResponseWriter, r *http.Request) {
	var req assistantRequest
	if !a.decode(w, r, &req) {
		return
	}
	reply, err := a.reports.GenerateAssistantReply(r.Context(), req.Prompt, req.SystemInstruction)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, assistantResponse{Reply: reply})
}
