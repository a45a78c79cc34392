package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes sets up all routes for the application. Everything except
// registration, login and the federated-login redirect requires a session.
func (a *API) Routes(router *mux.Router) {
	router.HandleFunc("/auth/register", a.Register).Methods(http.MethodPost)
	router.HandleFunc("/auth/login", a.Login).Methods(http.MethodPost)
	router.HandleFunc("/auth/oauth/{provider}", a.FederatedLogin).Methods(http.MethodGet)
	router.HandleFunc("/auth/logout", a.requireAuth(a.Logout)).Methods(http.MethodPost)
	router.HandleFunc("/auth/me", a.requireAuth(a.Me)).Methods(http.MethodGet)

	router.HandleFunc("/projects", a.requireAuth(a.ListProjects)).Methods(http.MethodGet)
	router.HandleFunc("/projects", a.requireAuth(a.CreateProject)).Methods(http.MethodPost)
	router.HandleFunc("/projects/{projectID}", a.requireAuth(a.GetProject)).Methods(http.MethodGet)
	router.HandleFunc("/projects/{projectID}", a.requireAuth(a.UpdateProject)).Methods(http.MethodPut)
	router.HandleFunc("/projects/{projectID}", a.requireAuth(a.DeleteProject)).Methods(http.MethodDelete)
	router.HandleFunc("/projects/{projectID}/members", a.requireAuth(a.UpdateMembers)).Methods(http.MethodPut)

	router.HandleFunc("/projects/{projectID}/periods", a.requireAuth(a.CreatePeriod)).Methods(http.MethodPost)
	router.HandleFunc("/periods/{periodID}", a.requireAuth(a.UpdatePeriod)).Methods(http.MethodPut)
	router.HandleFunc("/periods/{periodID}", a.requireAuth(a.DeletePeriod)).Methods(http.MethodDelete)

	router.HandleFunc("/periods/{periodID}/tasks", a.requireAuth(a.CreateTask)).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{taskID}", a.requireAuth(a.UpdateTask)).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID}", a.requireAuth(a.DeleteTask)).Methods(http.MethodDelete)
	router.HandleFunc("/tasks/{taskID}/status", a.requireAuth(a.SetTaskStatus)).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID}/assignees", a.requireAuth(a.SetTaskAssignees)).Methods(http.MethodPut)
	router.HandleFunc("/tasks/{taskID}/attachments", a.requireAuth(a.SetTaskAttachments)).Methods(http.MethodPut)

	router.HandleFunc("/projects/{projectID}/roadmap", a.requireAuth(a.ProjectRoadmap)).Methods(http.MethodGet)
	router.HandleFunc("/projects/{projectID}/timeline", a.requireAuth(a.ProjectTimeline)).Methods(http.MethodGet)
	router.HandleFunc("/projects/{projectID}/stats", a.requireAuth(a.ProjectStats)).Methods(http.MethodGet)
	router.HandleFunc("/stats", a.requireAuth(a.PortfolioStats)).Methods(http.MethodGet)

	router.HandleFunc("/projects/{projectID}/report", a.requireAuth(a.ProjectReport)).Methods(http.MethodPost)
	router.HandleFunc("/reports/portfolio", a.requireAuth(a.PortfolioReport)).Methods(http.MethodPost)
	router.HandleFunc("/assistant", a.requireAuth(a.Assistant)).Methods(http.MethodPost)

	router.HandleFunc("/preferences", a.requireAuth(a.GetPreferences)).Methods(http.MethodGet)
	router.HandleFunc("/preferences", a.requireAuth(a.PutPreferences)).Methods(http.MethodPut)
}
