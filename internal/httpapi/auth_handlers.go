package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// Register handles POST /auth/register.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !a.decode(w, r, &req) {
		return
	}
	user, err := a.auth.CreateAccount(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !a.decode(w, r, &req) {
		return
	}
	token, user, err := a.auth.CreateSession(r.Context(), req.Email, req.Password)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// Logout handles POST /auth/logout.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	a.auth.EndSession(bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, currentUser(r))
}

// FederatedLogin handles GET /auth/oauth/{provider}: it returns the
// provider's authorize URL for the client to redirect to. The flow beyond
// that URL is opaque to the dashboard.
func (a *API) FederatedLogin(w http.ResponseWriter, r *http.Request) {
	provider := mux.Vars(r)["provider"]
	url, err := a.auth.BeginFederatedLogin(provider)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
