package httpapi

import (
	"context"
	"net/http"
	"strings"

	"taskan/internal/models"
)

type contextKey int

const userKey contextKey = iota

// currentUser returns the authenticated user stored by requireAuth.
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey).(*models.User)
	return user
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// requireAuth resolves the bearer token to a user and stores it in the
// request context. Requests without a valid session get 401.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			a.respondError(w, r, models.ErrNotAuthenticated)
			return
		}
		user, err := a.auth.CurrentSession(r.Context(), token)
		if err != nil {
			a.respondError(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}
