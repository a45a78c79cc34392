package httpapi

import (
	"net/http"

	"taskan/internal/prefs"
)

// GetPreferences handles GET /preferences.
func (a *API) GetPreferences(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.prefs.Preferences())
}

// PutPreferences handles PUT /preferences. The write is synchronous, so a
// 200 means the file is on disk.
func (a *API) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var p prefs.Preferences
	if !a.decode(w, r, &p) {
		return
	}
	if err := a.prefs.Save(p); err != nil {
		a.respondError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, p)
}
