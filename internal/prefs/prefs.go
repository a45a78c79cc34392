// Package prefs persists the user-facing preferences (theme plus the
// Google integration settings) to a JSON file. The store is loaded once
// at startup and written synchronously on every change, replacing the
// ambient module state the dashboard previously kept in the browser.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"taskan/internal/models"
)

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// GoogleSettings configures the Drive file picker integration.
type GoogleSettings struct {
	APIKey   string `json:"apiKey"`
	ClientID string `json:"clientId"`
}

// Settings groups third-party integration settings.
type Settings struct {
	Google GoogleSettings `json:"google"`
}

// Preferences is everything the store persists.
type Preferences struct {
	Theme    Theme    `json:"theme"`
	Settings Settings `json:"settings"`
}

// Store is a file-backed preference store. Safe for concurrent use.
type Store struct {
	path  string
	mu    sync.Mutex
	prefs Preferences
}

// Open loads preferences from path, falling back to defaults when the
// file does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		prefs: Preferences{Theme: ThemeLight},
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &s.prefs); err != nil {
			return nil, fmt.Errorf("parse preferences %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}

	if s.prefs.Theme != ThemeLight && s.prefs.Theme != ThemeDark {
		s.prefs.Theme = ThemeLight
	}
	return s, nil
}

// Preferences returns the current snapshot.
func (s *Store) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// Save validates and persists p, writing the file before returning.
func (s *Store) Save(p Preferences) error {
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		return fmt.Errorf("%w: unknown theme %q", models.ErrValidation, p.Theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write preferences %s: %w", s.path, err)
	}
	s.prefs = p
	return nil
}
