// Package store implements the repository layer on top of neo4j. Each
// repository opens a session per call and runs its Cypher inside
// ExecuteRead/ExecuteWrite closures; records are fully collected before
// the closure returns.
package store

import (
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"taskan/internal/models"
)

// NewDriver initializes the neo4j driver from connection settings.
func NewDriver(uri, username, password string) (neo4j.DriverWithContext, error) {
	return neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
}

// storeErr wraps a driver failure as a generic transport error.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", models.ErrNetwork, err)
}

// Record value decoding. Properties are stored as primitives: timestamps
// as RFC3339 strings, id lists as string lists, attachments as a JSON
// string. Nulls decode to zero values.

func strVal(v any) string {
	s, _ := v.(string)
	return s
}

func intVal(v any) int {
	n, _ := v.(int64)
	return int(n)
}

func strListVal(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func timeVal(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func timePtrVal(v any) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func timeProp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func timePtrProp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timeProp(*t)
}
