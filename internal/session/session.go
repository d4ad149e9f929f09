// Package session persists one grocery list per short-lived session handle.
//
// The rest of the system only depends on the Store contract: create a list
// under a fresh opaque id, read it back, delete it. The concrete backend is
// chosen at wire-up time.
package session

import (
	"context"
	"errors"

	"meal-planner-api/internal/grocery"
)

// ErrNotFound is returned when no live grocery list exists for a session id,
// including reads and deletes after a successful delete.
var ErrNotFound = errors.New("session not found")

// Store is the key-value persistence contract for grocery-list sessions.
// Create stores the full list atomically under a fresh unique id; a failed
// create leaves nothing behind. Delete reports ErrNotFound on an id that is
// already gone, so callers can detect double deletion.
type Store interface {
	Create(ctx context.Context, list grocery.List) (string, error)
	Get(ctx context.Context, sessionID string) (grocery.List, error)
	Delete(ctx context.Context, sessionID string) error
}
