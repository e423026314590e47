package store

import (
	"context"
	"time"

	"github.com/jw6ventures/calboard/internal/calendar"
)

// EventRepository owns the canonical event list. Every engine callback
// lands here; the engine itself never creates, updates, or deletes
// events.
type EventRepository interface {
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	// Create stores a new event, assigning an ID when none is set.
	Create(ctx context.Context, ev Event) (*Event, error)
	// Apply folds a partial update into an existing event.
	Apply(ctx context.Context, id string, patch calendar.EventPatch) (*Event, error)
	Delete(ctx context.Context, id string) error
	// Duplicate copies an event under a fresh ID with its dates shifted
	// by offset.
	Duplicate(ctx context.Context, id string, offset time.Duration) (*Event, error)
	// Upsert inserts or replaces by ID, used by ICS import.
	Upsert(ctx context.Context, ev Event) (*Event, error)
	// ListBetween returns events starting within [from, until), ordered
	// by start time. Used by the reminder sweep.
	ListBetween(ctx context.Context, from, until time.Time) ([]Event, error)
}
