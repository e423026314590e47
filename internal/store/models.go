package store

import (
	"time"

	"github.com/jw6ventures/calboard/internal/calendar"
)

// Event is the stored representation of a calendar event. It extends
// the engine's event with an optional recurrence rule and bookkeeping
// timestamps. The store is the canonical owner of the event list; the
// calendar engine only proposes mutations against it.
type Event struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
	Color       string
	Category    calendar.Category
	RRule       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Calendar converts the stored event into the engine's event type.
func (e Event) Calendar() calendar.Event {
	return calendar.Event{
		ID:          e.ID,
		Title:       e.Title,
		Start:       e.Start,
		End:         e.End,
		Location:    e.Location,
		Description: e.Description,
		Color:       e.Color,
		Category:    e.Category,
	}
}

// ApplyPatch folds an engine-emitted partial update into the stored
// event.
func (e *Event) ApplyPatch(patch calendar.EventPatch) {
	updated := patch.Apply(e.Calendar())
	e.Title = updated.Title
	e.Start = updated.Start
	e.End = updated.End
	e.Location = updated.Location
	e.Description = updated.Description
	e.Color = updated.Color
	e.Category = updated.Category
}
