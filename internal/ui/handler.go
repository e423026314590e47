package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/jw6ventures/calboard/internal/auth"
	"github.com/jw6ventures/calboard/internal/calendar"
	"github.com/jw6ventures/calboard/internal/config"
	"github.com/jw6ventures/calboard/internal/recur"
	"github.com/jw6ventures/calboard/internal/store"
)

// Handler serves the calendar JSON API. Each request builds a
// short-lived engine over a snapshot of the store; every mutation the
// engine proposes is applied back through the event repository.
type Handler struct {
	cfg      *config.Config
	store    *store.Store
	sessions *auth.SessionManager
}

func NewHandler(cfg *config.Config, st *store.Store, sessions *auth.SessionManager) *Handler {
	return &Handler{cfg: cfg, store: st, sessions: sessions}
}

// applier receives engine callbacks for one request and folds them into
// the store. Callbacks return nothing, so the first store error is
// captured here for the handler to report.
type applier struct {
	ctx   context.Context
	store *store.Store

	err        error
	created    *store.Event
	updated    *store.Event
	deletedID  string
	duplicated *store.Event

	// duplicateOffset shifts the copy's dates, set per request.
	duplicateOffset time.Duration
}

func (a *applier) callbacks() calendar.Callbacks {
	return calendar.Callbacks{
		OnSlotCreate: func(start, end time.Time) {
			ev, err := a.store.Events.Create(a.ctx, store.Event{
				Title:    "New event",
				Start:    start,
				End:      end,
				Category: calendar.CategoryOther,
			})
			if err != nil {
				a.fail(err)
				return
			}
			a.created = ev
		},
		OnEventUpdate: func(id string, patch calendar.EventPatch) {
			ev, err := a.store.Events.Apply(a.ctx, id, patch)
			if err != nil {
				a.fail(err)
				return
			}
			a.updated = ev
		},
		OnEventDelete: func(id string) {
			if err := a.store.Events.Delete(a.ctx, id); err != nil {
				a.fail(err)
				return
			}
			a.deletedID = id
		},
		OnEventDuplicate: func(ev calendar.Event) {
			dup, err := a.store.Events.Duplicate(a.ctx, ev.ID, a.duplicateOffset)
			if err != nil {
				a.fail(err)
				return
			}
			a.duplicated = dup
		},
	}
}

func (a *applier) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

// calendarEvents converts stored events into the engine's event type.
func calendarEvents(events []store.Event) []calendar.Event {
	list := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		list = append(list, ev.Calendar())
	}
	return list
}

// dropEventList builds the event source for a drop's overlap check:
// every base event plus the occurrences other recurring events
// materialize on the target day. Without the occurrences a drop onto a
// slot held only by a recurring event on a non-base day would pass the
// check and land on a rendered conflict. Occurrences of the dragged
// event's own series are left out; they move with it.
func dropEventList(events []store.Event, draggedID string, day time.Time) []calendar.Event {
	dayStart := calendar.StartOfDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	list := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		list = append(list, ev.Calendar())
		if ev.RRule == "" || ev.ID == draggedID {
			continue
		}
		occ, err := recur.Expand(ev.Calendar(), ev.RRule, dayStart, dayEnd, 0)
		if err != nil {
			continue // malformed rules are reported by the window path
		}
		for _, o := range occ {
			// The base event is already in the list; skip the occurrence
			// that coincides with it.
			if o.Start.Equal(ev.Start) {
				continue
			}
			list = append(list, o)
		}
	}
	return list
}

// engineFor builds an engine over the given event list, wired to the
// applier. Gestures operate on canonical store events; occurrence IDs
// are resolved to their base before the engine sees them.
func (h *Handler) engineFor(list []calendar.Event, a *applier, date time.Time, view calendar.View) *calendar.Engine {
	source := func() []calendar.Event { return list }

	return calendar.NewEngine(source, a.callbacks(), calendar.Options{
		InitialDate:   date,
		InitialView:   view,
		WorkHours:     h.cfg.WorkHours(),
		PixelsPerHour: h.cfg.Calendar.PixelsPerHour,
		ShowConflicts: h.cfg.Calendar.ShowConflicts,
		AllowOverlap:  h.cfg.Calendar.AllowOverlap,
	})
}

func (h *Handler) loadEvents(w http.ResponseWriter, r *http.Request) ([]store.Event, bool) {
	events, err := h.store.Events.List(r.Context())
	if err != nil {
		internalError(w, r, err, "load events")
		return nil, false
	}
	return events, true
}
