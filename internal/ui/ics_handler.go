package ui

import (
	"fmt"
	"net/http"

	"github.com/jw6ventures/calboard/internal/auth"
	"github.com/jw6ventures/calboard/internal/calendar"
	httperrors "github.com/jw6ventures/calboard/internal/http/errors"
	"github.com/jw6ventures/calboard/internal/ical"
	"github.com/jw6ventures/calboard/internal/store"
)

// ExportICS serializes the whole event list as an iCalendar payload.
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	entries := make([]ical.Entry, 0, len(events))
	for _, ev := range events {
		entries = append(entries, ical.Entry{Event: ev.Calendar(), RRule: ev.RRule})
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calboard.ics"`)
	if _, err := w.Write([]byte(ical.Export(entries))); err != nil {
		httperrors.LogError(r, "write ics export", err)
	}
}

// ImportICS parses an uploaded iCalendar payload and upserts its events
// by UID. Unparseable components are skipped and counted rather than
// failing the import.
func (h *Handler) ImportICS(w http.ResponseWriter, r *http.Request) {
	entries, skipped, err := ical.Import(r.Body)
	if err != nil {
		httperrors.BadRequestError(w, r, err, "invalid iCalendar payload")
		return
	}

	imported := 0
	for _, entry := range entries {
		ev := entry.Event
		if _, err := h.store.Events.Upsert(r.Context(), store.Event{
			ID:          ev.ID,
			Title:       ev.Title,
			Start:       ev.Start,
			End:         ev.End,
			Location:    ev.Location,
			Description: ev.Description,
			Color:       ev.Color,
			Category:    calendar.NormalizeCategory(string(ev.Category)),
			RRule:       entry.RRule,
		}); err != nil {
			internalError(w, r, err, "upsert imported event")
			return
		}
		imported++
	}

	owner, ok := auth.OwnerFromContext(r.Context())
	if !ok {
		owner = "anonymous"
	}
	httperrors.LogInfo(r, fmt.Sprintf("%s imported %d events (%d skipped)", owner, imported, skipped))

	writeJSON(w, http.StatusOK, map[string]int{
		"imported": imported,
		"skipped":  skipped,
	})
}
