package ui

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jw6ventures/calboard/internal/calendar"
	httperrors "github.com/jw6ventures/calboard/internal/http/errors"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httperrors.BadRequestError(w, r, err, "invalid JSON body")
		return false
	}
	return true
}

func internalError(w http.ResponseWriter, r *http.Request, err error, message string) {
	httperrors.InternalError(w, r, err, message)
}

// parseDate reads a yyyy-mm-dd query parameter, defaulting to today.
func parseDate(r *http.Request, key string) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation(dateLayout, raw, time.Local)
}

// parseView reads the view query parameter, defaulting to week.
func parseView(r *http.Request) (calendar.View, bool) {
	raw := r.URL.Query().Get("view")
	if raw == "" {
		return calendar.ViewWeek, true
	}
	v := calendar.View(raw)
	return v, v.Valid()
}

// eventJSON is the wire shape of an event.
type eventJSON struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
}

func toEventJSON(ev calendar.Event) eventJSON {
	return eventJSON{
		ID:          ev.ID,
		Title:       ev.Title,
		Start:       ev.Start,
		End:         ev.End,
		Location:    ev.Location,
		Description: ev.Description,
		Color:       ev.DisplayColor(),
		Category:    string(ev.Category),
	}
}

// patchRequest is the wire shape of a partial event update. Absent
// fields are left untouched.
type patchRequest struct {
	Title       *string    `json:"title"`
	Start       *time.Time `json:"start"`
	End         *time.Time `json:"end"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	Color       *string    `json:"color"`
	Category    *string    `json:"category"`
}

func (p patchRequest) toPatch() calendar.EventPatch {
	patch := calendar.EventPatch{
		Title:       p.Title,
		Start:       p.Start,
		End:         p.End,
		Location:    p.Location,
		Description: p.Description,
		Color:       p.Color,
	}
	if p.Category != nil {
		c := calendar.NormalizeCategory(*p.Category)
		patch.Category = &c
	}
	return patch
}
