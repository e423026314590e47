package ui

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jw6ventures/calboard/internal/calendar"
	httperrors "github.com/jw6ventures/calboard/internal/http/errors"
	"github.com/jw6ventures/calboard/internal/metrics"
	"github.com/jw6ventures/calboard/internal/recur"
	"github.com/jw6ventures/calboard/internal/store"
)

// windowJSON is the render snapshot returned to the client.
type windowJSON struct {
	Date        string            `json:"date"`
	View        string            `json:"view"`
	Dates       []string          `json:"dates"`
	Columns     []columnJSON      `json:"columns,omitempty"`
	MonthCells  []monthCellJSON   `json:"monthCells,omitempty"`
	ConflictIDs []string          `json:"conflictIds"`
	Layout      layoutJSON        `json:"layout"`
	Categories  map[string]string `json:"categories"`
}

type columnJSON struct {
	Date   string       `json:"date"`
	Events []placedJSON `json:"events"`
}

type placedJSON struct {
	eventJSON
	TopPx    float64 `json:"topPx"`
	HeightPx float64 `json:"heightPx"`
	Conflict bool    `json:"conflict"`
}

type monthCellJSON struct {
	Date    string   `json:"date"`
	Entries []string `json:"entries"`
	More    int      `json:"more"`
}

type layoutJSON struct {
	WorkHoursStart int `json:"workHoursStart"`
	WorkHoursEnd   int `json:"workHoursEnd"`
	PixelsPerHour  int `json:"pixelsPerHour"`
}

// Window renders the visible calendar state for a date, view, and
// category selection. Recurring events are expanded into concrete
// occurrences across the visible range before placement.
func (h *Handler) Window(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r, "date")
	if err != nil {
		httperrors.BadRequestError(w, r, err, "invalid date")
		return
	}
	view, ok := parseView(r)
	if !ok {
		httperrors.BadRequestError(w, r, nil, "invalid view")
		return
	}

	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	dates := calendar.VisibleDates(date, view)
	from := dates[0]
	until := dates[len(dates)-1].AddDate(0, 0, 1)

	list := make([]calendar.Event, 0, len(events))
	rules := make(map[string]string)
	for _, ev := range events {
		list = append(list, ev.Calendar())
		if ev.RRule != "" {
			rules[ev.ID] = ev.RRule
		}
	}

	expanded, failed := recur.ExpandAll(list, rules, from, until)
	for id, expandErr := range failed {
		httperrors.LogError(r, "expand recurrence for "+id, expandErr)
	}

	a := &applier{ctx: r.Context(), store: h.store}
	eng := calendar.NewEngine(
		func() []calendar.Event { return expanded },
		a.callbacks(),
		calendar.Options{
			InitialDate:   date,
			InitialView:   view,
			WorkHours:     h.cfg.WorkHours(),
			PixelsPerHour: h.cfg.Calendar.PixelsPerHour,
			ShowConflicts: h.cfg.Calendar.ShowConflicts,
			AllowOverlap:  h.cfg.Calendar.AllowOverlap,
		},
	)
	for _, raw := range strings.Split(r.URL.Query().Get("categories"), ",") {
		if raw = strings.TrimSpace(raw); raw != "" {
			eng.ToggleCategory(calendar.NormalizeCategory(raw))
		}
	}

	win := eng.Window()
	metrics.ObserveWindowConflicts(len(win.ConflictIDs))

	writeJSON(w, http.StatusOK, toWindowJSON(win, eng.Layout()))
}

func toWindowJSON(win calendar.Window, layout calendar.Layout) windowJSON {
	out := windowJSON{
		Date:        win.Date.Format(dateLayout),
		View:        string(win.View),
		ConflictIDs: []string{},
		Layout: layoutJSON{
			WorkHoursStart: layout.WorkHours.Start,
			WorkHoursEnd:   layout.WorkHours.End,
			PixelsPerHour:  layout.PixelsPerHour,
		},
		Categories: categoryPalette(),
	}
	for _, d := range win.Dates {
		out.Dates = append(out.Dates, d.Format(dateLayout))
	}
	for id := range win.ConflictIDs {
		out.ConflictIDs = append(out.ConflictIDs, id)
	}
	for _, col := range win.Columns {
		cj := columnJSON{Date: col.Date.Format(dateLayout), Events: []placedJSON{}}
		for _, pe := range col.Events {
			cj.Events = append(cj.Events, placedJSON{
				eventJSON: toEventJSON(pe.Event),
				TopPx:     pe.Geometry.TopPx,
				HeightPx:  pe.Geometry.HeightPx,
				Conflict:  pe.Conflict,
			})
		}
		out.Columns = append(out.Columns, cj)
	}
	for _, cell := range win.MonthCells {
		mc := monthCellJSON{Date: cell.Date.Format(dateLayout), Entries: []string{}, More: cell.More}
		for _, entry := range cell.Entries {
			mc.Entries = append(mc.Entries, entry.Label)
		}
		out.MonthCells = append(out.MonthCells, mc)
	}
	return out
}

func categoryPalette() map[string]string {
	palette := make(map[string]string)
	for _, c := range calendar.Categories() {
		palette[string(c)] = calendar.Event{Category: c}.DisplayColor()
	}
	return palette
}

// Categories lists the known categories with their colors.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, categoryPalette())
}

// GetEvent returns one event by ID.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := recur.BaseID(chi.URLParam(r, "id"))

	ev, err := h.store.Events.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, r, err, "load event")
		return
	}
	writeJSON(w, http.StatusOK, toEventJSON(ev.Calendar()))
}

// moveRequest completes a drag: the event keeps its duration and lands
// on the target day and hour.
type moveRequest struct {
	ID   string `json:"id"`
	Day  string `json:"day"`
	Hour int    `json:"hour"`
}

func (h *Handler) MoveEvent(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	day, err := time.ParseInLocation(dateLayout, req.Day, time.Local)
	if err != nil {
		httperrors.BadRequestError(w, r, err, "invalid day")
		return
	}

	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	id := recur.BaseID(req.ID)

	a := &applier{ctx: r.Context(), store: h.store}
	eng := h.engineFor(dropEventList(events, id, day), a, day, calendar.ViewWeek)

	if err := eng.BeginDrag(id, nil); err != nil {
		metrics.RecordGesture("drag", "invalid")
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err := eng.Drop(day, req.Hour); err != nil {
		if errors.Is(err, calendar.ErrOverlapRejected) {
			metrics.RecordGesture("drag", "rejected")
			httperrors.ConflictError(w, r, "drop rejected: placement overlaps an existing event")
			return
		}
		metrics.RecordGesture("drag", "invalid")
		internalError(w, r, err, "drop event")
		return
	}
	if a.err != nil {
		internalError(w, r, a.err, "apply move")
		return
	}

	metrics.RecordGesture("drag", "applied")
	writeJSON(w, http.StatusOK, toEventJSON(a.updated.Calendar()))
}

// resizeRequest adjusts an event's duration from one edge by a vertical
// pixel delta.
type resizeRequest struct {
	ID      string  `json:"id"`
	Edge    string  `json:"edge"`
	DeltaPx float64 `json:"deltaPx"`
}

func (h *Handler) ResizeEvent(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	a := &applier{ctx: r.Context(), store: h.store}
	eng := h.engineFor(calendarEvents(events), a, time.Time{}, calendar.ViewWeek)

	id := recur.BaseID(req.ID)
	if err := eng.BeginResize(id, calendar.ResizeEdge(req.Edge), nil); err != nil {
		metrics.RecordGesture("resize", "invalid")
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if _, err := eng.ResizeTick(req.DeltaPx); err != nil {
		metrics.RecordGesture("resize", "invalid")
		internalError(w, r, err, "resize event")
		return
	}
	if err := eng.EndResize(); err != nil {
		internalError(w, r, err, "end resize")
		return
	}
	if a.err != nil {
		internalError(w, r, a.err, "apply resize")
		return
	}

	metrics.RecordGesture("resize", "applied")
	writeJSON(w, http.StatusOK, toEventJSON(a.updated.Calendar()))
}

// slotRequest proposes a one-hour event at a double-clicked empty slot.
type slotRequest struct {
	Day  string `json:"day"`
	Hour int    `json:"hour"`
}

func (h *Handler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req slotRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	day, err := time.ParseInLocation(dateLayout, req.Day, time.Local)
	if err != nil {
		httperrors.BadRequestError(w, r, err, "invalid day")
		return
	}

	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	a := &applier{ctx: r.Context(), store: h.store}
	eng := h.engineFor(calendarEvents(events), a, day, calendar.ViewWeek)

	if err := eng.DoubleClickSlot(day, req.Hour); err != nil {
		metrics.RecordGesture("slot-create", "invalid")
		internalError(w, r, err, "create slot")
		return
	}
	if a.err != nil {
		internalError(w, r, a.err, "apply slot create")
		return
	}

	metrics.RecordGesture("slot-create", "applied")
	writeJSON(w, http.StatusCreated, toEventJSON(a.created.Calendar()))
}

// UpdateEvent stages the requested changes on a working copy and saves
// it, mirroring the edit dialog flow. An interval whose end does not
// follow its start is corrected to the minimum duration.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	a := &applier{ctx: r.Context(), store: h.store}
	eng := h.engineFor(calendarEvents(events), a, time.Time{}, calendar.ViewWeek)

	id := recur.BaseID(chi.URLParam(r, "id"))
	if err := eng.BeginEdit(id); err != nil {
		metrics.RecordGesture("edit", "invalid")
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err := eng.UpdateDraft(req.toPatch()); err != nil {
		internalError(w, r, err, "update draft")
		return
	}
	if err := eng.SaveEdit(); err != nil {
		internalError(w, r, err, "save edit")
		return
	}
	if a.err != nil {
		internalError(w, r, a.err, "apply edit")
		return
	}

	metrics.RecordGesture("edit", "applied")
	writeJSON(w, http.StatusOK, toEventJSON(a.updated.Calendar()))
}

// DeleteEvent removes an event through the context-menu flow.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	a := &applier{ctx: r.Context(), store: h.store}
	eng := h.engineFor(calendarEvents(events), a, time.Time{}, calendar.ViewWeek)

	id := recur.BaseID(chi.URLParam(r, "id"))
	if err := eng.OpenContextMenu(id); err != nil {
		metrics.RecordGesture("delete", "invalid")
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err := eng.MenuDelete(); err != nil {
		internalError(w, r, err, "delete event")
		return
	}
	if a.err != nil {
		internalError(w, r, a.err, "apply delete")
		return
	}

	metrics.RecordGesture("delete", "applied")
	w.WriteHeader(http.StatusNoContent)
}

// duplicateRequest copies an event, optionally shifting it by whole
// days.
type duplicateRequest struct {
	OffsetDays int `json:"offsetDays"`
}

func (h *Handler) DuplicateEvent(w http.ResponseWriter, r *http.Request) {
	var req duplicateRequest
	if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
		return
	}

	events, ok := h.loadEvents(w, r)
	if !ok {
		return
	}

	a := &applier{
		ctx:             r.Context(),
		store:           h.store,
		duplicateOffset: time.Duration(req.OffsetDays) * 24 * time.Hour,
	}
	eng := h.engineFor(calendarEvents(events), a, time.Time{}, calendar.ViewWeek)

	id := recur.BaseID(chi.URLParam(r, "id"))
	if err := eng.OpenContextMenu(id); err != nil {
		metrics.RecordGesture("duplicate", "invalid")
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	if err := eng.MenuDuplicate(); err != nil {
		internalError(w, r, err, "duplicate event")
		return
	}
	if a.err != nil {
		internalError(w, r, a.err, "apply duplicate")
		return
	}

	metrics.RecordGesture("duplicate", "applied")
	writeJSON(w, http.StatusCreated, toEventJSON(a.duplicated.Calendar()))
}
