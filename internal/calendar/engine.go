package calendar

import (
	"sort"
	"time"
)

// EventSource supplies the caller-owned canonical event list. The engine
// re-reads it on every state change instead of keeping its own copy.
type EventSource func() []Event

// Callbacks is the contract between the engine and its owner. Every
// mutation the engine proposes (create, update, delete, duplicate) is
// surfaced here; the owner applies it to its own store.
type Callbacks struct {
	OnSlotCreate     func(start, end time.Time)
	OnEventClick     func(ev Event)
	OnEventUpdate    func(id string, patch EventPatch)
	OnEventDelete    func(id string)
	OnEventDuplicate func(ev Event)
	OnViewChange     func(view View)
	OnDateChange     func(date time.Time)
}

// Options configures a new Engine.
type Options struct {
	InitialDate   time.Time
	InitialView   View
	WorkHours     WorkHours
	PixelsPerHour int
	ShowConflicts bool
	AllowOverlap  bool
	Now           func() time.Time // injectable for testing
}

// Engine is the interactive calendar core: grid computation, placement,
// conflict detection, gesture handling, and category filtering over an
// externally owned event list. It is a pure view-and-gesture layer; it
// holds only ephemeral interaction state.
//
// The engine is single-threaded by design: gestures are synchronous
// handler invocations, there is no background processing.
type Engine struct {
	source EventSource
	cb     Callbacks
	layout Layout
	now    func() time.Time

	allowOverlap  bool
	showConflicts bool

	anchor time.Time
	view   View
	filter CategoryFilter

	state      GestureState
	dragged    *Event
	resize     *resizeState
	menuTarget *Event
	draft      *Event

	release func()
}

// NewEngine builds an engine over the given event source.
func NewEngine(source EventSource, cb Callbacks, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	anchor := opts.InitialDate
	if anchor.IsZero() {
		anchor = opts.Now()
	}
	view := opts.InitialView
	if !view.Valid() {
		view = ViewWeek
	}
	return &Engine{
		source:        source,
		cb:            cb,
		layout:        NewLayout(opts.WorkHours, opts.PixelsPerHour),
		now:           opts.Now,
		allowOverlap:  opts.AllowOverlap,
		showConflicts: opts.ShowConflicts,
		anchor:        StartOfDay(anchor),
		view:          view,
		filter:        make(CategoryFilter),
		state:         StateIdle,
	}
}

// Layout exposes the placement geometry configuration.
func (e *Engine) Layout() Layout { return e.layout }

// CurrentDate returns the anchor date.
func (e *Engine) CurrentDate() time.Time { return e.anchor }

// CurrentView returns the active view.
func (e *Engine) CurrentView() View { return e.view }

// SetView switches the view and notifies the owner. The anchor is left
// unchanged.
func (e *Engine) SetView(v View) {
	if !v.Valid() || v == e.view {
		return
	}
	e.view = v
	if e.cb.OnViewChange != nil {
		e.cb.OnViewChange(v)
	}
}

// GoToPrev shifts the anchor one step back for the active view.
func (e *Engine) GoToPrev() {
	e.setDate(ViewState{Anchor: e.anchor, View: e.view}.Prev())
}

// GoToNext shifts the anchor one step forward for the active view.
func (e *Engine) GoToNext() {
	e.setDate(ViewState{Anchor: e.anchor, View: e.view}.Next())
}

// GoToToday resets the anchor to the current date without changing the
// view.
func (e *Engine) GoToToday() {
	e.setDate(e.now())
}

// SetDate moves the anchor to an arbitrary date.
func (e *Engine) SetDate(date time.Time) {
	e.setDate(date)
}

func (e *Engine) setDate(date time.Time) {
	date = StartOfDay(date)
	if date.Equal(e.anchor) {
		return
	}
	e.anchor = date
	if e.cb.OnDateChange != nil {
		e.cb.OnDateChange(date)
	}
}

// DoubleClickMonthDay is the month-view navigation shortcut: switch to
// day view anchored on the double-clicked day. Not an event mutation.
func (e *Engine) DoubleClickMonthDay(day time.Time) {
	e.SetView(ViewDay)
	e.setDate(day)
}

// ToggleCategory flips a category in the filter selection.
func (e *Engine) ToggleCategory(c Category) {
	e.filter.Toggle(c)
}

// Filter returns the active category filter.
func (e *Engine) Filter() CategoryFilter { return e.filter }

// VisibleEvents returns the filtered events whose start day falls inside
// the active view window.
func (e *Engine) VisibleEvents() []Event {
	dates := VisibleDates(e.anchor, e.view)
	inWindow := make(map[string]bool, len(dates))
	for _, d := range dates {
		inWindow[d.Format("2006-01-02")] = true
	}

	var out []Event
	for _, ev := range e.filter.Apply(e.source()) {
		if inWindow[ev.Start.Format("2006-01-02")] {
			out = append(out, ev)
		}
	}
	return out
}

// PlacedEvent pairs an event with its computed geometry and conflict
// flag for rendering.
type PlacedEvent struct {
	Event
	Geometry Geometry
	Conflict bool
}

// DayColumn is one rendered day of a day or week view.
type DayColumn struct {
	Date   time.Time
	Events []PlacedEvent
}

// Window is a full render snapshot of the engine: the visible dates plus
// either time-grid columns (day/week) or compact month cells.
type Window struct {
	Date        time.Time
	View        View
	Dates       []time.Time
	Columns     []DayColumn
	MonthCells  []MonthCell
	ConflictIDs map[string]bool
}

// Window recomputes the complete visible state from the current event
// list. Conflict flags are populated only when ShowConflicts is enabled.
func (e *Engine) Window() Window {
	dates := VisibleDates(e.anchor, e.view)
	visible := e.VisibleEvents()

	w := Window{
		Date:  e.anchor,
		View:  e.view,
		Dates: dates,
	}

	if e.showConflicts {
		w.ConflictIDs = ConflictIDs(visible)
	} else {
		w.ConflictIDs = map[string]bool{}
	}

	if e.view == ViewMonth {
		w.MonthCells = MonthCells(visible, dates)
		return w
	}

	for _, date := range dates {
		col := DayColumn{Date: date}
		dayEvents := EventsOnDay(visible, date)
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].Start.Before(dayEvents[j].Start)
		})
		for _, ev := range dayEvents {
			col.Events = append(col.Events, PlacedEvent{
				Event:    ev,
				Geometry: e.layout.Geometry(ev),
				Conflict: w.ConflictIDs[ev.ID],
			})
		}
		w.Columns = append(w.Columns, col)
	}
	return w
}

func (e *Engine) findEvent(id string) (Event, bool) {
	for _, ev := range e.source() {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}
