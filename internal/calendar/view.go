package calendar

import "time"

// View selects how the anchor date expands into a visible range.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewDay, ViewWeek, ViewMonth:
		return true
	}
	return false
}

// ViewState holds the anchor date and active view. The anchor determines
// the visible window; navigation mutates the anchor only.
type ViewState struct {
	Anchor time.Time
	View   View
}

// Prev returns the anchor shifted one step back for the active view:
// one month in month view, one week in week view, one day in day view.
func (s ViewState) Prev() time.Time {
	switch s.View {
	case ViewMonth:
		return s.Anchor.AddDate(0, -1, 0)
	case ViewWeek:
		return s.Anchor.AddDate(0, 0, -7)
	default:
		return s.Anchor.AddDate(0, 0, -1)
	}
}

// Next returns the anchor shifted one step forward for the active view.
func (s ViewState) Next() time.Time {
	switch s.View {
	case ViewMonth:
		return s.Anchor.AddDate(0, 1, 0)
	case ViewWeek:
		return s.Anchor.AddDate(0, 0, 7)
	default:
		return s.Anchor.AddDate(0, 0, 1)
	}
}
