package calendar

import (
	"fmt"
	"sort"
	"time"
)

const (
	// MinEventMinutes is the duration floor: resize clamps here and very
	// short events still get a minimum visible height.
	MinEventMinutes = 30

	// DefaultPixelsPerHour is the reference row height. Drag and resize
	// math reuse the same minutes-to-pixels ratio, so placement and
	// gesture deltas stay consistent.
	DefaultPixelsPerHour = 64

	// MaxMonthEntries caps the compact labels shown per month-view day
	// cell before collapsing into a "+N more" indicator.
	MaxMonthEntries = 3
)

// WorkHours bounds the vertical time axis of day and week views.
type WorkHours struct {
	Start int
	End   int
}

// DefaultWorkHours is the 8:00-20:00 window used when none is configured.
func DefaultWorkHours() WorkHours {
	return WorkHours{Start: 8, End: 20}
}

// Hours returns the number of hour rows in the grid.
func (w WorkHours) Hours() int {
	return w.End - w.Start
}

// Layout converts event times into vertical grid geometry.
type Layout struct {
	WorkHours     WorkHours
	PixelsPerHour int
}

// NewLayout fills in defaults for a zero-valued layout.
func NewLayout(hours WorkHours, pixelsPerHour int) Layout {
	if hours.Hours() <= 0 {
		hours = DefaultWorkHours()
	}
	if pixelsPerHour <= 0 {
		pixelsPerHour = DefaultPixelsPerHour
	}
	return Layout{WorkHours: hours, PixelsPerHour: pixelsPerHour}
}

// Geometry is the vertical placement of an event within its day column,
// in minutes from the top of the work window and in pixels.
type Geometry struct {
	TopMinutes    int
	HeightMinutes int
	TopPx         float64
	HeightPx      float64
}

// Geometry computes the placement of ev. Height is floored at
// MinEventMinutes so extremely short events remain visible and
// interactive.
func (l Layout) Geometry(ev Event) Geometry {
	top := (ev.Start.Hour()-l.WorkHours.Start)*60 + ev.Start.Minute()
	height := int(ev.Duration().Minutes())
	if height < MinEventMinutes {
		height = MinEventMinutes
	}
	return Geometry{
		TopMinutes:    top,
		HeightMinutes: height,
		TopPx:         l.MinutesToPixels(float64(top)),
		HeightPx:      l.MinutesToPixels(float64(height)),
	}
}

// MinutesToPixels scales a minute offset by the layout's row height.
func (l Layout) MinutesToPixels(minutes float64) float64 {
	return minutes * float64(l.PixelsPerHour) / 60
}

// PixelsToMinutes converts a vertical pixel delta back into minutes,
// rounding to the nearest minute. Inverse of MinutesToPixels.
func (l Layout) PixelsToMinutes(px float64) int {
	minutes := px / float64(l.PixelsPerHour) * 60
	if minutes >= 0 {
		return int(minutes + 0.5)
	}
	return -int(-minutes + 0.5)
}

// EventsOnDay returns the events whose Start falls on the given calendar
// day. An event belongs to the day it starts on; multi-day spanning is
// not supported.
func EventsOnDay(events []Event, day time.Time) []Event {
	var out []Event
	for _, ev := range events {
		if SameDay(ev.Start, day) {
			out = append(out, ev)
		}
	}
	return out
}

// MonthEntry is a compact single-line event label for a month cell.
type MonthEntry struct {
	ID    string
	Label string
	Color string
}

// MonthCell holds the visible entries of one month-view day plus the
// count of events hidden behind the "+N more" indicator.
type MonthCell struct {
	Date    time.Time
	Entries []MonthEntry
	More    int
}

// MonthCells builds one cell per visible date, capping the visible
// entries at MaxMonthEntries. Entries are ordered by start time.
func MonthCells(events []Event, dates []time.Time) []MonthCell {
	cells := make([]MonthCell, 0, len(dates))
	for _, date := range dates {
		dayEvents := EventsOnDay(events, date)
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].Start.Before(dayEvents[j].Start)
		})

		cell := MonthCell{Date: date}
		for i, ev := range dayEvents {
			if i >= MaxMonthEntries {
				cell.More = len(dayEvents) - MaxMonthEntries
				break
			}
			cell.Entries = append(cell.Entries, MonthEntry{
				ID:    ev.ID,
				Label: fmt.Sprintf("%s %s", ev.Start.Format("15:04"), ev.Title),
				Color: ev.DisplayColor(),
			})
		}
		cells = append(cells, cell)
	}
	return cells
}
