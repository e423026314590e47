package calendar

import "time"

// Category classifies an event and determines its default color and
// filter membership.
type Category string

const (
	CategoryMeeting  Category = "meeting"
	CategoryWorkshop Category = "workshop"
	CategoryDemo     Category = "demo"
	CategoryPersonal Category = "personal"
	CategoryOther    Category = "other"
)

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{
		CategoryMeeting,
		CategoryWorkshop,
		CategoryDemo,
		CategoryPersonal,
		CategoryOther,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMeeting, CategoryWorkshop, CategoryDemo, CategoryPersonal, CategoryOther:
		return true
	}
	return false
}

// NormalizeCategory maps arbitrary input to a known category,
// falling back to CategoryOther.
func NormalizeCategory(s string) Category {
	c := Category(s)
	if c.Valid() {
		return c
	}
	return CategoryOther
}

var categoryColors = map[Category]string{
	CategoryMeeting:  "#3b82f6",
	CategoryWorkshop: "#8b5cf6",
	CategoryDemo:     "#f59e0b",
	CategoryPersonal: "#10b981",
	CategoryOther:    "#6b7280",
}

// DefaultColor returns the display color derived from a category.
func DefaultColor(c Category) string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryOther]
}

// Event is a single calendar entry. The canonical event list is owned by
// the embedding application; the engine never stores or mutates events on
// its own, it only proposes mutations through callbacks.
//
// Start < End is enforced at mutation time (resize and edit-save clamp to
// the minimum duration), not as a construction invariant.
type Event struct {
	ID          string
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
	Color       string
	Category    Category
}

// Duration returns End - Start. May be non-positive for events the caller
// constructed without validation.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// DisplayColor returns the explicit color when set, otherwise the color
// derived from the category.
func (e Event) DisplayColor() string {
	if e.Color != "" {
		return e.Color
	}
	return DefaultColor(e.Category)
}

// EventPatch is a partial event update emitted through OnEventUpdate.
// Nil fields are left untouched.
type EventPatch struct {
	Title       *string
	Start       *time.Time
	End         *time.Time
	Location    *string
	Description *string
	Color       *string
	Category    *Category
}

// Apply returns a copy of e with the patch's non-nil fields applied.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	return e
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
