package ical

import (
	"errors"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/jw6ventures/calboard/internal/calendar"
)

// colorProperty carries the explicit event color, which has no standard
// iCalendar property in the subset we emit.
const colorProperty = ical.ComponentProperty("X-CALBOARD-COLOR")

// Entry pairs an event with its optional recurrence rule for transport
// through an ICS payload.
type Entry struct {
	Event calendar.Event
	RRule string
}

// Export serializes entries into a single VCALENDAR payload.
func Export(entries []Entry) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//jw6ventures//calboard//EN")

	for _, entry := range entries {
		ev := entry.Event
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(time.Now().UTC())
		ve.SetStartAt(ev.Start)
		ve.SetEndAt(ev.End)
		ve.SetSummary(ev.Title)
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Color != "" {
			ve.SetProperty(colorProperty, ev.Color)
		}
		ve.SetProperty(ical.ComponentPropertyCategories, string(ev.Category))
		if entry.RRule != "" {
			ve.SetProperty(ical.ComponentPropertyRrule, entry.RRule)
		}
	}

	return cal.Serialize()
}

// Import parses a VCALENDAR payload into entries. Events without a UID
// or parseable DTSTART/DTEND are skipped rather than failing the whole
// import; the caller decides how to report the skip count.
func Import(r io.Reader) ([]Entry, int, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, 0, err
	}

	var entries []Entry
	skipped := 0
	for _, ve := range cal.Events() {
		entry, err := parseVEvent(ve)
		if err != nil {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func parseVEvent(ve *ical.VEvent) (Entry, error) {
	var entry Entry

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return entry, errors.New("missing UID")
	}
	entry.Event.ID = uid.Value

	start, err := ve.GetStartAt()
	if err != nil {
		return entry, err
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return entry, err
	}
	entry.Event.Start = start
	entry.Event.End = end

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		entry.Event.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		entry.Event.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		entry.Event.Description = p.Value
	}
	if p := ve.GetProperty(colorProperty); p != nil {
		entry.Event.Color = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		entry.Event.Category = calendar.NormalizeCategory(p.Value)
	} else {
		entry.Event.Category = calendar.CategoryOther
	}
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		entry.RRule = p.Value
	}

	return entry, nil
}
