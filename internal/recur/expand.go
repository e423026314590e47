package recur

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jw6ventures/calboard/internal/calendar"
)

// defaultMaxOccurrences caps expansion so a malformed or unbounded rule
// cannot flood a visible window.
const defaultMaxOccurrences = 500

// idSeparator joins a base event ID with the occurrence start to form a
// stable per-occurrence ID.
const idSeparator = "@"

// Expand materializes an event into the concrete occurrences that fall
// within [windowStart, windowEnd]. A non-recurring event passes through
// unchanged when it intersects the window. Recurring events keep their
// original duration per occurrence; each occurrence gets a derived ID so
// the UI can target it individually.
func Expand(base calendar.Event, rawRule string, windowStart, windowEnd time.Time, maxOccurrences int) ([]calendar.Event, error) {
	if rawRule == "" {
		if base.Start.Before(windowEnd) && base.End.After(windowStart) {
			return []calendar.Event{base}, nil
		}
		return nil, nil
	}

	r, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil, fmt.Errorf("parse rrule for %s: %w", base.ID, err)
	}
	r.DTStart(base.Start)

	if maxOccurrences <= 0 {
		maxOccurrences = defaultMaxOccurrences
	}

	starts := r.Between(windowStart.In(base.Start.Location()), windowEnd.In(base.Start.Location()), true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	duration := base.Duration()
	out := make([]calendar.Event, 0, len(starts))
	for _, start := range starts {
		occ := base
		occ.ID = OccurrenceID(base.ID, start)
		occ.Start = start
		occ.End = start.Add(duration)
		out = append(out, occ)
	}
	return out, nil
}

// ExpandAll expands a set of events into a flat occurrence list,
// skipping events whose rule fails to parse (callers log those
// individually via the returned map).
func ExpandAll(events []calendar.Event, rules map[string]string, windowStart, windowEnd time.Time) ([]calendar.Event, map[string]error) {
	var out []calendar.Event
	failed := make(map[string]error)
	for _, ev := range events {
		occ, err := Expand(ev, rules[ev.ID], windowStart, windowEnd, 0)
		if err != nil {
			failed[ev.ID] = err
			continue
		}
		out = append(out, occ...)
	}
	return out, failed
}

// OccurrenceID derives the per-occurrence event ID.
func OccurrenceID(baseID string, start time.Time) string {
	return baseID + idSeparator + start.Format(time.RFC3339)
}

// BaseID recovers the canonical event ID from an occurrence ID, so
// mutations on any occurrence resolve to the stored event.
func BaseID(id string) string {
	if i := strings.Index(id, idSeparator); i >= 0 {
		return id[:i]
	}
	return id
}
