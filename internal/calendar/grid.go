package calendar

import "time"

const daysPerWeek = 7

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday-aligned start of the week containing t.
// Sunday counts as day 7 of the preceding week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	wd := int(day.Weekday())
	diff := 1 - wd
	if wd == 0 {
		diff = -6
	}
	return day.AddDate(0, 0, diff)
}

// VisibleDates expands an anchor date into the ordered list of dates
// rendered by the given view:
//
//   - day: the anchor itself
//   - week: 7 consecutive dates from the Monday-aligned week start
//   - month: whole Monday-aligned weeks covering the anchor's month,
//     always a multiple of 7 dates, never a partial trailing week
func VisibleDates(anchor time.Time, view View) []time.Time {
	switch view {
	case ViewWeek:
		start := StartOfWeek(anchor)
		dates := make([]time.Time, daysPerWeek)
		for i := range dates {
			dates[i] = start.AddDate(0, 0, i)
		}
		return dates
	case ViewMonth:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		last := first.AddDate(0, 1, -1)
		var dates []time.Time
		for week := StartOfWeek(first); !week.After(last); week = week.AddDate(0, 0, daysPerWeek) {
			for i := 0; i < daysPerWeek; i++ {
				dates = append(dates, week.AddDate(0, 0, i))
			}
		}
		return dates
	default:
		return []time.Time{StartOfDay(anchor)}
	}
}
