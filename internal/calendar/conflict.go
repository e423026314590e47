package calendar

// Overlaps reports whether two events visually conflict: same calendar
// day and overlapping half-open time intervals. Touching endpoints do
// not conflict.
func Overlaps(a, b Event) bool {
	if !SameDay(a.Start, b.Start) {
		return false
	}
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// ConflictIDs returns the set of event IDs participating in at least one
// conflict. Detection is pairwise over the supplied events, which are
// expected to be the visible window only; visible-window counts are
// bounded by schedule density, not global data size.
//
// The result is advisory: conflicts are never auto-resolved or blocked
// here. Blocking happens only in the drop path when overlap is
// disallowed.
func ConflictIDs(events []Event) map[string]bool {
	conflicts := make(map[string]bool)
	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			if Overlaps(events[i], events[j]) {
				conflicts[events[i].ID] = true
				conflicts[events[j].ID] = true
			}
		}
	}
	return conflicts
}
