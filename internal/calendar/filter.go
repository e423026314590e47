package calendar

// CategoryFilter is the set of categories currently selected. An empty
// set is the explicit "no filter active" state and shows all events,
// not none.
type CategoryFilter map[Category]bool

// Toggle adds the category to the selection, or removes it when already
// selected.
func (f CategoryFilter) Toggle(c Category) {
	if f[c] {
		delete(f, c)
	} else {
		f[c] = true
	}
}

// Active reports whether the category is part of the selection.
func (f CategoryFilter) Active(c Category) bool {
	return f[c]
}

// Empty reports whether no filter is active.
func (f CategoryFilter) Empty() bool {
	return len(f) == 0
}

// Apply returns the events passing the filter. With an empty selection
// the input is returned unchanged.
func (f CategoryFilter) Apply(events []Event) []Event {
	if len(f) == 0 {
		return events
	}
	var out []Event
	for _, ev := range events {
		if f[ev.Category] {
			out = append(out, ev)
		}
	}
	return out
}
