package calendar

import (
	"testing"
	"time"
)

func TestCategoryFilterApply(t *testing.T) {
	events := []Event{
		{ID: "a", Category: CategoryMeeting, Start: at(2024, time.March, 11, 9, 0), End: at(2024, time.March, 11, 10, 0)},
		{ID: "b", Category: CategoryWorkshop, Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
		{ID: "c", Category: CategoryPersonal, Start: at(2024, time.March, 11, 11, 0), End: at(2024, time.March, 11, 12, 0)},
		{ID: "d", Category: CategoryMeeting, Start: at(2024, time.March, 11, 12, 0), End: at(2024, time.March, 11, 13, 0)},
	}

	testCases := []struct {
		name     string
		selected []Category
		wantIDs  []string
	}{
		{"empty selection shows all", nil, []string{"a", "b", "c", "d"}},
		{"single category", []Category{CategoryMeeting}, []string{"a", "d"}},
		{"multiple categories", []Category{CategoryWorkshop, CategoryPersonal}, []string{"b", "c"}},
		{"selection with no members", []Category{CategoryDemo}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := make(CategoryFilter)
			for _, c := range tc.selected {
				f.Toggle(c)
			}

			got := f.Apply(events)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d events, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("event %d = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestCategoryFilterToggle(t *testing.T) {
	f := make(CategoryFilter)
	if !f.Empty() {
		t.Fatal("new filter should be empty")
	}

	f.Toggle(CategoryMeeting)
	if !f.Active(CategoryMeeting) {
		t.Error("meeting should be active after toggle")
	}
	if f.Empty() {
		t.Error("filter should not be empty")
	}

	f.Toggle(CategoryMeeting)
	if f.Active(CategoryMeeting) {
		t.Error("meeting should be inactive after second toggle")
	}
	if !f.Empty() {
		t.Error("filter should be empty again")
	}
}

func TestNormalizeCategory(t *testing.T) {
	testCases := []struct {
		input string
		want  Category
	}{
		{"meeting", CategoryMeeting},
		{"workshop", CategoryWorkshop},
		{"demo", CategoryDemo},
		{"personal", CategoryPersonal},
		{"other", CategoryOther},
		{"", CategoryOther},
		{"birthday", CategoryOther},
	}

	for _, tc := range testCases {
		if got := NormalizeCategory(tc.input); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}
