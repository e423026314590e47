package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jw6ventures/calboard/internal/calendar"
)

func at(day, hour, min int) time.Time {
	return time.Date(2024, 3, day, hour, min, 0, 0, time.UTC)
}

func seedRepo(t *testing.T) (*Store, context.Context) {
	t.Helper()
	s := New()
	ctx := context.Background()

	for _, ev := range []Event{
		{ID: "standup", Title: "Standup", Start: at(11, 9, 0), End: at(11, 9, 30), Category: calendar.CategoryMeeting},
		{ID: "workshop", Title: "Workshop", Start: at(12, 13, 0), End: at(12, 16, 0), Category: calendar.CategoryWorkshop},
	} {
		if _, err := s.Events.Upsert(ctx, ev); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return s, ctx
}

func TestCreateAssignsID(t *testing.T) {
	s, ctx := seedRepo(t)

	ev, err := s.Events.Create(ctx, Event{Title: "New event", Start: at(13, 10, 0), End: at(13, 11, 0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ev.ID == "" {
		t.Fatal("Create left ID empty")
	}
	if ev.Category != calendar.CategoryOther {
		t.Errorf("Category = %q, want fallback %q", ev.Category, calendar.CategoryOther)
	}
	if ev.CreatedAt.IsZero() || ev.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	got, err := s.Events.GetByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetByID after Create: %v", err)
	}
	if got.Title != "New event" {
		t.Errorf("Title = %q, want %q", got.Title, "New event")
	}
}

func TestApplyPatchUpdatesStoredEvent(t *testing.T) {
	s, ctx := seedRepo(t)

	newStart := at(11, 14, 0)
	newEnd := at(11, 15, 0)
	ev, err := s.Events.Apply(ctx, "standup", calendar.EventPatch{Start: &newStart, End: &newEnd})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !ev.Start.Equal(newStart) || !ev.End.Equal(newEnd) {
		t.Errorf("patched interval = %v-%v, want %v-%v", ev.Start, ev.End, newStart, newEnd)
	}
	if ev.Title != "Standup" {
		t.Errorf("unpatched Title changed to %q", ev.Title)
	}
}

func TestApplyUnknownIDReturnsNotFound(t *testing.T) {
	s, ctx := seedRepo(t)

	if _, err := s.Events.Apply(ctx, "missing", calendar.EventPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Apply(missing) err = %v, want ErrNotFound", err)
	}
	if err := s.Events.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := s.Events.Duplicate(ctx, "missing", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Duplicate(missing) err = %v, want ErrNotFound", err)
	}
}

func TestDeleteRemovesEvent(t *testing.T) {
	s, ctx := seedRepo(t)

	if err := s.Events.Delete(ctx, "standup"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Events.GetByID(ctx, "standup"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID after delete err = %v, want ErrNotFound", err)
	}
}

func TestDuplicateShiftsDates(t *testing.T) {
	s, ctx := seedRepo(t)

	dup, err := s.Events.Duplicate(ctx, "workshop", 48*time.Hour)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == "workshop" || dup.ID == "" {
		t.Errorf("duplicate ID = %q, want fresh ID", dup.ID)
	}
	if !dup.Start.Equal(at(14, 13, 0)) || !dup.End.Equal(at(14, 16, 0)) {
		t.Errorf("duplicate interval = %v-%v, want shifted by 48h", dup.Start, dup.End)
	}

	events, err := s.Events.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("List returned %d events, want 3", len(events))
	}
}

func TestUpsertPreservesCreatedAt(t *testing.T) {
	s, ctx := seedRepo(t)

	before, err := s.Events.GetByID(ctx, "standup")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	updated := *before
	updated.Title = "Daily standup"
	after, err := s.Events.Upsert(ctx, updated)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Errorf("CreatedAt changed on upsert: %v -> %v", before.CreatedAt, after.CreatedAt)
	}
	if after.Title != "Daily standup" {
		t.Errorf("Title = %q, want %q", after.Title, "Daily standup")
	}
}

func TestListSortedByStart(t *testing.T) {
	s, ctx := seedRepo(t)

	events, err := s.Events.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Start.Before(events[i-1].Start) {
			t.Errorf("List not sorted at index %d", i)
		}
	}
}

func TestListBetween(t *testing.T) {
	s, ctx := seedRepo(t)

	testCases := []struct {
		name    string
		from    time.Time
		until   time.Time
		wantIDs []string
	}{
		{"covers both", at(11, 0, 0), at(13, 0, 0), []string{"standup", "workshop"}},
		{"second day only", at(12, 0, 0), at(13, 0, 0), []string{"workshop"}},
		{"half-open end excludes start boundary", at(11, 0, 0), at(12, 13, 0), []string{"standup"}},
		{"empty range", at(20, 0, 0), at(21, 0, 0), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			events, err := s.Events.ListBetween(ctx, tc.from, tc.until)
			if err != nil {
				t.Fatalf("ListBetween: %v", err)
			}
			if len(events) != len(tc.wantIDs) {
				t.Fatalf("got %d events, want %d", len(events), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if events[i].ID != id {
					t.Errorf("events[%d].ID = %q, want %q", i, events[i].ID, id)
				}
			}
		})
	}
}
