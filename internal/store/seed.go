package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jw6ventures/calboard/internal/calendar"
)

// seedFile is the YAML shape of a demo data file. All timestamps are
// RFC 3339.
type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

type seedEvent struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Start       time.Time `yaml:"start"`
	End         time.Time `yaml:"end"`
	Location    string    `yaml:"location"`
	Description string    `yaml:"description"`
	Color       string    `yaml:"color"`
	Category    string    `yaml:"category"`
	RRule       string    `yaml:"rrule"`
}

// LoadSeedFile reads a YAML seed file and inserts its events into the
// store, replacing any event with the same ID.
func LoadSeedFile(ctx context.Context, s *Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	loaded := 0
	for _, se := range file.Events {
		if se.Title == "" || se.Start.IsZero() || se.End.IsZero() {
			continue
		}
		if _, err := s.Events.Upsert(ctx, Event{
			ID:          se.ID,
			Title:       se.Title,
			Start:       se.Start,
			End:         se.End,
			Location:    se.Location,
			Description: se.Description,
			Color:       se.Color,
			Category:    calendar.NormalizeCategory(se.Category),
			RRule:       se.RRule,
		}); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}

// SeedDemo fills the store with a small mocked schedule around the
// given reference date, used when no seed file is configured.
func SeedDemo(ctx context.Context, s *Store, ref time.Time) error {
	monday := calendar.StartOfWeek(ref)
	at := func(day, hour, min int) time.Time {
		d := monday.AddDate(0, 0, day)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, d.Location())
	}

	demo := []Event{
		{
			ID:       "demo-standup",
			Title:    "Team standup",
			Start:    at(0, 9, 0),
			End:      at(0, 9, 30),
			Category: calendar.CategoryMeeting,
			RRule:    "FREQ=WEEKLY;BYDAY=MO,TU,WE,TH,FR",
		},
		{
			ID:          "demo-workshop",
			Title:       "Onboarding workshop",
			Start:       at(1, 13, 0),
			End:         at(1, 16, 0),
			Location:    "Room 2B",
			Description: "Hands-on session for the new cohort.",
			Category:    calendar.CategoryWorkshop,
		},
		{
			ID:       "demo-product",
			Title:    "Product demo",
			Start:    at(2, 14, 0),
			End:      at(2, 15, 0),
			Category: calendar.CategoryDemo,
		},
		{
			ID:       "demo-review",
			Title:    "Curriculum review",
			Start:    at(2, 14, 30),
			End:      at(2, 15, 30),
			Category: calendar.CategoryMeeting,
		},
		{
			ID:       "demo-gym",
			Title:    "Gym",
			Start:    at(3, 18, 0),
			End:      at(3, 19, 0),
			Category: calendar.CategoryPersonal,
		},
	}

	for _, ev := range demo {
		if _, err := s.Events.Upsert(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
