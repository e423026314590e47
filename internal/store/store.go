package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an event ID has no stored counterpart.
var ErrNotFound = errors.New("event not found")

// Store aggregates repositories backed by in-process memory. The demo
// application is explicitly persistence-free: the event list lives here
// for the lifetime of the process, seeded at startup.
type Store struct {
	Events EventRepository
}

// New wires the concrete in-memory repositories.
func New() *Store {
	return &Store{
		Events: newMemoryEventRepo(),
	}
}

// HealthCheck reports whether the store is usable. The in-memory
// backend is always reachable; this keeps the readiness probe contract
// from the HTTP layer intact.
func (s *Store) HealthCheck(ctx context.Context) error {
	_, err := s.Events.List(ctx)
	return err
}
