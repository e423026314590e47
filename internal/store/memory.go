package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jw6ventures/calboard/internal/calendar"
)

// memoryEventRepo keeps events in a map guarded by a RWMutex. The
// calendar engine itself is single-threaded, but the HTTP layer serves
// concurrent requests against the same store.
type memoryEventRepo struct {
	mu     sync.RWMutex
	events map[string]*Event
	now    func() time.Time
}

func newMemoryEventRepo() *memoryEventRepo {
	return &memoryEventRepo{
		events: make(map[string]*Event),
		now:    time.Now,
	}
}

func (r *memoryEventRepo) List(ctx context.Context) ([]Event, error) {
	defer observeStore(ctx, "store.list")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, *ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *memoryEventRepo) GetByID(ctx context.Context, id string) (*Event, error) {
	defer observeStore(ctx, "store.get")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	ev, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ev
	return &copied, nil
}

func (r *memoryEventRepo) Create(ctx context.Context, ev Event) (*Event, error) {
	defer observeStore(ctx, "store.create")()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	now := r.now()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	if !ev.Category.Valid() {
		ev.Category = calendar.CategoryOther
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[ev.ID] = &ev

	copied := ev
	return &copied, nil
}

func (r *memoryEventRepo) Apply(ctx context.Context, id string, patch calendar.EventPatch) (*Event, error) {
	defer observeStore(ctx, "store.apply")()

	r.mu.Lock()
	defer r.mu.Unlock()

	ev, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	ev.ApplyPatch(patch)
	ev.UpdatedAt = r.now()

	copied := *ev
	return &copied, nil
}

func (r *memoryEventRepo) Delete(ctx context.Context, id string) error {
	defer observeStore(ctx, "store.delete")()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *memoryEventRepo) Duplicate(ctx context.Context, id string, offset time.Duration) (*Event, error) {
	defer observeStore(ctx, "store.duplicate")()

	r.mu.Lock()
	defer r.mu.Unlock()

	src, ok := r.events[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *src
	copied.ID = uuid.NewString()
	copied.Start = copied.Start.Add(offset)
	copied.End = copied.End.Add(offset)
	now := r.now()
	copied.CreatedAt = now
	copied.UpdatedAt = now
	r.events[copied.ID] = &copied

	out := copied
	return &out, nil
}

func (r *memoryEventRepo) Upsert(ctx context.Context, ev Event) (*Event, error) {
	defer observeStore(ctx, "store.upsert")()

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	now := r.now()
	ev.UpdatedAt = now
	if !ev.Category.Valid() {
		ev.Category = calendar.CategoryOther
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.events[ev.ID]; ok {
		ev.CreatedAt = existing.CreatedAt
	} else {
		ev.CreatedAt = now
	}
	r.events[ev.ID] = &ev

	copied := ev
	return &copied, nil
}

func (r *memoryEventRepo) ListBetween(ctx context.Context, from, until time.Time) ([]Event, error) {
	defer observeStore(ctx, "store.list_between")()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Event
	for _, ev := range r.events {
		if !ev.Start.Before(from) && ev.Start.Before(until) {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
