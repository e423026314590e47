package calendar

import (
	"errors"
	"testing"
	"time"
)

// recorder captures callback invocations for assertions.
type recorder struct {
	creates    [][2]time.Time
	clicks     []Event
	updates    []struct {
		id    string
		patch EventPatch
	}
	deletes    []string
	duplicates []Event
	views      []View
	dates      []time.Time
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnSlotCreate: func(start, end time.Time) {
			r.creates = append(r.creates, [2]time.Time{start, end})
		},
		OnEventClick: func(ev Event) { r.clicks = append(r.clicks, ev) },
		OnEventUpdate: func(id string, patch EventPatch) {
			r.updates = append(r.updates, struct {
				id    string
				patch EventPatch
			}{id, patch})
		},
		OnEventDelete:    func(id string) { r.deletes = append(r.deletes, id) },
		OnEventDuplicate: func(ev Event) { r.duplicates = append(r.duplicates, ev) },
		OnViewChange:     func(v View) { r.views = append(r.views, v) },
		OnDateChange:     func(d time.Time) { r.dates = append(r.dates, d) },
	}
}

func newTestEngine(t *testing.T, events []Event, rec *recorder, allowOverlap bool) *Engine {
	t.Helper()
	return NewEngine(
		func() []Event { return events },
		rec.callbacks(),
		Options{
			InitialDate:  date(2024, time.March, 11),
			InitialView:  ViewWeek,
			AllowOverlap: allowOverlap,
			Now:          func() time.Time { return at(2024, time.March, 20, 12, 0) },
		},
	)
}

func TestDragPreservesDuration(t *testing.T) {
	events := []Event{
		{ID: "ev1", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.BeginDrag("ev1", nil); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := e.Drop(date(2024, time.March, 12), 14); err != nil {
		t.Fatalf("Drop: %v", err)
	}

	if len(rec.updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(rec.updates))
	}
	u := rec.updates[0]
	if u.id != "ev1" {
		t.Errorf("update id = %s, want ev1", u.id)
	}
	if u.patch.Start == nil || !u.patch.Start.Equal(at(2024, time.March, 12, 14, 0)) {
		t.Errorf("new start = %v, want Tue 14:00", u.patch.Start)
	}
	if u.patch.End == nil || !u.patch.End.Equal(at(2024, time.March, 12, 15, 0)) {
		t.Errorf("new end = %v, want Tue 15:00", u.patch.End)
	}
	if e.State() != StateIdle {
		t.Errorf("state after drop = %v, want idle", e.State())
	}
}

func TestDropRejectedWhenOverlapDisallowed(t *testing.T) {
	events := []Event{
		{ID: "moving", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
		{ID: "blocker", Start: at(2024, time.March, 12, 14, 30), End: at(2024, time.March, 12, 15, 30)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, false)

	released := false
	if err := e.BeginDrag("moving", func() { released = true }); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	err := e.Drop(date(2024, time.March, 12), 14)
	if !errors.Is(err, ErrOverlapRejected) {
		t.Fatalf("Drop error = %v, want ErrOverlapRejected", err)
	}
	if len(rec.updates) != 0 {
		t.Errorf("rejected drop emitted %d updates, want 0", len(rec.updates))
	}
	if !released {
		t.Error("release hook did not run on rejected drop")
	}
	if e.State() != StateIdle {
		t.Errorf("state after rejection = %v, want idle", e.State())
	}
}

func TestDropIgnoresDraggedEventItself(t *testing.T) {
	// Moving an event within its own current interval must not self-conflict.
	events := []Event{
		{ID: "only", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, false)

	if err := e.BeginDrag("only", nil); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := e.Drop(date(2024, time.March, 11), 10); err != nil {
		t.Fatalf("Drop onto own slot: %v", err)
	}
	if len(rec.updates) != 1 {
		t.Errorf("got %d updates, want 1", len(rec.updates))
	}
}

func TestResizeBottomClampsToMinimum(t *testing.T) {
	events := []Event{
		{ID: "ev1", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.BeginResize("ev1", EdgeBottom, nil); err != nil {
		t.Fatalf("BeginResize: %v", err)
	}
	// -90 minutes worth of pixels at the default 64 px/hour ratio.
	patch, err := e.ResizeTick(-96)
	if err != nil {
		t.Fatalf("ResizeTick: %v", err)
	}
	if patch.End == nil || !patch.End.Equal(at(2024, time.March, 11, 10, 30)) {
		t.Errorf("clamped end = %v, want 10:30", patch.End)
	}
	if err := e.EndResize(); err != nil {
		t.Fatalf("EndResize: %v", err)
	}
	if len(rec.updates) != 1 {
		t.Errorf("got %d updates, want 1 per tick", len(rec.updates))
	}
}

func TestResizeTopMovesStartKeepsEnd(t *testing.T) {
	events := []Event{
		{ID: "ev1", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.BeginResize("ev1", EdgeTop, nil); err != nil {
		t.Fatalf("BeginResize: %v", err)
	}
	// Dragging the top edge up by 30 minutes grows the event from the top.
	patch, err := e.ResizeTick(-32)
	if err != nil {
		t.Fatalf("ResizeTick: %v", err)
	}
	if patch.Start == nil || !patch.Start.Equal(at(2024, time.March, 11, 9, 30)) {
		t.Errorf("new start = %v, want 09:30", patch.Start)
	}
	if patch.End != nil {
		t.Errorf("top-edge resize must not touch end, got %v", patch.End)
	}

	// Dragging far past the bottom clamps against the fixed end.
	patch, err = e.ResizeTick(640)
	if err != nil {
		t.Fatalf("ResizeTick: %v", err)
	}
	if patch.Start == nil || !patch.Start.Equal(at(2024, time.March, 11, 10, 30)) {
		t.Errorf("clamped start = %v, want 10:30", patch.Start)
	}
}

func TestResizeEmitsEveryTick(t *testing.T) {
	events := []Event{
		{ID: "ev1", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	released := false
	if err := e.BeginResize("ev1", EdgeBottom, func() { released = true }); err != nil {
		t.Fatalf("BeginResize: %v", err)
	}
	for _, px := range []float64{8, 16, 24, 32} {
		if _, err := e.ResizeTick(px); err != nil {
			t.Fatalf("ResizeTick(%v): %v", px, err)
		}
	}
	if err := e.EndResize(); err != nil {
		t.Fatalf("EndResize: %v", err)
	}

	if len(rec.updates) != 4 {
		t.Errorf("got %d updates, want 4", len(rec.updates))
	}
	if !released {
		t.Error("release hook did not run on EndResize")
	}
	// Ticks are relative to the gesture-start interval, not cumulative.
	last := rec.updates[3]
	if last.patch.End == nil || !last.patch.End.Equal(at(2024, time.March, 11, 11, 30)) {
		t.Errorf("final end = %v, want 11:30", last.patch.End)
	}
}

func TestSlotDoubleClickProposesOneHour(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(t, nil, rec, true)

	if err := e.DoubleClickSlot(date(2024, time.March, 13), 14); err != nil {
		t.Fatalf("DoubleClickSlot: %v", err)
	}
	if len(rec.creates) != 1 {
		t.Fatalf("got %d creates, want 1", len(rec.creates))
	}
	c := rec.creates[0]
	if !c[0].Equal(at(2024, time.March, 13, 14, 0)) || !c[1].Equal(at(2024, time.March, 13, 15, 0)) {
		t.Errorf("proposed interval = %v - %v, want Wed 14:00 - 15:00", c[0], c[1])
	}
}

func TestGestureExclusivity(t *testing.T) {
	events := []Event{
		{ID: "ev1", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
		{ID: "ev2", Start: at(2024, time.March, 12, 10, 0), End: at(2024, time.March, 12, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.BeginDrag("ev1", nil); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	if err := e.BeginResize("ev2", EdgeBottom, nil); !errors.Is(err, ErrGestureInProgress) {
		t.Errorf("BeginResize during drag = %v, want ErrGestureInProgress", err)
	}
	if err := e.DoubleClickSlot(date(2024, time.March, 13), 9); !errors.Is(err, ErrGestureInProgress) {
		t.Errorf("DoubleClickSlot during drag = %v, want ErrGestureInProgress", err)
	}

	e.Cancel()
	if e.State() != StateIdle {
		t.Fatalf("state after cancel = %v, want idle", e.State())
	}
	if err := e.BeginResize("ev2", EdgeBottom, nil); err != nil {
		t.Errorf("BeginResize after cancel: %v", err)
	}
}

func TestCancelRunsReleaseHook(t *testing.T) {
	events := []Event{
		{ID: "ev1", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	released := false
	if err := e.BeginDrag("ev1", func() { released = true }); err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	e.Cancel()
	if !released {
		t.Error("abandoned gesture leaked its listeners")
	}
	if len(rec.updates) != 0 {
		t.Errorf("cancelled drag emitted %d updates, want 0", len(rec.updates))
	}
}

func TestContextMenuDeleteAndDuplicate(t *testing.T) {
	events := []Event{
		{ID: "ev1", Title: "workshop", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.OpenContextMenu("ev1"); err != nil {
		t.Fatalf("OpenContextMenu: %v", err)
	}
	if err := e.MenuDelete(); err != nil {
		t.Fatalf("MenuDelete: %v", err)
	}
	if len(rec.deletes) != 1 || rec.deletes[0] != "ev1" {
		t.Errorf("deletes = %v, want [ev1]", rec.deletes)
	}
	if e.State() != StateIdle {
		t.Errorf("state after delete = %v, want idle", e.State())
	}

	if err := e.OpenContextMenu("ev1"); err != nil {
		t.Fatalf("OpenContextMenu: %v", err)
	}
	if err := e.MenuDuplicate(); err != nil {
		t.Fatalf("MenuDuplicate: %v", err)
	}
	if len(rec.duplicates) != 1 || rec.duplicates[0].ID != "ev1" {
		t.Errorf("duplicates = %v, want source event ev1", rec.duplicates)
	}
}

func TestEditStagingAndSave(t *testing.T) {
	events := []Event{
		{ID: "ev1", Title: "old", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.BeginEdit("ev1"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	title := "new title"
	if err := e.UpdateDraft(EventPatch{Title: &title}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}

	// Nothing reaches the owner until save.
	if len(rec.updates) != 0 {
		t.Fatalf("draft edit emitted %d updates before save", len(rec.updates))
	}
	draft, ok := e.Draft()
	if !ok || draft.Title != "new title" {
		t.Errorf("draft title = %q, want %q", draft.Title, "new title")
	}

	if err := e.SaveEdit(); err != nil {
		t.Fatalf("SaveEdit: %v", err)
	}
	if len(rec.updates) != 1 {
		t.Fatalf("got %d updates after save, want 1", len(rec.updates))
	}
	if got := rec.updates[0].patch.Title; got == nil || *got != "new title" {
		t.Errorf("saved title = %v, want new title", got)
	}
}

func TestEditCancelDiscardsDraft(t *testing.T) {
	events := []Event{
		{ID: "ev1", Title: "old", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.BeginEdit("ev1"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	title := "abandoned"
	_ = e.UpdateDraft(EventPatch{Title: &title})
	e.CancelEdit()

	if len(rec.updates) != 0 {
		t.Errorf("cancelled edit emitted %d updates", len(rec.updates))
	}
	if _, ok := e.Draft(); ok {
		t.Error("draft survived cancel")
	}
}

func TestSaveEditClampsInvertedInterval(t *testing.T) {
	events := []Event{
		{ID: "ev1", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.BeginEdit("ev1"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	// End moved before start in the dialog.
	badEnd := at(2024, time.March, 11, 9, 0)
	if err := e.UpdateDraft(EventPatch{End: &badEnd}); err != nil {
		t.Fatalf("UpdateDraft: %v", err)
	}
	if err := e.SaveEdit(); err != nil {
		t.Fatalf("SaveEdit: %v", err)
	}

	u := rec.updates[0]
	if u.patch.End == nil || !u.patch.End.Equal(at(2024, time.March, 11, 10, 30)) {
		t.Errorf("saved end = %v, want start + minimum duration (10:30)", u.patch.End)
	}
}

func TestClickEvent(t *testing.T) {
	events := []Event{
		{ID: "ev1", Title: "demo day", Start: at(2024, time.March, 11, 10, 0), End: at(2024, time.March, 11, 11, 0)},
	}
	rec := &recorder{}
	e := newTestEngine(t, events, rec, true)

	if err := e.ClickEvent("ev1"); err != nil {
		t.Fatalf("ClickEvent: %v", err)
	}
	if len(rec.clicks) != 1 || rec.clicks[0].Title != "demo day" {
		t.Errorf("clicks = %v", rec.clicks)
	}

	if err := e.ClickEvent("missing"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("ClickEvent(missing) = %v, want ErrEventNotFound", err)
	}
}
