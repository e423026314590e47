package calendar

import (
	"errors"
	"time"
)

// Gesture errors.
var (
	ErrGestureInProgress = errors.New("another gesture is already in progress")
	ErrNoGesture         = errors.New("no matching gesture in progress")
	ErrEventNotFound     = errors.New("event not found")
	ErrOverlapRejected   = errors.New("drop rejected: placement overlaps an existing event")
)

// GestureState is the interaction state machine. Exactly one gesture can
// be active at a time; every path out of a non-idle state runs the
// release hook captured at gesture start.
type GestureState int

const (
	StateIdle GestureState = iota
	StateDragging
	StateResizing
	StateContextMenu
	StateEditing
)

func (s GestureState) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	case StateContextMenu:
		return "contextMenu"
	case StateEditing:
		return "editing"
	default:
		return "idle"
	}
}

// ResizeEdge selects which edge of an event a resize gesture grabs.
type ResizeEdge string

const (
	EdgeTop    ResizeEdge = "top"
	EdgeBottom ResizeEdge = "bottom"
)

type resizeState struct {
	original Event
	edge     ResizeEdge
}

// State returns the active gesture state.
func (e *Engine) State() GestureState { return e.state }

// beginGesture transitions out of idle and captures the release hook
// (typically the detach of global pointer listeners) for the duration of
// the gesture.
func (e *Engine) beginGesture(state GestureState, release func()) error {
	if e.state != StateIdle {
		return ErrGestureInProgress
	}
	e.state = state
	e.release = release
	return nil
}

// endGesture returns to idle and runs the release hook. It is the single
// exit path for all gestures, completed or abandoned, so listeners can
// never leak across interactions.
func (e *Engine) endGesture() {
	release := e.release
	e.state = StateIdle
	e.dragged = nil
	e.resize = nil
	e.menuTarget = nil
	e.draft = nil
	e.release = nil
	if release != nil {
		release()
	}
}

// Cancel abandons whatever gesture is in progress without emitting a
// mutation. Safe to call in any state.
func (e *Engine) Cancel() {
	if e.state == StateIdle {
		return
	}
	e.endGesture()
}

// ClickEvent surfaces a single click on an event to the owner.
func (e *Engine) ClickEvent(id string) error {
	ev, ok := e.findEvent(id)
	if !ok {
		return ErrEventNotFound
	}
	if e.cb.OnEventClick != nil {
		e.cb.OnEventClick(ev)
	}
	return nil
}

// DoubleClickSlot proposes a one-hour event starting at the given day
// and hour. The owner assigns the ID and appends it to its store.
func (e *Engine) DoubleClickSlot(day time.Time, hour int) error {
	if e.state != StateIdle {
		return ErrGestureInProgress
	}
	start := slotStart(day, hour)
	if e.cb.OnSlotCreate != nil {
		e.cb.OnSlotCreate(start, start.Add(time.Hour))
	}
	return nil
}

// BeginDrag starts repositioning an event. The release hook runs when
// the drag ends, whether it commits, is rejected, or is cancelled.
func (e *Engine) BeginDrag(id string, release func()) error {
	ev, ok := e.findEvent(id)
	if !ok {
		return ErrEventNotFound
	}
	if err := e.beginGesture(StateDragging, release); err != nil {
		return err
	}
	e.dragged = &ev
	return nil
}

// DraggedEvent returns the event captured by the active drag.
func (e *Engine) DraggedEvent() (Event, bool) {
	if e.state != StateDragging || e.dragged == nil {
		return Event{}, false
	}
	return *e.dragged, true
}

// Drop completes a drag onto a target day and hour cell. The event keeps
// its original duration; minutes and seconds of the new start are
// zeroed. When overlap is disallowed and the new placement would
// conflict with any other event, the drop is rejected with no callback
// and the visual state snaps back.
func (e *Engine) Drop(day time.Time, hour int) error {
	if e.state != StateDragging || e.dragged == nil {
		return ErrNoGesture
	}
	dragged := *e.dragged

	duration := dragged.Duration()
	newStart := slotStart(day, hour)
	newEnd := newStart.Add(duration)

	if !e.allowOverlap {
		candidate := dragged
		candidate.Start = newStart
		candidate.End = newEnd
		for _, other := range e.source() {
			if other.ID == dragged.ID {
				continue
			}
			if Overlaps(candidate, other) {
				e.endGesture()
				return ErrOverlapRejected
			}
		}
	}

	if e.cb.OnEventUpdate != nil {
		e.cb.OnEventUpdate(dragged.ID, EventPatch{Start: &newStart, End: &newEnd})
	}
	e.endGesture()
	return nil
}

// BeginResize starts a duration edit from the top or bottom edge. The
// event's interval at gesture start is the baseline for all ticks.
func (e *Engine) BeginResize(id string, edge ResizeEdge, release func()) error {
	ev, ok := e.findEvent(id)
	if !ok {
		return ErrEventNotFound
	}
	if edge != EdgeTop && edge != EdgeBottom {
		edge = EdgeBottom
	}
	if err := e.beginGesture(StateResizing, release); err != nil {
		return err
	}
	e.resize = &resizeState{original: ev, edge: edge}
	return nil
}

// ResizeTick converts the cumulative vertical pixel delta since gesture
// start into an incremental update, emitted immediately for live
// feedback. The duration never shrinks below MinEventMinutes regardless
// of delta magnitude:
//
//   - bottom edge: end = start + max(30, original + delta)
//   - top edge:    start = end - max(30, original - delta)
func (e *Engine) ResizeTick(deltaPx float64) (EventPatch, error) {
	if e.state != StateResizing || e.resize == nil {
		return EventPatch{}, ErrNoGesture
	}
	orig := e.resize.original
	deltaMinutes := e.layout.PixelsToMinutes(deltaPx)
	originalMinutes := int(orig.Duration().Minutes())

	var patch EventPatch
	switch e.resize.edge {
	case EdgeTop:
		newMinutes := clampDuration(originalMinutes - deltaMinutes)
		newStart := orig.End.Add(-time.Duration(newMinutes) * time.Minute)
		patch.Start = &newStart
	default:
		newMinutes := clampDuration(originalMinutes + deltaMinutes)
		newEnd := orig.Start.Add(time.Duration(newMinutes) * time.Minute)
		patch.End = &newEnd
	}

	if e.cb.OnEventUpdate != nil {
		e.cb.OnEventUpdate(orig.ID, patch)
	}
	return patch, nil
}

// EndResize completes the resize gesture. Updates were already emitted
// per tick; this only releases the gesture.
func (e *Engine) EndResize() error {
	if e.state != StateResizing {
		return ErrNoGesture
	}
	e.endGesture()
	return nil
}

// OpenContextMenu targets an event with the context menu.
func (e *Engine) OpenContextMenu(id string) error {
	ev, ok := e.findEvent(id)
	if !ok {
		return ErrEventNotFound
	}
	if err := e.beginGesture(StateContextMenu, nil); err != nil {
		return err
	}
	e.menuTarget = &ev
	return nil
}

// CloseContextMenu dismisses the menu without action.
func (e *Engine) CloseContextMenu() {
	if e.state != StateContextMenu {
		return
	}
	e.endGesture()
}

// MenuDelete emits the delete callback for the menu target and closes
// the menu. The engine itself never removes the event.
func (e *Engine) MenuDelete() error {
	if e.state != StateContextMenu || e.menuTarget == nil {
		return ErrNoGesture
	}
	id := e.menuTarget.ID
	e.endGesture()
	if e.cb.OnEventDelete != nil {
		e.cb.OnEventDelete(id)
	}
	return nil
}

// MenuDuplicate emits the duplicate callback with the source event. The
// owner assigns a new ID and typically offsets the copy's dates.
func (e *Engine) MenuDuplicate() error {
	if e.state != StateContextMenu || e.menuTarget == nil {
		return ErrNoGesture
	}
	ev := *e.menuTarget
	e.endGesture()
	if e.cb.OnEventDuplicate != nil {
		e.cb.OnEventDuplicate(ev)
	}
	return nil
}

// BeginEdit stages a working copy of an event for the edit dialog.
// Changes accumulate on the copy and reach the owner only on SaveEdit.
func (e *Engine) BeginEdit(id string) error {
	ev, ok := e.findEvent(id)
	if !ok {
		return ErrEventNotFound
	}
	if err := e.beginGesture(StateEditing, nil); err != nil {
		return err
	}
	e.draft = &ev
	return nil
}

// Draft returns the staged working copy.
func (e *Engine) Draft() (Event, bool) {
	if e.state != StateEditing || e.draft == nil {
		return Event{}, false
	}
	return *e.draft, true
}

// UpdateDraft applies a partial change to the staged copy only.
func (e *Engine) UpdateDraft(patch EventPatch) error {
	if e.state != StateEditing || e.draft == nil {
		return ErrNoGesture
	}
	updated := patch.Apply(*e.draft)
	e.draft = &updated
	return nil
}

// SaveEdit commits the staged copy through the update callback. An edit
// that would put the end at or before the start is corrected by pushing
// the end to start plus the minimum duration, matching the resize floor.
func (e *Engine) SaveEdit() error {
	if e.state != StateEditing || e.draft == nil {
		return ErrNoGesture
	}
	draft := *e.draft
	if !draft.End.After(draft.Start) {
		draft.End = draft.Start.Add(MinEventMinutes * time.Minute)
	}
	e.endGesture()
	if e.cb.OnEventUpdate != nil {
		e.cb.OnEventUpdate(draft.ID, EventPatch{
			Title:       &draft.Title,
			Start:       &draft.Start,
			End:         &draft.End,
			Location:    &draft.Location,
			Description: &draft.Description,
			Color:       &draft.Color,
			Category:    &draft.Category,
		})
	}
	return nil
}

// CancelEdit discards the staged copy.
func (e *Engine) CancelEdit() {
	if e.state != StateEditing {
		return
	}
	e.endGesture()
}

func clampDuration(minutes int) int {
	if minutes < MinEventMinutes {
		return MinEventMinutes
	}
	return minutes
}

func slotStart(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
