// Package interaction turns pointer gestures on window chrome into registry updates.
//
// A gesture starts with a pointer-down on a window header (drag) or resize
// handle (resize), follows every pointer-move while the button is held, and ends
// on pointer-up anywhere. Only one gesture is active per desktop.
package interaction

import (
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

// Phase represents the current phase of the tracker
type Phase int

const (
	// PhaseIdle means no pointer gesture is active
	PhaseIdle Phase = iota
	// PhaseDragging means a window header is held and moves update position
	PhaseDragging
	// PhaseResizing means a resize handle is held and moves update size
	PhaseResizing
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseResizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Target is the subset of the window registry a gesture drives
type Target interface {
	Get(id string) (types.WindowEntry, bool)
	BringToFront(id string)
	UpdateWindowPosition(id string, pos types.Position)
	UpdateWindowSize(id string, size types.Size)
}

// Tracker holds the origin snapshot of the active gesture
type Tracker struct {
	target        Target
	phase         Phase
	windowID      string
	originPointer types.Position
	originPos     types.Position
	originSize    types.Size
}

// NewTracker creates an idle tracker driving target
func NewTracker(target Target) *Tracker {
	return &Tracker{
		target: target,
		phase:  PhaseIdle,
	}
}

// Phase returns the current phase
func (t *Tracker) Phase() Phase {
	return t.phase
}

// Active reports whether a gesture is in progress
func (t *Tracker) Active() bool {
	return t.phase != PhaseIdle
}

// BeginDrag starts moving a window from a pointer-down on its header.
// It returns false if another gesture is active or the window is not open.
func (t *Tracker) BeginDrag(windowID string, pointer types.Position) bool {
	return t.begin(PhaseDragging, windowID, pointer)
}

// BeginResize starts resizing a window from a pointer-down on its handle.
// It returns false if another gesture is active or the window is not open.
func (t *Tracker) BeginResize(windowID string, pointer types.Position) bool {
	return t.begin(PhaseResizing, windowID, pointer)
}

// Begin dispatches on gesture kind
func (t *Tracker) Begin(kind types.GestureKind, windowID string, pointer types.Position) bool {
	switch kind {
	case types.GestureDrag:
		return t.BeginDrag(windowID, pointer)
	case types.GestureResize:
		return t.BeginResize(windowID, pointer)
	default:
		return false
	}
}

func (t *Tracker) begin(phase Phase, windowID string, pointer types.Position) bool {
	if t.phase != PhaseIdle {
		return false
	}

	entry, ok := t.target.Get(windowID)
	if !ok {
		return false
	}

	t.phase = phase
	t.windowID = windowID
	t.originPointer = pointer
	t.originPos = entry.Position
	t.originSize = entry.Size

	// Starting any gesture focuses the window
	t.target.BringToFront(windowID)
	return true
}

// Move applies the pointer delta since the gesture began to the origin snapshot.
// It returns false when no gesture is active.
func (t *Tracker) Move(pointer types.Position) bool {
	delta := pointer.Sub(t.originPointer)

	switch t.phase {
	case PhaseDragging:
		t.target.UpdateWindowPosition(t.windowID, t.originPos.Add(delta))
		return true
	case PhaseResizing:
		t.target.UpdateWindowSize(t.windowID, t.originSize.Grow(delta))
		return true
	default:
		return false
	}
}

// End finishes the active gesture. It returns false if none was active.
func (t *Tracker) End() bool {
	if t.phase == PhaseIdle {
		return false
	}
	t.reset()
	return true
}

// State returns the active gesture, or nil when idle
func (t *Tracker) State() *types.GestureState {
	var kind types.GestureKind
	switch t.phase {
	case PhaseDragging:
		kind = types.GestureDrag
	case PhaseResizing:
		kind = types.GestureResize
	default:
		return nil
	}

	return &types.GestureState{
		Kind:          kind,
		WindowID:      t.windowID,
		OriginPointer: t.originPointer,
		OriginPos:     t.originPos,
		OriginSize:    t.originSize,
	}
}

func (t *Tracker) reset() {
	t.phase = PhaseIdle
	t.windowID = ""
	t.originPointer = types.Position{}
	t.originPos = types.Position{}
	t.originSize = types.Size{}
}
