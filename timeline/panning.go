package timeline

// PanningTarget is the input source that currently owns timeline mutation.
type PanningTarget int

const (
	PanNone PanningTarget = iota
	PanLeftHandle
	PanRightHandle
	PanScroller
	PanOther
)

func (t PanningTarget) String() string {
	switch t {
	case PanNone:
		return "none"
	case PanLeftHandle:
		return "left-handle"
	case PanRightHandle:
		return "right-handle"
	case PanScroller:
		return "scroller"
	case PanOther:
		return "other"
	}
	return "unknown"
}

// Active reports whether the target is manipulating the timeline.
func (t PanningTarget) Active() bool {
	return t != PanNone
}

// HandleSide selects the left or right trim handle.
type HandleSide int

const (
	LeftHandle HandleSide = iota
	RightHandle
)

func (s HandleSide) String() string {
	if s == LeftHandle {
		return "left"
	}
	return "right"
}

func (s HandleSide) target() PanningTarget {
	if s == LeftHandle {
		return PanLeftHandle
	}
	return PanRightHandle
}

// GesturePhase is the lifecycle state of a drag gesture.
type GesturePhase int

const (
	GestureBegan GesturePhase = iota
	GestureChanged
	GestureEnded
	GestureCancelled
	GestureFailed
)

// Transition describes a change of panning target.
type Transition struct {
	From PanningTarget
	To   PanningTarget
}

// Pauses reports whether the transition hands the timeline to an input source.
func (t Transition) Pauses() bool {
	return t.From == PanNone && t.To != PanNone
}

// Resumes reports whether the transition releases the timeline after a handle
// drag or strip scroll, which re-seeks to the trim start and resumes playback.
func (t Transition) Resumes() bool {
	if t.To != PanNone {
		return false
	}
	switch t.From {
	case PanLeftHandle, PanRightHandle, PanScroller:
		return true
	}
	return false
}

// PanningMachine tracks the single active panning target. Mutual exclusion
// between handle pans and strip scrolling is guaranteed by the gesture host.
type PanningMachine struct {
	target PanningTarget
}

// Target returns the current panning target.
func (m *PanningMachine) Target() PanningTarget {
	return m.target
}

// Set moves to target. ok is false when target is already current.
func (m *PanningMachine) Set(target PanningTarget) (t Transition, ok bool) {
	if target == m.target {
		return Transition{From: target, To: target}, false
	}
	t = Transition{From: m.target, To: target}
	m.target = target
	return t, true
}

// Gesture applies a handle gesture phase.
func (m *PanningMachine) Gesture(side HandleSide, phase GesturePhase) (Transition, bool) {
	switch phase {
	case GestureBegan, GestureChanged:
		return m.Set(side.target())
	default:
		return m.Set(PanNone)
	}
}

// ScrollWillBeginDragging hands the timeline to the strip scroller.
func (m *PanningMachine) ScrollWillBeginDragging() (Transition, bool) {
	return m.Set(PanScroller)
}

// ScrollWillEndDragging releases the timeline.
func (m *PanningMachine) ScrollWillEndDragging() (Transition, bool) {
	return m.Set(PanNone)
}
