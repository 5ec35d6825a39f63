package timeline

import "fmt"

// EventKind identifies what an Event reports.
type EventKind int

const (
	// RangeChanged carries the new trim range.
	RangeChanged EventKind = iota + 1
	// BoundaryReached fires when playback reaches the trim finish.
	BoundaryReached
	// HandleMoved fires after a handle drag changed the range.
	HandleMoved
	// PanningTargetChanged carries the new panning target.
	PanningTargetChanged
	// IndicatorReset fires when the position indicator snaps back to the left handle.
	IndicatorReset
	// FramesRequested carries the window sent to the frame source.
	FramesRequested
	// FramesCancelled fires when pending frame generation was dropped.
	FramesCancelled
	// PlaybackSeeked carries the seek target in Seconds.
	PlaybackSeeked
	// PlaybackPaused fires when the engine paused playback.
	PlaybackPaused
	// PlaybackResumed fires when the engine resumed playback.
	PlaybackResumed
)

var eventKindNames = map[EventKind]string{
	RangeChanged:         "range-changed",
	BoundaryReached:      "boundary-reached",
	HandleMoved:          "handle-moved",
	PanningTargetChanged: "panning-target-changed",
	IndicatorReset:       "indicator-reset",
	FramesRequested:      "frames-requested",
	FramesCancelled:      "frames-cancelled",
	PlaybackSeeked:       "playback-seeked",
	PlaybackPaused:       "playback-paused",
	PlaybackResumed:      "playback-resumed",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a state change derived from an engine operation. Only the fields
// relevant to Kind are set.
type Event struct {
	Kind    EventKind
	Range   TrimRange
	Target  PanningTarget
	Side    HandleSide
	Window  Window
	Seconds float64
}

// Events is the ordered result of an engine operation.
type Events []Event

// Has reports whether any event of the given kind is present.
func (es Events) Has(kind EventKind) bool {
	return es.Count(kind) > 0
}

// Count returns the number of events of the given kind.
func (es Events) Count(kind EventKind) int {
	n := 0
	for _, e := range es {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Last returns the last event of the given kind.
func (es Events) Last(kind EventKind) (Event, bool) {
	for i := len(es) - 1; i >= 0; i-- {
		if es[i].Kind == kind {
			return es[i], true
		}
	}
	return Event{}, false
}
