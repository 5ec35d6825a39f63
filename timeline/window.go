package timeline

import "math"

// prefetchFrames is the number of frame delays added on each side of a window.
const prefetchFrames = 10

// PlanWindow returns the thumbnail window for a settled trim range: the range
// widened by prefetchFrames delays on each side, snapped outward to the frame
// grid and clamped into [0, videoLength].
func PlanWindow(start, finish, videoLength, delay float64) Window {
	if delay <= 0 {
		return Window{}
	}
	margin := delay * prefetchFrames
	lowerIndex := math.Floor(math.Max(0, start-margin) / delay)
	upperIndex := math.Ceil(math.Min(videoLength, finish+margin) / delay)
	return Window{
		Start:  clamp(lowerIndex*delay, 0, videoLength),
		Finish: clamp(upperIndex*delay, 0, videoLength),
		Step:   delay,
	}
}

// Planner decides which thumbnail window the frame source should materialize.
// A new request always supersedes the previous one.
type Planner struct {
	source  FrameSource
	pending bool
	current Window
}

// NewPlanner returns a planner feeding source. A nil source makes every call a no-op.
func NewPlanner(source FrameSource) *Planner {
	return &Planner{source: source}
}

// Plan reacts to a range update. While scrolling or dragging is in progress
// pending generation is cancelled; once it settles the widened window is requested.
func (p *Planner) Plan(scrollEnded bool, start, finish, videoLength, delay float64) Events {
	if !scrollEnded {
		return p.Cancel()
	}
	w := PlanWindow(start, finish, videoLength, delay)
	if w.Empty() {
		return p.Cancel()
	}
	return p.Request(w)
}

// Request cancels any pending window and requests w.
func (p *Planner) Request(w Window) Events {
	if p.source == nil {
		return nil
	}
	events := p.Cancel()
	p.source.RequestFrames(w)
	p.pending = true
	p.current = w
	return append(events, Event{Kind: FramesRequested, Window: w})
}

// Cancel drops the pending window, if any.
func (p *Planner) Cancel() Events {
	if p.source == nil || !p.pending {
		return nil
	}
	p.source.CancelPending()
	p.pending = false
	return Events{{Kind: FramesCancelled, Window: p.current}}
}

// Current returns the last requested window and whether it is still pending.
func (p *Planner) Current() (Window, bool) {
	return p.current, p.pending
}
