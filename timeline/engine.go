package timeline

import "math"

// seekEpsilon is the tolerance under which two seek targets are the same position.
const seekEpsilon = 1e-6

// session holds the arguments of the last StartOperation call.
type session struct {
	videoLength    float64
	minDuration    float64
	maxDuration    float64
	framesPerCycle int
}

// Engine is the trim timeline engine. It wires the geometry, range controller,
// panning machine, position sync and thumbnail planner together and is the only
// type hosts talk to.
type Engine struct {
	geom     *Geometry
	ranges   *RangeController
	panning  PanningMachine
	position PositionSync
	planner  *Planner
	playback Playback

	started  bool
	session  session
	clampEnd bool

	seekToken   uint64
	seekPending bool
	seekTarget  float64
	lastTime    float64
}

// New returns an engine. frames and playback may be nil; operations that need
// them become no-ops.
func New(cfg GeometryConfig, frames FrameSource, playback Playback) *Engine {
	return &Engine{
		geom:     NewGeometry(cfg),
		ranges:   NewRangeController(cfg.StripWidth(), cfg.TrimmerScale()),
		planner:  NewPlanner(frames),
		playback: playback,
		lastTime: math.NaN(),
	}
}

// StartOperation (re)initializes the engine for a video of videoLength seconds.
func (e *Engine) StartOperation(videoLength, minDuration, maxDuration float64, framesPerCycle int) Events {
	e.started = true
	e.session = session{videoLength, minDuration, maxDuration, framesPerCycle}
	return e.resetData()
}

// Resize rebuilds the geometry for a new trimmer size and restarts the
// current session, if any.
func (e *Engine) Resize(cfg GeometryConfig) Events {
	e.geom = NewGeometry(cfg)
	e.ranges = NewRangeController(cfg.StripWidth(), cfg.TrimmerScale())
	if !e.started {
		return nil
	}
	return e.resetData()
}

func (e *Engine) resetData() Events {
	events := e.planner.Cancel()
	s := e.session

	e.geom.ResetHandles()
	events = append(events, e.ranges.Reset(s.videoLength, s.minDuration, s.maxDuration, s.framesPerCycle)...)

	minDuration, maxDuration := e.ranges.Durations()
	if maxDuration > 0 {
		e.geom.SetMinimumScale(minDuration / maxDuration)
	} else {
		e.geom.SetMinimumScale(0)
	}
	e.clampEnd = maxDuration >= e.ranges.VideoLength()
	e.position.Reset()

	r := e.ranges.CurrentRange()
	layout := e.ranges.Layout()
	if layout.DelayBetweenFrames > 0 {
		events = append(events, e.planner.Request(Window{Start: 0, Finish: r.Finish, Step: layout.DelayBetweenFrames})...)
	}
	return events
}

// CurrentTrimRange returns the selected range.
func (e *Engine) CurrentTrimRange() TrimRange {
	return e.ranges.CurrentRange()
}

// UpdatePositionFromPlayback feeds the current playback time. While an input
// source owns the timeline playback is paused and ticks are ignored. When the
// trim finish is reached a BoundaryReached event is returned and playback is
// sent back to the trim start.
func (e *Engine) UpdatePositionFromPlayback(seconds float64) Events {
	e.lastTime = seconds
	if !e.started || e.panning.Target().Active() {
		return nil
	}
	r := e.ranges.CurrentRange()
	res := e.position.Advance(seconds, r, e.ranges.Layout().DelayBetweenFrames, e.geom.VisibleAreaWidth())
	if !res.Boundary {
		return nil
	}
	events := Events{{Kind: BoundaryReached, Range: r}}
	return append(events, e.seek(r.Start)...)
}

// PlaybackFinished handles the player reaching the end of the item: playback
// restarts from the trim start.
func (e *Engine) PlaybackFinished() Events {
	if !e.started {
		return nil
	}
	events := e.seek(e.ranges.CurrentRange().Start)
	e.position.Reset()
	return append(events, e.play()...)
}

// SeekCompleted acknowledges a seek issued with token. It returns false for a
// stale token from a superseded seek.
func (e *Engine) SeekCompleted(token uint64) bool {
	if token != e.seekToken || !e.seekPending {
		return false
	}
	e.seekPending = false
	e.lastTime = e.seekTarget
	return true
}

// HandlePan applies a handle drag gesture. translation is the horizontal
// distance from where the gesture began.
func (e *Engine) HandlePan(side HandleSide, phase GesturePhase, translation float64) Events {
	var events Events
	if t, ok := e.panning.Gesture(side, phase); ok {
		events = append(events, e.transition(t)...)
	}
	if !e.started {
		return events
	}

	switch phase {
	case GestureBegan:
		e.geom.BeginDrag(side)
	case GestureChanged:
		events = append(events, e.dragHandle(side, translation)...)
	default:
		events = append(events, e.settle()...)
	}
	return events
}

func (e *Engine) dragHandle(side HandleSide, translation float64) Events {
	scale := e.ranges.trimmerScale
	var events Events
	if side == LeftHandle {
		leading := e.geom.DragLeft(translation)
		events = e.ranges.SetFromLeftHandle(leading / scale)
	} else {
		leading := e.geom.DragRight(translation)
		events = e.ranges.SetFromRightHandle(leading / scale)
	}
	e.position.Reset()

	r := e.ranges.CurrentRange()
	events = append(events, Event{Kind: HandleMoved, Range: r, Side: side})
	events = append(events, e.planner.Plan(false, r.Start, r.Finish, e.ranges.VideoLength(), e.ranges.Layout().DelayBetweenFrames)...)

	// Preview the edge being dragged.
	edge := r.Start
	if side == RightHandle {
		edge = r.Finish
	}
	return append(events, e.seek(edge)...)
}

// ScrollWillBeginDragging hands the timeline to the strip scroller.
func (e *Engine) ScrollWillBeginDragging() Events {
	t, ok := e.panning.ScrollWillBeginDragging()
	if !ok {
		return nil
	}
	return e.transition(t)
}

// ScrollDidScroll applies a new strip scroll offset. The offset is clamped to
// the scrollable extent and both range ends are recomputed.
func (e *Engine) ScrollDidScroll(offset float64) Events {
	if !e.started {
		return nil
	}
	offset = clamp(offset, 0, e.ranges.MaxScrollOffset())
	e.ranges.SetScrollOffset(offset)
	events := e.ranges.RecomputeFromScroll()
	e.position.Reset()
	r := e.ranges.CurrentRange()
	return append(events, e.planner.Plan(false, r.Start, r.Finish, e.ranges.VideoLength(), e.ranges.Layout().DelayBetweenFrames)...)
}

// ScrollWillEndDragging releases the timeline from the scroller.
func (e *Engine) ScrollWillEndDragging() Events {
	t, ok := e.panning.ScrollWillEndDragging()
	if !ok {
		return nil
	}
	return e.transition(t)
}

// ScrollDidEndDecelerating requests thumbnails for the settled range.
func (e *Engine) ScrollDidEndDecelerating() Events {
	if !e.started {
		return nil
	}
	return e.settle()
}

// SetPanningTarget forces a panning target, e.g. PanOther for a host-level
// gesture the engine does not model.
func (e *Engine) SetPanningTarget(target PanningTarget) Events {
	t, ok := e.panning.Set(target)
	if !ok {
		return nil
	}
	return e.transition(t)
}

func (e *Engine) settle() Events {
	r := e.ranges.CurrentRange()
	return e.planner.Plan(true, r.Start, r.Finish, e.ranges.VideoLength(), e.ranges.Layout().DelayBetweenFrames)
}

func (e *Engine) transition(t Transition) Events {
	events := Events{{Kind: PanningTargetChanged, Target: t.To}}
	switch {
	case t.Pauses():
		if e.playback != nil {
			e.playback.Pause()
			events = append(events, Event{Kind: PlaybackPaused})
		}
	case t.Resumes():
		if e.started {
			events = append(events, e.seek(e.ranges.CurrentRange().Start)...)
			e.position.Reset()
			events = append(events, Event{Kind: IndicatorReset, Range: e.ranges.CurrentRange()})
		}
		events = append(events, e.play()...)
	}
	return events
}

// seek sends playback to seconds unless an identical seek is in flight or the
// player already sits there.
func (e *Engine) seek(seconds float64) Events {
	if e.playback == nil {
		return nil
	}
	if e.seekPending && math.Abs(e.seekTarget-seconds) < seekEpsilon {
		return nil
	}
	if !e.seekPending && math.Abs(e.lastTime-seconds) < seekEpsilon {
		return nil
	}
	e.seekToken++
	e.seekPending = true
	e.seekTarget = seconds
	e.playback.Seek(e.seekToken, seconds)
	return Events{{Kind: PlaybackSeeked, Seconds: seconds}}
}

func (e *Engine) play() Events {
	if e.playback == nil {
		return nil
	}
	e.playback.Play()
	return Events{{Kind: PlaybackResumed}}
}

// PanningTarget returns the current panning target.
func (e *Engine) PanningTarget() PanningTarget {
	return e.panning.Target()
}

// IndicatorOffset returns the indicator distance from the left handle's inner edge.
func (e *Engine) IndicatorOffset() float64 {
	return e.position.Offset()
}

// Layout returns the current thumbnail layout.
func (e *Engine) Layout() Layout {
	return e.ranges.Layout()
}

// Geometry returns the handle registry.
func (e *Engine) Geometry() *Geometry {
	return e.geom
}

// ScrollOffset returns the strip scroll offset.
func (e *Engine) ScrollOffset() float64 {
	return e.ranges.ScrollOffset()
}

// MaxScrollOffset returns the largest accepted scroll offset.
func (e *Engine) MaxScrollOffset() float64 {
	return e.ranges.MaxScrollOffset()
}

// VideoLength returns the session's video length.
func (e *Engine) VideoLength() float64 {
	return e.ranges.VideoLength()
}

// PendingWindow returns the last requested thumbnail window and whether it is
// still pending.
func (e *Engine) PendingWindow() (Window, bool) {
	return e.planner.Current()
}

// CellWidth returns the width of thumbnail cell index. When the whole video
// fits in the trim window the last cell is cut to the trimmer edge.
func (e *Engine) CellWidth(index int) float64 {
	layout := e.ranges.Layout()
	perFrame := layout.PerFrameWidth()
	trimmerWidth := e.geom.Config().TrimmerWidth
	if e.clampEnd && perFrame > 0 && perFrame*float64(index+1) > trimmerWidth {
		return math.Mod(trimmerWidth, perFrame)
	}
	return perFrame
}
