package timeline

import "math"

// TrimRange is the selected (Start, Finish) pair in seconds.
type TrimRange struct {
	Start  float64
	Finish float64
}

// Duration returns Finish - Start.
func (r TrimRange) Duration() float64 {
	return r.Finish - r.Start
}

// RangeController owns the trim range. Every write to the range goes through
// Reset, SetFromLeftHandle, SetFromRightHandle or RecomputeFromScroll.
type RangeController struct {
	trimmerScale float64
	stripWidth   float64

	videoLength float64
	minDuration float64
	maxDuration float64

	layout       Layout
	scrollOffset float64
	leftLeading  float64
	rightLeading float64

	rng TrimRange
}

// NewRangeController returns a controller for a strip of the given width.
// trimmerScale is the ratio of trimmer view width to strip width.
func NewRangeController(stripWidth, trimmerScale float64) *RangeController {
	if trimmerScale <= 0 {
		trimmerScale = 1
	}
	return &RangeController{stripWidth: stripWidth, trimmerScale: trimmerScale}
}

// DelayBetweenFrames returns the seconds covered by one thumbnail when
// framesPerCycle thumbnails span maxDuration.
func DelayBetweenFrames(maxDuration float64, framesPerCycle int) float64 {
	if framesPerCycle <= 0 || maxDuration <= 0 {
		return 0
	}
	return maxDuration / float64(framesPerCycle)
}

// NumberOfExpectedThumbnails returns ceil(videoLength*trimmerScale/delay).
func NumberOfExpectedThumbnails(videoLength, trimmerScale, delay float64) int {
	if delay <= 0 || videoLength <= 0 {
		return 0
	}
	return int(math.Ceil(videoLength * trimmerScale / delay))
}

// Reset starts a new trimming session. Durations are clamped into the video
// bounds, the range becomes (0, maxDuration) and the thumbnail layout is rebuilt.
func (c *RangeController) Reset(videoLength, minDuration, maxDuration float64, framesPerCycle int) Events {
	if videoLength < 0 {
		videoLength = 0
	}
	c.videoLength = videoLength
	c.minDuration = clamp(minDuration, 0, videoLength)
	c.maxDuration = clamp(maxDuration, c.minDuration, videoLength)

	delay := DelayBetweenFrames(c.maxDuration, framesPerCycle)
	c.layout = Layout{
		FramesPerCycle:     framesPerCycle,
		DelayBetweenFrames: delay,
		NumberOfThumbnails: NumberOfExpectedThumbnails(videoLength, c.trimmerScale, delay),
		StripWidth:         c.stripWidth,
	}

	c.scrollOffset = 0
	c.leftLeading = 0
	c.rightLeading = c.layout.SecondsToPixels(c.maxDuration)
	c.rng = TrimRange{Start: 0, Finish: c.maxDuration}
	return c.changed()
}

// SetFromLeftHandle derives Start from the left handle's unscaled leading offset.
// The minimum gap to Finish is the drag geometry's responsibility.
func (c *RangeController) SetFromLeftHandle(leading float64) Events {
	c.leftLeading = leading
	c.rng.Start = clamp(c.handleSeconds(leading), 0, c.videoLength)
	return c.changed()
}

// SetFromRightHandle derives Finish from the right handle's unscaled leading offset.
func (c *RangeController) SetFromRightHandle(leading float64) Events {
	c.rightLeading = leading
	c.rng.Finish = clamp(c.handleSeconds(leading), 0, c.videoLength)
	return c.changed()
}

// SetScrollOffset records the strip scroll offset without touching the range.
func (c *RangeController) SetScrollOffset(offset float64) {
	c.scrollOffset = offset
}

// RecomputeFromScroll re-derives both ends from the last handle offsets and the
// current scroll offset.
func (c *RangeController) RecomputeFromScroll() Events {
	c.rng.Start = math.Max(0, c.handleSeconds(c.leftLeading))
	c.rng.Finish = math.Min(c.videoLength, c.handleSeconds(c.rightLeading))
	return c.changed()
}

// CurrentRange returns the trim range.
func (c *RangeController) CurrentRange() TrimRange {
	return c.rng
}

// Layout returns the thumbnail layout computed by the last Reset.
func (c *RangeController) Layout() Layout {
	return c.layout
}

// VideoLength returns the session's video length.
func (c *RangeController) VideoLength() float64 {
	return c.videoLength
}

// Durations returns the clamped minimum and maximum trim durations.
func (c *RangeController) Durations() (minDuration, maxDuration float64) {
	return c.minDuration, c.maxDuration
}

// ScrollOffset returns the last recorded scroll offset.
func (c *RangeController) ScrollOffset() float64 {
	return c.scrollOffset
}

// MaxScrollOffset returns the largest scroll offset that keeps a full strip
// width inside the video.
func (c *RangeController) MaxScrollOffset() float64 {
	overflow := c.layout.SecondsToPixels(c.videoLength) - c.stripWidth
	if overflow <= 0 {
		return 0
	}
	return overflow / c.trimmerScale
}

func (c *RangeController) handleSeconds(leading float64) float64 {
	return c.layout.HandleAbsoluteSeconds(leading, c.scrollOffset, c.trimmerScale)
}

func (c *RangeController) changed() Events {
	return Events{
		{Kind: RangeChanged, Range: c.rng},
		{Kind: IndicatorReset, Range: c.rng},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
