package timeline

// Layout holds the thumbnail strip parameters that drive time <-> pixel conversion.
type Layout struct {
	// FramesPerCycle is the number of thumbnails that fit across one strip width.
	FramesPerCycle int
	// NumberOfThumbnails is the total number of thumbnail cells in the strip.
	NumberOfThumbnails int
	// DelayBetweenFrames is the time in seconds covered by a single thumbnail.
	DelayBetweenFrames float64
	// StripWidth is the visible width of the scrollable strip in pixels.
	StripWidth float64
}

// PerFrameWidth returns the width of a single thumbnail cell.
func (l Layout) PerFrameWidth() float64 {
	if l.FramesPerCycle <= 0 {
		return 0
	}
	return l.StripWidth / float64(l.FramesPerCycle)
}

// TotalWidth returns the width of all thumbnail cells laid end to end.
func (l Layout) TotalWidth() float64 {
	return l.PerFrameWidth() * float64(l.NumberOfThumbnails)
}

func (l Layout) valid() bool {
	return l.NumberOfThumbnails > 0 && l.FramesPerCycle > 0 && l.StripWidth > 0
}

// PixelsToSeconds converts a distance along the strip into seconds.
// Returns 0 when the layout has no thumbnails.
func (l Layout) PixelsToSeconds(pixels float64) float64 {
	if !l.valid() {
		return 0
	}
	ratio := pixels / l.TotalWidth()
	return float64(l.NumberOfThumbnails) * l.DelayBetweenFrames * ratio
}

// SecondsToPixels is the inverse of PixelsToSeconds.
func (l Layout) SecondsToPixels(seconds float64) float64 {
	if !l.valid() || l.DelayBetweenFrames <= 0 {
		return 0
	}
	span := float64(l.NumberOfThumbnails) * l.DelayBetweenFrames
	return seconds / span * l.TotalWidth()
}

// HandleAbsoluteSeconds returns the video time under a handle. The handle's own
// leading distance lives in unscaled strip pixels while the scroll offset lives in
// the full strip, so the scroll part is scaled by trimmerScale before conversion.
func (l Layout) HandleAbsoluteSeconds(leading, scrollOffset, trimmerScale float64) float64 {
	return l.PixelsToSeconds(leading) + l.PixelsToSeconds(scrollOffset*trimmerScale)
}
