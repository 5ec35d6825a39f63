package timeline

// SyncResult is the outcome of a PositionSync.Advance call.
type SyncResult struct {
	// Offset is the indicator distance from the left handle's inner edge.
	Offset float64
	// Boundary is true when playback reached the trim finish.
	Boundary bool
}

// PositionSync converts playback time into an indicator offset.
// Advance is called at playback tick rate and does not allocate.
type PositionSync struct {
	offset float64
}

// Advance maps seconds into the indicator offset for the given range.
// visibleWidth is the space between the handles minus the indicator width.
func (p *PositionSync) Advance(seconds float64, r TrimRange, delay, visibleWidth float64) SyncResult {
	if seconds >= r.Finish {
		p.offset = 0
		return SyncResult{Offset: 0, Boundary: true}
	}
	if r.Start >= r.Finish || delay == 0 {
		p.offset = 0
		return SyncResult{}
	}
	offset := visibleWidth * (seconds - r.Start) / (r.Finish - r.Start)
	if offset < 0 {
		offset = 0
	}
	p.offset = offset
	return SyncResult{Offset: offset}
}

// Reset snaps the indicator to the left handle.
func (p *PositionSync) Reset() {
	p.offset = 0
}

// Offset returns the last computed indicator offset.
func (p *PositionSync) Offset() float64 {
	return p.offset
}
