package timeline

// Window is a span of video time for which thumbnails should be resident.
type Window struct {
	Start  float64
	Finish float64
	// Step is the time between consecutive thumbnails.
	Step float64
}

// Empty reports whether the window covers no thumbnails.
func (w Window) Empty() bool {
	return w.Step <= 0 || w.Finish < w.Start
}

// FrameSource materializes thumbnails asynchronously.
// RequestFrames supersedes any earlier request; CancelPending drops in-flight work.
type FrameSource interface {
	RequestFrames(w Window)
	CancelPending()
}

// Playback controls the video player. Calls must not block.
// Seek completion is reported back through Engine.SeekCompleted with the same token.
type Playback interface {
	Seek(token uint64, seconds float64)
	Play()
	Pause()
}
