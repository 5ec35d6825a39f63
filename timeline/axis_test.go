package timeline

import (
	"math"
	"testing"
)

func TestLayoutRoundTrip(t *testing.T) {
	layout := Layout{FramesPerCycle: 7, NumberOfThumbnails: 42, DelayBetweenFrames: 10.0 / 7, StripWidth: 350}

	for _, px := range []float64{0, 0.5, 1, 17.25, 350, 1234.5, 2100} {
		got := layout.SecondsToPixels(layout.PixelsToSeconds(px))
		if px == 0 {
			if got != 0 {
				t.Fatalf("round trip of 0 = %v", got)
			}
			continue
		}
		if rel := math.Abs(got-px) / px; rel > 1e-6 {
			t.Fatalf("round trip of %v = %v (relative error %g)", px, got, rel)
		}
	}
}

func TestPixelsToSecondsFormula(t *testing.T) {
	layout := Layout{FramesPerCycle: 10, NumberOfThumbnails: 60, DelayBetweenFrames: 1, StripWidth: 100}
	// perFrame = 10, total = 600, 50px = 50/600 of 60s
	if got := layout.PixelsToSeconds(50); math.Abs(got-5) > 1e-9 {
		t.Fatalf("PixelsToSeconds(50) = %v, want 5", got)
	}
	if got := layout.SecondsToPixels(5); math.Abs(got-50) > 1e-9 {
		t.Fatalf("SecondsToPixels(5) = %v, want 50", got)
	}
}

func TestPixelsToSecondsFailsSafe(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{"no thumbnails", Layout{FramesPerCycle: 7, NumberOfThumbnails: 0, DelayBetweenFrames: 1, StripWidth: 100}},
		{"negative thumbnails", Layout{FramesPerCycle: 7, NumberOfThumbnails: -3, DelayBetweenFrames: 1, StripWidth: 100}},
		{"no frames per cycle", Layout{FramesPerCycle: 0, NumberOfThumbnails: 10, DelayBetweenFrames: 1, StripWidth: 100}},
		{"zero strip", Layout{FramesPerCycle: 7, NumberOfThumbnails: 10, DelayBetweenFrames: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout.PixelsToSeconds(40); got != 0 {
				t.Fatalf("PixelsToSeconds = %v, want 0", got)
			}
			if got := tt.layout.SecondsToPixels(4); got != 0 {
				t.Fatalf("SecondsToPixels = %v, want 0", got)
			}
		})
	}
}

func TestHandleAbsoluteSecondsScalesScroll(t *testing.T) {
	layout := Layout{FramesPerCycle: 10, NumberOfThumbnails: 60, DelayBetweenFrames: 1, StripWidth: 100}

	got := layout.HandleAbsoluteSeconds(20, 100, 0.5)
	// 20px -> 2s, 100px scroll * 0.5 -> 50px -> 5s
	if math.Abs(got-7) > 1e-9 {
		t.Fatalf("HandleAbsoluteSeconds = %v, want 7", got)
	}
}
