package timeline

import (
	"math"
	"testing"
)

func TestResetClampsDurations(t *testing.T) {
	tests := []struct {
		name             string
		length, min, max float64
		wantMin, wantMax float64
	}{
		{"within bounds", 60, 3, 10, 3, 10},
		{"negative min", 60, -2, 10, 0, 10},
		{"min above length", 8, 12, 20, 8, 8},
		{"max above length", 8, 1, 20, 1, 8},
		{"max below min", 60, 5, 2, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewRangeController(100, 1)
			c.Reset(tt.length, tt.min, tt.max, 7)
			gotMin, gotMax := c.Durations()
			if gotMin != tt.wantMin || gotMax != tt.wantMax {
				t.Fatalf("Durations() = (%v, %v), want (%v, %v)", gotMin, gotMax, tt.wantMin, tt.wantMax)
			}
			r := c.CurrentRange()
			if r.Start != 0 || r.Finish != tt.wantMax {
				t.Fatalf("range = %+v, want (0, %v)", r, tt.wantMax)
			}
		})
	}
}

func TestResetIsIdempotent(t *testing.T) {
	c := NewRangeController(350, 0.8)
	c.Reset(60, 3, 10, 7)
	firstRange, firstLayout := c.CurrentRange(), c.Layout()

	c.SetFromLeftHandle(40)
	c.Reset(60, 3, 10, 7)

	if c.CurrentRange() != firstRange {
		t.Fatalf("range after second reset = %+v, want %+v", c.CurrentRange(), firstRange)
	}
	if c.Layout() != firstLayout {
		t.Fatalf("layout after second reset = %+v, want %+v", c.Layout(), firstLayout)
	}
	if want := int(math.Ceil(60 * 0.8 / (10.0 / 7))); firstLayout.NumberOfThumbnails != want {
		t.Fatalf("NumberOfThumbnails = %d, want %d", firstLayout.NumberOfThumbnails, want)
	}
}

func TestMutationsNotifyAndResetIndicator(t *testing.T) {
	c := NewRangeController(100, 1)
	c.Reset(60, 3, 10, 10)

	events := c.SetFromLeftHandle(c.Layout().SecondsToPixels(4))
	if len(events) != 2 || events[0].Kind != RangeChanged || events[1].Kind != IndicatorReset {
		t.Fatalf("unexpected events: %+v", events)
	}
	if got := events[0].Range.Start; math.Abs(got-4) > 1e-9 {
		t.Fatalf("notified start = %v, want 4", got)
	}
}

func TestHandlesClampToVideoBounds(t *testing.T) {
	c := NewRangeController(100, 1)
	c.Reset(60, 3, 10, 10)

	c.SetFromLeftHandle(-50)
	if got := c.CurrentRange().Start; got != 0 {
		t.Fatalf("start = %v, want 0", got)
	}
	c.SetFromRightHandle(c.Layout().SecondsToPixels(500))
	if got := c.CurrentRange().Finish; got != 60 {
		t.Fatalf("finish = %v, want 60", got)
	}
}

func TestScenarioSixtySecondVideo(t *testing.T) {
	c := NewRangeController(100, 1)
	c.Reset(60, 3, 10, 7)
	if r := c.CurrentRange(); r != (TrimRange{0, 10}) {
		t.Fatalf("after reset range = %+v, want (0, 10)", r)
	}

	layout := c.Layout()
	c.SetFromLeftHandle(layout.SecondsToPixels(2))
	if r := c.CurrentRange(); math.Abs(r.Start-2) > 1e-9 || r.Finish != 10 {
		t.Fatalf("after left drag range = %+v, want (2, 10)", r)
	}

	c.SetFromRightHandle(layout.SecondsToPixels(25))
	r := c.CurrentRange()
	if math.Abs(r.Start-2) > 1e-9 || math.Abs(r.Finish-25) > 1e-9 {
		t.Fatalf("after right drag range = %+v, want (2, 25)", r)
	}

	var p PositionSync
	res := p.Advance(r.Finish, r, layout.DelayBetweenFrames, 80)
	if !res.Boundary || res.Offset != 0 {
		t.Fatalf("Advance(25) = %+v, want boundary at offset 0", res)
	}
}

func TestRecomputeFromScroll(t *testing.T) {
	c := NewRangeController(100, 1)
	c.Reset(60, 0, 10, 10)

	c.SetScrollOffset(c.Layout().SecondsToPixels(5))
	c.RecomputeFromScroll()
	r := c.CurrentRange()
	if math.Abs(r.Start-5) > 1e-9 || math.Abs(r.Finish-15) > 1e-9 {
		t.Fatalf("range after scroll = %+v, want (5, 15)", r)
	}
}

func TestMaxScrollOffset(t *testing.T) {
	c := NewRangeController(100, 1)
	c.Reset(60, 0, 10, 10)
	// 60s is 600px, strip shows 100px
	if got := c.MaxScrollOffset(); math.Abs(got-500) > 1e-9 {
		t.Fatalf("MaxScrollOffset = %v, want 500", got)
	}

	c.Reset(5, 0, 10, 10)
	if got := c.MaxScrollOffset(); got != 0 {
		t.Fatalf("MaxScrollOffset for short video = %v, want 0", got)
	}
}
