package timeline

import (
	"math"
	"testing"
)

type fakeFrames struct {
	requests []Window
	cancels  int
}

func (f *fakeFrames) RequestFrames(w Window) { f.requests = append(f.requests, w) }
func (f *fakeFrames) CancelPending()         { f.cancels++ }

func TestPlanWindow(t *testing.T) {
	tests := []struct {
		name                        string
		start, finish, length, step float64
		want                        Window
	}{
		{"clamped lower", 5, 12, 60, 0.5, Window{0, 17, 0.5}},
		{"interior", 20, 30, 60, 1, Window{10, 40, 1}},
		{"clamped upper", 50, 58, 60, 1, Window{40, 60, 1}},
		{"snapped to grid", 7.3, 9.1, 60, 0.5, Window{2, 14.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanWindow(tt.start, tt.finish, tt.length, tt.step)
			if math.Abs(got.Start-tt.want.Start) > 1e-9 || math.Abs(got.Finish-tt.want.Finish) > 1e-9 || got.Step != tt.want.Step {
				t.Fatalf("PlanWindow = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanWindowZeroDelay(t *testing.T) {
	if w := PlanWindow(5, 12, 60, 0); !w.Empty() {
		t.Fatalf("expected empty window, got %+v", w)
	}
}

func TestPlannerCancelsWhileMoving(t *testing.T) {
	frames := &fakeFrames{}
	p := NewPlanner(frames)

	events := p.Plan(true, 5, 12, 60, 0.5)
	if !events.Has(FramesRequested) || len(frames.requests) != 1 {
		t.Fatalf("settled plan should request frames, got %+v", events)
	}

	events = p.Plan(false, 6, 13, 60, 0.5)
	if !events.Has(FramesCancelled) || frames.cancels != 1 {
		t.Fatalf("moving plan should cancel, got %+v", events)
	}
	if _, pending := p.Current(); pending {
		t.Fatalf("window still pending after cancel")
	}

	// nothing left to cancel
	if events := p.Plan(false, 7, 14, 60, 0.5); len(events) != 0 || frames.cancels != 1 {
		t.Fatalf("second cancel should be a no-op, got %+v", events)
	}
}

func TestPlannerSupersedes(t *testing.T) {
	frames := &fakeFrames{}
	p := NewPlanner(frames)

	p.Plan(true, 5, 12, 60, 0.5)
	events := p.Plan(true, 30, 40, 60, 0.5)

	if frames.cancels != 1 || len(frames.requests) != 2 {
		t.Fatalf("cancels=%d requests=%d, want 1 and 2", frames.cancels, len(frames.requests))
	}
	if len(events) != 2 || events[0].Kind != FramesCancelled || events[1].Kind != FramesRequested {
		t.Fatalf("unexpected events: %+v", events)
	}
	if w, _ := p.Current(); w.Start != 25 || w.Finish != 45 {
		t.Fatalf("current window = %+v, want [25, 45]", w)
	}
}

func TestPlannerWithoutSource(t *testing.T) {
	p := NewPlanner(nil)
	if events := p.Plan(true, 5, 12, 60, 0.5); events != nil {
		t.Fatalf("expected no-op, got %+v", events)
	}
}
