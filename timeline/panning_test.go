package timeline

import "testing"

func TestPanningGestureTransitions(t *testing.T) {
	tests := []struct {
		name  string
		side  HandleSide
		phase GesturePhase
		want  PanningTarget
	}{
		{"left began", LeftHandle, GestureBegan, PanLeftHandle},
		{"left changed", LeftHandle, GestureChanged, PanLeftHandle},
		{"right began", RightHandle, GestureBegan, PanRightHandle},
		{"ended", RightHandle, GestureEnded, PanNone},
		{"cancelled", LeftHandle, GestureCancelled, PanNone},
		{"failed", LeftHandle, GestureFailed, PanNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := PanningMachine{target: PanScroller}
			m.Gesture(tt.side, tt.phase)
			if m.Target() != tt.want {
				t.Fatalf("target = %v, want %v", m.Target(), tt.want)
			}
		})
	}
}

func TestPanningReentryIsSilent(t *testing.T) {
	var m PanningMachine
	if _, ok := m.Gesture(LeftHandle, GestureBegan); !ok {
		t.Fatalf("expected transition from none to left handle")
	}
	if _, ok := m.Gesture(LeftHandle, GestureChanged); ok {
		t.Fatalf("re-entering left handle must not report a transition")
	}
	if _, ok := m.ScrollWillEndDragging(); !ok {
		t.Fatalf("expected transition back to none")
	}
	if _, ok := m.ScrollWillEndDragging(); ok {
		t.Fatalf("re-entering none must not report a transition")
	}
}

func TestTransitionPlaybackCoupling(t *testing.T) {
	tests := []struct {
		from, to        PanningTarget
		pauses, resumes bool
	}{
		{PanNone, PanLeftHandle, true, false},
		{PanNone, PanScroller, true, false},
		{PanNone, PanOther, true, false},
		{PanLeftHandle, PanNone, false, true},
		{PanRightHandle, PanNone, false, true},
		{PanScroller, PanNone, false, true},
		{PanOther, PanNone, false, false},
		{PanLeftHandle, PanScroller, false, false},
	}
	for _, tt := range tests {
		tr := Transition{From: tt.from, To: tt.to}
		if tr.Pauses() != tt.pauses || tr.Resumes() != tt.resumes {
			t.Errorf("%v -> %v: pauses=%v resumes=%v, want %v %v", tt.from, tt.to, tr.Pauses(), tr.Resumes(), tt.pauses, tt.resumes)
		}
	}
}
