package timeline

import "testing"

func newTestGeometry() *Geometry {
	g := NewGeometry(GeometryConfig{TrimmerWidth: 100, HandleWidth: 2, IndicatorWidth: 1})
	g.SetMinimumScale(0.3)
	return g
}

func TestGeometryDefaults(t *testing.T) {
	cfg := GeometryConfig{TrimmerWidth: 80, HorizonInset: 10}
	if cfg.StripWidth() != 100 {
		t.Fatalf("StripWidth = %v, want 100", cfg.StripWidth())
	}
	if cfg.TrimmerScale() != 0.8 {
		t.Fatalf("TrimmerScale = %v, want 0.8", cfg.TrimmerScale())
	}
	if (GeometryConfig{}).TrimmerScale() != 1 {
		t.Fatalf("zero config should fall back to scale 1")
	}
}

func TestDragLeftStopsAtMinimumDistance(t *testing.T) {
	g := newTestGeometry()

	g.BeginDrag(LeftHandle)
	got := g.DragLeft(500)
	// right handle origin is 98, minimum distance is 30
	if got != 68 {
		t.Fatalf("DragLeft(500) = %v, want 68", got)
	}
	if got := g.DragLeft(-500); got != 0 {
		t.Fatalf("DragLeft(-500) = %v, want 0", got)
	}
}

func TestDragRightStopsAtMinimumDistance(t *testing.T) {
	g := newTestGeometry()

	g.BeginDrag(LeftHandle)
	g.DragLeft(20)

	g.BeginDrag(RightHandle)
	got := g.DragRight(-500)
	// left origin 20 + handle 2 + distance 30
	if got != 52 {
		t.Fatalf("DragRight(-500) = %v, want 52", got)
	}
	if got := g.DragRight(500); got != 100 {
		t.Fatalf("DragRight(500) = %v, want 100", got)
	}
}

func TestDragUsesBaseFromBegin(t *testing.T) {
	g := newTestGeometry()

	g.BeginDrag(LeftHandle)
	g.DragLeft(10)
	g.DragLeft(15)
	if g.LeftHandleX() != 15 {
		t.Fatalf("translation must be relative to the drag base, got %v", g.LeftHandleX())
	}

	g.BeginDrag(LeftHandle)
	g.DragLeft(5)
	if g.LeftHandleX() != 20 {
		t.Fatalf("second drag should start from 15, got %v", g.LeftHandleX())
	}
}

func TestVisibleAreaAndHitTest(t *testing.T) {
	g := newTestGeometry()
	// 98 - (0 + 2) - 1
	if got := g.VisibleAreaWidth(); got != 95 {
		t.Fatalf("VisibleAreaWidth = %v, want 95", got)
	}

	tests := []struct {
		x    float64
		side HandleSide
		ok   bool
	}{
		{0, LeftHandle, true},
		{1.5, LeftHandle, true},
		{50, LeftHandle, false},
		{98, RightHandle, true},
		{99.9, RightHandle, true},
	}
	for _, tt := range tests {
		side, ok := g.HandleAt(tt.x)
		if ok != tt.ok || (ok && side != tt.side) {
			t.Errorf("HandleAt(%v) = %v, %v; want %v, %v", tt.x, side, ok, tt.side, tt.ok)
		}
	}
}
