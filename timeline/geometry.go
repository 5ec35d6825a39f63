package timeline

import "math"

// GeometryConfig sizes the trimmer view laid over the strip.
type GeometryConfig struct {
	// TrimmerWidth is the width of the trimmer view in pixels.
	TrimmerWidth float64
	// HorizonInset is the inset of the trimmer view on each side of the strip.
	HorizonInset float64
	// HandleWidth is the width of each handle.
	HandleWidth float64
	// IndicatorWidth is the width of the position indicator.
	IndicatorWidth float64
}

// StripWidth returns the width of the scrollable strip.
func (c GeometryConfig) StripWidth() float64 {
	return c.TrimmerWidth + 2*c.HorizonInset
}

// TrimmerScale returns the ratio of trimmer width to strip width.
func (c GeometryConfig) TrimmerScale() float64 {
	strip := c.StripWidth()
	if strip <= 0 || c.TrimmerWidth <= 0 {
		return 1
	}
	return c.TrimmerWidth / strip
}

// Geometry is the handle registry: the positions of both handles inside the
// trimmer view. The left constraint is the left handle's leading offset (≥ 0);
// the right constraint is the trailing offset of the right edge (≤ 0).
type Geometry struct {
	cfg GeometryConfig

	minDistance float64
	left        float64
	right       float64
	leftBase    float64
	rightBase   float64
}

// NewGeometry returns a geometry with both handles at the trimmer edges.
func NewGeometry(cfg GeometryConfig) *Geometry {
	return &Geometry{cfg: cfg}
}

// Config returns the sizing the geometry was built with.
func (g *Geometry) Config() GeometryConfig {
	return g.cfg
}

// SetMinimumScale sets the minimum handle distance as a fraction of the trimmer width.
func (g *Geometry) SetMinimumScale(scale float64) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 0
	}
	g.minDistance = math.Max(0, g.cfg.TrimmerWidth*scale)
}

// MinimumDistance returns the enforced distance between the handle origins.
func (g *Geometry) MinimumDistance() float64 {
	return g.minDistance
}

// ResetHandles moves both handles back to the trimmer edges.
func (g *Geometry) ResetHandles() {
	g.left, g.right = 0, 0
	g.leftBase, g.rightBase = 0, 0
}

// BeginDrag captures the drag base for side.
func (g *Geometry) BeginDrag(side HandleSide) {
	if side == LeftHandle {
		g.leftBase = g.left
	} else {
		g.rightBase = g.right
	}
}

// DragLeft moves the left handle by translation from its drag base and returns
// the new leading offset. The handle never gets closer than the minimum
// distance to the right handle.
func (g *Geometry) DragLeft(translation float64) float64 {
	limit := math.Max(g.RightHandleX()-g.minDistance, 0)
	g.left = math.Min(math.Max(0, g.leftBase+translation), limit)
	return g.left
}

// DragRight moves the right handle by translation from its drag base and
// returns the new leading offset of the trimmer's right edge.
func (g *Geometry) DragRight(translation float64) float64 {
	limit := math.Min(0, -(g.cfg.TrimmerWidth - g.left - g.cfg.HandleWidth - g.minDistance))
	g.right = math.Max(math.Min(0, g.rightBase+translation), limit)
	return g.RightLeading()
}

// LeftHandleX returns the origin of the left handle.
func (g *Geometry) LeftHandleX() float64 {
	return g.left
}

// RightHandleX returns the origin of the right handle.
func (g *Geometry) RightHandleX() float64 {
	return g.cfg.TrimmerWidth + g.right - g.cfg.HandleWidth
}

// RightLeading returns the distance from the trimmer origin to its right edge.
func (g *Geometry) RightLeading() float64 {
	return g.cfg.TrimmerWidth + g.right
}

// IndicatorOrigin returns the x position the indicator offset is measured from.
func (g *Geometry) IndicatorOrigin() float64 {
	return g.left + g.cfg.HandleWidth
}

// VisibleAreaWidth returns the room between the handles available to the indicator.
func (g *Geometry) VisibleAreaWidth() float64 {
	return g.RightHandleX() - (g.left + g.cfg.HandleWidth) - g.cfg.IndicatorWidth
}

// HandleAt returns the handle whose frame contains x, if any.
func (g *Geometry) HandleAt(x float64) (HandleSide, bool) {
	hw := g.cfg.HandleWidth
	if x >= g.left && x < g.left+hw {
		return LeftHandle, true
	}
	rx := g.RightHandleX()
	if x >= rx && x < rx+hw {
		return RightHandle, true
	}
	return LeftHandle, false
}
