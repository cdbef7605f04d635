package sorter

import (
	"github.com/matzehuels/isosort/pkg/geom"
	"github.com/matzehuels/isosort/pkg/iso"
)

// Transform is the host-side source of an object's geometry.
type Transform interface {
	// Changed reports whether the geometry moved since the previous call
	// and resets the flag.
	Changed() bool
	// Shape returns the current sorting anchors.
	Shape() iso.Shape
	// Footprint returns the current screen-space bounds used to prune pairs
	// that cannot overlap.
	Footprint() geom.Rect
}

// Renderer receives the draw order computed for an object each frame.
type Renderer interface {
	SetSortingOrder(order int)
}

// SecondaryRenderer is implemented by renderers that draw a paired child
// layer. The child receives order+1, which the step of 2 between objects
// leaves free.
type SecondaryRenderer interface {
	Renderer
	SetSecondaryOrder(order int)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(order int)

// SetSortingOrder calls f(order).
func (f RendererFunc) SetSortingOrder(order int) { f(order) }

// Fixed is a Transform whose geometry never changes. It suits static
// scenery and tests.
type Fixed struct {
	S iso.Shape
	F geom.Rect
}

// FixedPoint returns a Fixed point transform at p with a footprint
// extending pad in each direction.
func FixedPoint(p geom.Vec2, pad float64) Fixed {
	s := iso.Point(p)
	return Fixed{S: s, F: s.Bounds().Expand(pad)}
}

// FixedSegment returns a Fixed segment transform with a footprint covering
// both anchors plus pad.
func FixedSegment(p1, p2 geom.Vec2, pad float64) Fixed {
	s := iso.Segment(p1, p2)
	return Fixed{S: s, F: s.Bounds().Expand(pad)}
}

// Changed always reports false.
func (Fixed) Changed() bool { return false }

// Shape returns f.S.
func (f Fixed) Shape() iso.Shape { return f.S }

// Footprint returns f.F.
func (f Fixed) Footprint() geom.Rect { return f.F }
