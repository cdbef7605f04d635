// Package geom provides the small amount of 2D geometry the sorter needs:
// screen-space vectors and axis-aligned footprint rectangles.
//
// Coordinates are screen space with Y pointing up, so a larger Y means an
// object sits further back in the isometric projection.
package geom

import (
	"fmt"
	"math"
)

// Vec2 is a point or displacement in screen space.
type Vec2 struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mid returns the midpoint of v and o.
func (v Vec2) Mid(o Vec2) Vec2 { return Vec2{(v.X + o.X) / 2, (v.Y + o.Y) / 2} }

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// Rect is an axis-aligned rectangle given by its inclusive min and max
// corners. The zero value is the degenerate rectangle at the origin.
type Rect struct {
	Min Vec2 `json:"min" toml:"min" yaml:"min"`
	Max Vec2 `json:"max" toml:"max" yaml:"max"`
}

// R builds a rectangle from its lower-left corner and size. Negative sizes
// are normalized so Min <= Max always holds.
func R(x, y, w, h float64) Rect {
	return Bounds(V(x, y), V(x+w, y+h))
}

// Bounds returns the smallest rectangle containing all points.
// It returns the zero Rect when called without points.
func Bounds(pts ...Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Center returns the rectangle's center point.
func (r Rect) Center() Vec2 { return r.Min.Mid(r.Max) }

// Intersects reports whether r and o overlap. Rectangles that only touch
// along an edge count as intersecting.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand grows r by d on every side; a negative d shrinks it, clamping at
// the center.
func (r Rect) Expand(d float64) Rect {
	out := Rect{Min: V(r.Min.X-d, r.Min.Y-d), Max: V(r.Max.X+d, r.Max.Y+d)}
	if out.Min.X > out.Max.X {
		c := r.Center().X
		out.Min.X, out.Max.X = c, c
	}
	if out.Min.Y > out.Max.Y {
		c := r.Center().Y
		out.Min.Y, out.Max.Y = c, c
	}
	return out
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Bounds(r.Min, r.Max, o.Min, o.Max)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v-%v]", r.Min, r.Max)
}
