package iso

import (
	"fmt"

	"github.com/matzehuels/isosort/pkg/geom"
)

// Kind is the closed set of sorting shapes.
type Kind int

const (
	// KindPoint is a shape described by a single anchor.
	KindPoint Kind = iota
	// KindSegment is a shape described by two anchors, such as a wall or
	// fence lying diagonally across the isometric grid.
	KindSegment
)

var kindNames = map[Kind]string{
	KindPoint:   "point",
	KindSegment: "segment",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts "point" or "segment" to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindPoint, fmt.Errorf("unknown shape kind %q", s)
}

// Shape is the sorting geometry of one object. For points P2 equals P1.
type Shape struct {
	Kind Kind
	P1   geom.Vec2
	P2   geom.Vec2
}

// Point returns a point shape anchored at p.
func Point(p geom.Vec2) Shape { return Shape{Kind: KindPoint, P1: p, P2: p} }

// Segment returns a segment shape between p1 and p2.
func Segment(p1, p2 geom.Vec2) Shape { return Shape{Kind: KindSegment, P1: p1, P2: p2} }

// Mid returns the point used when the shape is treated as a single anchor:
// the point itself, or the midpoint of a segment.
func (s Shape) Mid() geom.Vec2 { return s.P1.Mid(s.P2) }

// IsPoint reports whether the shape is a point.
func (s Shape) IsPoint() bool { return s.Kind == KindPoint }

// Translate returns the shape moved by d.
func (s Shape) Translate(d geom.Vec2) Shape {
	return Shape{Kind: s.Kind, P1: s.P1.Add(d), P2: s.P2.Add(d)}
}

// Bounds returns the bounding rectangle of the anchors.
func (s Shape) Bounds() geom.Rect { return geom.Bounds(s.P1, s.P2) }

// Validate rejects unknown kinds and non-finite anchors.
func (s Shape) Validate() error {
	if _, ok := kindNames[s.Kind]; !ok {
		return fmt.Errorf("invalid shape kind %d", int(s.Kind))
	}
	if !s.P1.IsFinite() || !s.P2.IsFinite() {
		return fmt.Errorf("%s anchors must be finite", s.Kind)
	}
	return nil
}

func (s Shape) String() string {
	if s.Kind == KindPoint {
		return fmt.Sprintf("point%v", s.P1)
	}
	return fmt.Sprintf("segment%v%v", s.P1, s.P2)
}
