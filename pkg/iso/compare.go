package iso

import "github.com/matzehuels/isosort/pkg/geom"

// Verdict is the outcome of comparing two shapes.
type Verdict int

const (
	// Behind means the first shape is further back and must be drawn first.
	Behind Verdict = -1
	// Undetermined means the geometry gives no ordering.
	Undetermined Verdict = 0
	// Front means the first shape is nearer the viewer and must be drawn
	// after the second.
	Front Verdict = 1
)

func (v Verdict) String() string {
	switch v {
	case Behind:
		return "behind"
	case Front:
		return "front"
	default:
		return "undetermined"
	}
}

// Negate returns the verdict seen from the other shape.
func (v Verdict) Negate() Verdict { return -v }

// Compare decides whether a is in front of or behind b. It is a pure
// function of the two shapes and does not check footprint overlap; callers
// prune non-overlapping pairs first.
func Compare(a, b Shape) Verdict {
	switch {
	case a.Kind == KindPoint && b.Kind == KindPoint:
		return comparePoints(a.P1, b.P1)
	case a.Kind == KindSegment && b.Kind == KindSegment:
		return compareSegments(a, b)
	case a.Kind == KindPoint && b.Kind == KindSegment:
		return comparePointSegment(a.P1, b)
	case a.Kind == KindSegment && b.Kind == KindPoint:
		return comparePointSegment(b.P1, a).Negate()
	}
	return Undetermined
}

// comparePoints orders by Y descending, then X descending.
func comparePoints(a, b geom.Vec2) Verdict {
	if v := cmpDesc(a.Y, b.Y); v != Undetermined {
		return v
	}
	return cmpDesc(a.X, b.X)
}

// comparePointSegment classifies p against the infinite line through seg.
func comparePointSegment(p geom.Vec2, seg Shape) Verdict {
	p1, p2 := seg.P1, seg.P2
	if p.Y > p1.Y && p.Y > p2.Y {
		return Behind
	}
	if p.Y < p1.Y && p.Y < p2.Y {
		return Front
	}

	dx := p2.X - p1.X
	if dx == 0 {
		// Vertical line: whatever lies left of it is in front.
		return cmpDesc(p.X, p1.X)
	}
	slope := (p2.Y - p1.Y) / dx
	intercept := p1.Y - slope*p1.X
	if slope*p.X+intercept > p.Y {
		return Front
	}
	return Behind
}

// compareSegments evaluates each segment's endpoints against the other's
// line and falls back to the midpoints when the evidence is missing or
// contradictory.
func compareSegments(a, b Shape) Verdict {
	aVsB, okA := agree(comparePointSegment(a.P1, b), comparePointSegment(a.P2, b))
	bVsA, okB := agree(comparePointSegment(b.P1, a), comparePointSegment(b.P2, a))
	bVsA = bVsA.Negate()

	switch {
	case okA && okB:
		if aVsB == bVsA {
			return aVsB
		}
		return compareMidpoints(a, b)
	case okA:
		return aVsB
	case okB:
		return bVsA
	}
	return compareMidpoints(a, b)
}

func compareMidpoints(a, b Shape) Verdict {
	return cmpDesc(a.Mid().Y, b.Mid().Y)
}

// agree returns the shared verdict of two endpoint classifications.
// Undetermined classifications never count as evidence.
func agree(v1, v2 Verdict) (Verdict, bool) {
	if v1 == v2 && v1 != Undetermined {
		return v1, true
	}
	return Undetermined, false
}

// cmpDesc returns Behind when a > b, Front when a < b.
func cmpDesc(a, b float64) Verdict {
	switch {
	case a > b:
		return Behind
	case a < b:
		return Front
	}
	return Undetermined
}
