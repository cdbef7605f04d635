package iso

import (
	"testing"

	"github.com/matzehuels/isosort/pkg/geom"
)

func TestComparePoints(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Vec2
		want Verdict
	}{
		{"higher is behind", geom.V(0, 5), geom.V(0, 3), Behind},
		{"lower is front", geom.V(0, 3), geom.V(0, 5), Front},
		{"same height larger x behind", geom.V(4, 3), geom.V(2, 3), Behind},
		{"same height smaller x front", geom.V(2, 3), geom.V(4, 3), Front},
		{"y dominates x", geom.V(-100, 4), geom.V(100, 3), Behind},
		{"identical", geom.V(1, 1), geom.V(1, 1), Undetermined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(Point(tt.a), Point(tt.b))
			if got != tt.want {
				t.Errorf("Compare() = %v, want %v", got, tt.want)
			}
			if rev := Compare(Point(tt.b), Point(tt.a)); rev != tt.want.Negate() {
				t.Errorf("Compare() reversed = %v, want %v", rev, tt.want.Negate())
			}
		})
	}
}

func TestComparePointSegment(t *testing.T) {
	diagonal := Segment(geom.V(0, 0), geom.V(10, 10))
	vertical := Segment(geom.V(5, 0), geom.V(5, 10))
	dot := Segment(geom.V(3, 3), geom.V(3, 3))

	tests := []struct {
		name string
		p    geom.Vec2
		seg  Shape
		want Verdict
	}{
		{"above both endpoints", geom.V(5, 20), diagonal, Behind},
		{"below both endpoints", geom.V(5, -1), diagonal, Front},
		{"below the line", geom.V(8, 2), diagonal, Front},
		{"above the line", geom.V(2, 8), diagonal, Behind},
		{"on the line", geom.V(4, 4), diagonal, Behind},
		{"left of vertical", geom.V(3, 5), vertical, Front},
		{"right of vertical", geom.V(7, 5), vertical, Behind},
		{"on vertical", geom.V(5, 5), vertical, Undetermined},
		{"zero length acts as point", geom.V(4, 3), dot, Behind},
		{"zero length below", geom.V(4, 1), dot, Front},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(Point(tt.p), tt.seg); got != tt.want {
				t.Errorf("Compare(point, segment) = %v, want %v", got, tt.want)
			}
			if got := Compare(tt.seg, Point(tt.p)); got != tt.want.Negate() {
				t.Errorf("Compare(segment, point) = %v, want %v", got, tt.want.Negate())
			}
		})
	}
}

func TestCompareSegments(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
		want Verdict
	}{
		{
			name: "parallel, a lower",
			a:    Segment(geom.V(0, 0), geom.V(10, 0)),
			b:    Segment(geom.V(0, 10), geom.V(10, 10)),
			want: Front,
		},
		{
			name: "parallel, a higher",
			a:    Segment(geom.V(0, 10), geom.V(10, 10)),
			b:    Segment(geom.V(0, 0), geom.V(10, 0)),
			want: Behind,
		},
		{
			name: "crossing falls back to equal midpoints",
			a:    Segment(geom.V(0, 0), geom.V(10, 10)),
			b:    Segment(geom.V(0, 10), geom.V(10, 0)),
			want: Undetermined,
		},
		{
			name: "only one side has evidence",
			a:    Segment(geom.V(-8, 3), geom.V(-6, 5)),
			b:    Segment(geom.V(-10, 0), geom.V(10, 20)),
			want: Behind,
		},
		{
			name: "contradictory evidence uses midpoints",
			a:    Segment(geom.V(0, 0), geom.V(10, 10)),
			b:    Segment(geom.V(12, 10), geom.V(22, -1)),
			want: Behind,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareIsDeterministic(t *testing.T) {
	a := Segment(geom.V(1, 2), geom.V(7, 4))
	b := Point(geom.V(3, 2.5))
	first := Compare(a, b)
	for i := 0; i < 10; i++ {
		if got := Compare(a, b); got != first {
			t.Fatalf("Compare() changed between calls: %v then %v", first, got)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindPoint, KindSegment} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("circle"); err == nil {
		t.Error("ParseKind(circle) should fail")
	}
}

func TestShapeValidate(t *testing.T) {
	if err := Point(geom.V(1, 2)).Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if err := (Shape{Kind: Kind(7)}).Validate(); err == nil {
		t.Error("Validate() should reject unknown kind")
	}
}
