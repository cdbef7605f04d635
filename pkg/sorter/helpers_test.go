package sorter

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/isosort/pkg/geom"
	"github.com/matzehuels/isosort/pkg/iso"
)

// recorder is a Renderer that remembers what it was told.
type recorder struct {
	order     int
	secondary int
	calls     int
}

func (r *recorder) SetSortingOrder(order int)  { r.order = order; r.calls++ }
func (r *recorder) SetSecondaryOrder(order int) { r.secondary = order }

// movable is a Transform the test can move between frames.
type movable struct {
	shape   iso.Shape
	pad     float64
	changed bool
}

func (m *movable) Changed() bool {
	c := m.changed
	m.changed = false
	return c
}

func (m *movable) Shape() iso.Shape     { return m.shape }
func (m *movable) Footprint() geom.Rect { return m.shape.Bounds().Expand(m.pad) }

func (m *movable) moveTo(p geom.Vec2) {
	d := p.Sub(m.shape.P1)
	m.shape = m.shape.Translate(d)
	m.changed = true
}

func quietSorter() *Sorter {
	return New(Options{Logger: log.New(io.Discard)})
}

func point(id string, dynamic bool, x, y, pad float64) *Object {
	if dynamic {
		return NewObject(id, true, &movable{shape: iso.Point(geom.V(x, y)), pad: pad}, &recorder{})
	}
	return NewObject(id, false, FixedPoint(geom.V(x, y), pad), &recorder{})
}

func segment(id string, dynamic bool, x1, y1, x2, y2, pad float64) *Object {
	if dynamic {
		return NewObject(id, true, &movable{shape: iso.Segment(geom.V(x1, y1), geom.V(x2, y2)), pad: pad}, &recorder{})
	}
	return NewObject(id, false, FixedSegment(geom.V(x1, y1), geom.V(x2, y2), pad), &recorder{})
}

func registerAll(t *testing.T, s *Sorter, objs ...*Object) {
	t.Helper()
	for _, o := range objs {
		require.NoError(t, s.Register(o), "Register(%s)", o.ID())
	}
}

func ids(objs []*Object) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.ID()
	}
	return out
}

func update(s *Sorter) Stats { return s.Update(context.Background()) }
