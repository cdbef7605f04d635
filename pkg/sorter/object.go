package sorter

import (
	"slices"

	"github.com/matzehuels/isosort/pkg/geom"
	"github.com/matzehuels/isosort/pkg/iso"
)

// Object is one sortable sprite. Create it with [NewObject] and hand it to
// [Sorter.Register]; the sorter owns its dependency sets from then on.
type Object struct {
	id        string
	dynamic   bool
	transform Transform
	renderer  Renderer

	shape     iso.Shape
	footprint geom.Rect
	order     int

	registered bool
	slot       int // index into the sorter's per-frame arena

	staticDeps    deps // static objects this one is drawn after
	staticInverse deps // static objects drawn after this one
	dynamicDeps   deps // rebuilt every frame
}

// NewObject creates an unregistered object. renderer may be nil when the
// caller only reads [Object.Order].
func NewObject(id string, dynamic bool, t Transform, renderer Renderer) *Object {
	return &Object{
		id:        id,
		dynamic:   dynamic,
		transform: t,
		renderer:  renderer,
		slot:      -1,
	}
}

// ID returns the object's handle.
func (o *Object) ID() string { return o.id }

// Dynamic reports whether the object is re-evaluated every frame.
func (o *Object) Dynamic() bool { return o.dynamic }

// Shape returns the anchors captured at the last refresh.
func (o *Object) Shape() iso.Shape { return o.shape }

// Footprint returns the bounds captured at the last refresh.
func (o *Object) Footprint() geom.Rect { return o.footprint }

// Order returns the draw order assigned in the last frame.
func (o *Object) Order() int { return o.order }

// Registered reports whether the object belongs to a sorter.
func (o *Object) Registered() bool { return o.registered }

// DependsOn reports whether o is currently drawn after other by a static
// or dynamic edge.
func (o *Object) DependsOn(other *Object) bool {
	return o.staticDeps.has(other) || o.dynamicDeps.has(other)
}

// pull copies geometry from the transform and clears its change flag.
func (o *Object) pull() error {
	o.transform.Changed()
	s := o.transform.Shape()
	if err := s.Validate(); err != nil {
		return err
	}
	o.shape = s
	o.footprint = o.transform.Footprint()
	return nil
}

// refresh pulls geometry only when the transform reports a change.
func (o *Object) refresh() (bool, error) {
	if !o.transform.Changed() {
		return false, nil
	}
	s := o.transform.Shape()
	if err := s.Validate(); err != nil {
		return false, err
	}
	o.shape = s
	o.footprint = o.transform.Footprint()
	return true, nil
}

func (o *Object) overlaps(other *Object) bool {
	return o.footprint.Intersects(other.footprint)
}

// apply pushes the order to the renderer.
func (o *Object) apply(order int) {
	o.order = order
	if o.renderer == nil {
		return
	}
	o.renderer.SetSortingOrder(order)
	if sr, ok := o.renderer.(SecondaryRenderer); ok {
		sr.SetSecondaryOrder(order + 1)
	}
}

// deps is a small insertion-ordered set of objects.
type deps []*Object

func (d deps) has(o *Object) bool { return slices.Contains(d, o) }

func (d *deps) add(o *Object) {
	if !d.has(o) {
		*d = append(*d, o)
	}
}

func (d *deps) remove(o *Object) bool {
	i := slices.Index(*d, o)
	if i < 0 {
		return false
	}
	*d = slices.Delete(*d, i, i+1)
	return true
}

func (d *deps) clear() {
	clear(*d)
	*d = (*d)[:0]
}
