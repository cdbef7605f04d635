package scene

import (
	"context"

	"github.com/matzehuels/isosort/pkg/geom"
	"github.com/matzehuels/isosort/pkg/iso"
	"github.com/matzehuels/isosort/pkg/sorter"
)

// Sprite adapts a scene object to the sorter's host interfaces. It keeps
// its own position, records the orders it receives, and reports a change
// after every move.
type Sprite struct {
	def       Object
	shape     iso.Shape
	footprint geom.Rect
	velocity  geom.Vec2
	changed   bool

	order     int
	secondary int // -1 without a secondary layer
	obj       *sorter.Object
}

func newSprite(o Object) (*Sprite, error) {
	shape, err := o.Shape()
	if err != nil {
		return nil, err
	}
	fp, err := o.Bounds()
	if err != nil {
		return nil, err
	}
	sp := &Sprite{def: o, shape: shape, footprint: fp, secondary: -1}
	if o.Velocity != nil {
		sp.velocity = *o.Velocity
	}
	return sp, nil
}

// ID returns the object ID.
func (sp *Sprite) ID() string { return sp.def.ID }

// Dynamic reports whether the sprite is sorted every frame.
func (sp *Sprite) Dynamic() bool { return sp.obj.Dynamic() }

// Changed reports whether the sprite moved since the last call.
func (sp *Sprite) Changed() bool {
	c := sp.changed
	sp.changed = false
	return c
}

// Shape returns the current anchors.
func (sp *Sprite) Shape() iso.Shape { return sp.shape }

// Footprint returns the current footprint.
func (sp *Sprite) Footprint() geom.Rect { return sp.footprint }

// Velocity returns the current velocity.
func (sp *Sprite) Velocity() geom.Vec2 { return sp.velocity }

// SetSortingOrder records the order assigned by the sorter.
func (sp *Sprite) SetSortingOrder(order int) { sp.order = order }

// Order returns the last order received.
func (sp *Sprite) Order() int { return sp.order }

// SecondaryOrder returns the last secondary order received, or -1.
func (sp *Sprite) SecondaryOrder() int { return sp.secondary }

// Translate moves the sprite by d.
func (sp *Sprite) Translate(d geom.Vec2) {
	if d == (geom.Vec2{}) {
		return
	}
	sp.shape = sp.shape.Translate(d)
	sp.footprint = sp.footprint.Translate(d)
	sp.changed = true
}

// MoveTo moves the sprite so its first anchor lies at p.
func (sp *Sprite) MoveTo(p geom.Vec2) { sp.Translate(p.Sub(sp.shape.P1)) }

// object returns the sprite's current state as a scene object.
func (sp *Sprite) object() Object {
	o := sp.def
	o.P1 = sp.shape.P1
	if o.P2 != nil {
		p2 := sp.shape.P2
		o.P2 = &p2
	}
	if o.Footprint != nil {
		f := FootprintOf(sp.footprint)
		o.Footprint = &f
	}
	if o.Velocity != nil {
		v := sp.velocity
		o.Velocity = &v
	}
	return o
}

// layered is the renderer of a sprite with a secondary layer.
type layered struct{ *Sprite }

func (l layered) SetSecondaryOrder(order int) { l.secondary = order }

func (sp *Sprite) renderer() sorter.Renderer {
	if sp.def.Secondary {
		return layered{sp}
	}
	return sp
}

// World is a built scene: its sprites registered with a Sorter.
type World struct {
	name    string
	bounds  *geom.Rect
	sorter  *sorter.Sorter
	sprites []*Sprite
	byID    map[string]*Sprite
}

// Build validates s and registers every object with a new Sorter.
func (s *Scene) Build(opts sorter.Options) (*World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		name:   s.Name,
		sorter: sorter.New(opts),
		byID:   make(map[string]*Sprite, len(s.Objects)),
	}
	if s.Bounds != nil {
		r := s.Bounds.Rect()
		w.bounds = &r
	}
	for _, o := range s.Objects {
		sp, err := newSprite(o)
		if err != nil {
			return nil, err
		}
		sp.obj = sorter.NewObject(o.ID, o.Dynamic, sp, sp.renderer())
		if err := w.sorter.Register(sp.obj); err != nil {
			return nil, err
		}
		w.sprites = append(w.sprites, sp)
		w.byID[o.ID] = sp
	}
	return w, nil
}

// Name returns the scene name.
func (w *World) Name() string { return w.name }

// Sorter returns the underlying sorter.
func (w *World) Sorter() *sorter.Sorter { return w.sorter }

// Sprites returns the sprites in scene order.
func (w *World) Sprites() []*Sprite { return w.sprites }

// Sprite looks up a sprite by ID.
func (w *World) Sprite(id string) (*Sprite, bool) {
	sp, ok := w.byID[id]
	return sp, ok
}

// Step advances every moving dynamic sprite by velocity*dt and returns how
// many moved. With bounds set, a sprite that would leave them reverses
// along the offending axis instead.
func (w *World) Step(dt float64) int {
	moved := 0
	for _, sp := range w.sprites {
		if !sp.obj.Dynamic() || sp.velocity == (geom.Vec2{}) {
			continue
		}
		d := sp.velocity.Scale(dt)
		if w.bounds != nil {
			next := sp.footprint.Translate(d)
			if next.Min.X < w.bounds.Min.X || next.Max.X > w.bounds.Max.X {
				sp.velocity.X = -sp.velocity.X
				d.X = -d.X
			}
			if next.Min.Y < w.bounds.Min.Y || next.Max.Y > w.bounds.Max.Y {
				sp.velocity.Y = -sp.velocity.Y
				d.Y = -d.Y
			}
		}
		sp.Translate(d)
		moved++
	}
	return moved
}

// Update runs one sorter frame.
func (w *World) Update(ctx context.Context) sorter.Stats {
	return w.sorter.Update(ctx)
}

// Entry is one line of a draw order listing.
type Entry struct {
	ID             string    `json:"id"`
	Kind           string    `json:"kind"`
	Dynamic        bool      `json:"dynamic"`
	Order          int       `json:"order"`
	SecondaryOrder *int      `json:"secondary_order,omitempty"`
	Anchor         geom.Vec2 `json:"anchor"`
}

// Entries lists the sprites back to front as of the last Update.
func (w *World) Entries() []Entry {
	objs := w.sorter.Order()
	out := make([]Entry, 0, len(objs))
	for _, o := range objs {
		sp := w.byID[o.ID()]
		e := Entry{
			ID:      sp.ID(),
			Kind:    sp.shape.Kind.String(),
			Dynamic: o.Dynamic(),
			Order:   sp.order,
			Anchor:  sp.shape.Mid(),
		}
		if sp.secondary >= 0 {
			sec := sp.secondary
			e.SecondaryOrder = &sec
		}
		out = append(out, e)
	}
	return out
}

// Scene returns the world's current state as a scene, positions and
// velocities included.
func (w *World) Scene() *Scene {
	s := &Scene{Name: w.name, Objects: make([]Object, len(w.sprites))}
	if w.bounds != nil {
		f := FootprintOf(*w.bounds)
		s.Bounds = &f
	}
	for i, sp := range w.sprites {
		s.Objects[i] = sp.object()
	}
	return s
}
