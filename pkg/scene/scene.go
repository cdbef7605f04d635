package scene

import (
	"github.com/google/uuid"

	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/geom"
	"github.com/matzehuels/isosort/pkg/iso"
)

// Footprint is an explicit screen-space rectangle given by its lower-left
// corner and size.
type Footprint struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
	W float64 `json:"w" toml:"w" yaml:"w"`
	H float64 `json:"h" toml:"h" yaml:"h"`
}

// Rect converts f to a rectangle.
func (f Footprint) Rect() geom.Rect { return geom.R(f.X, f.Y, f.W, f.H) }

// FootprintOf converts r back to a Footprint.
func FootprintOf(r geom.Rect) Footprint {
	return Footprint{X: r.Min.X, Y: r.Min.Y, W: r.Width(), H: r.Height()}
}

// Object is one entry of a scene file.
type Object struct {
	ID      string `json:"id" toml:"id" yaml:"id"`
	Kind    string `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty"`
	Dynamic bool   `json:"dynamic,omitempty" toml:"dynamic,omitempty" yaml:"dynamic,omitempty"`

	P1 geom.Vec2  `json:"p1" toml:"p1" yaml:"p1"`
	P2 *geom.Vec2 `json:"p2,omitempty" toml:"p2,omitempty" yaml:"p2,omitempty"`

	// Footprint overrides the rectangle derived from the anchors and Pad.
	// It moves with the object.
	Footprint *Footprint `json:"footprint,omitempty" toml:"footprint,omitempty" yaml:"footprint,omitempty"`
	Pad       float64    `json:"pad,omitempty" toml:"pad,omitempty" yaml:"pad,omitempty"`

	// Secondary requests a second draw order (order+1) for a child layer.
	Secondary bool `json:"secondary,omitempty" toml:"secondary,omitempty" yaml:"secondary,omitempty"`

	// Velocity in scene units per second. Dynamic objects only.
	Velocity *geom.Vec2 `json:"velocity,omitempty" toml:"velocity,omitempty" yaml:"velocity,omitempty"`
}

// Shape returns the object's sorting shape. An empty kind means point.
func (o Object) Shape() (iso.Shape, error) {
	kind := iso.KindPoint
	if o.Kind != "" {
		k, err := iso.ParseKind(o.Kind)
		if err != nil {
			return iso.Shape{}, errors.Wrap(errors.ErrCodeInvalidShape, err, "object %s", o.ID)
		}
		kind = k
	}

	var s iso.Shape
	switch kind {
	case iso.KindSegment:
		if o.P2 == nil {
			return iso.Shape{}, errors.New(errors.ErrCodeInvalidShape, "object %s: segment needs p2", o.ID)
		}
		s = iso.Segment(o.P1, *o.P2)
	default:
		if o.P2 != nil {
			return iso.Shape{}, errors.New(errors.ErrCodeInvalidShape, "object %s: point takes no p2", o.ID)
		}
		s = iso.Point(o.P1)
	}
	if err := s.Validate(); err != nil {
		return iso.Shape{}, errors.Wrap(errors.ErrCodeInvalidShape, err, "object %s", o.ID)
	}
	return s, nil
}

// Bounds returns the object's footprint: the explicit one if set, the
// anchors grown by Pad otherwise.
func (o Object) Bounds() (geom.Rect, error) {
	if o.Footprint != nil {
		return o.Footprint.Rect(), nil
	}
	s, err := o.Shape()
	if err != nil {
		return geom.Rect{}, err
	}
	return s.Bounds().Expand(o.Pad), nil
}

// Scene is a named set of objects.
type Scene struct {
	Name string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`

	// Bounds, when set, keeps moving objects inside: a sprite that would
	// leave bounces off the edge.
	Bounds *Footprint `json:"bounds,omitempty" toml:"bounds,omitempty" yaml:"bounds,omitempty"`

	Objects []Object `json:"objects" toml:"objects" yaml:"objects"`
}

// AssignIDs gives every object without an ID a random UUID and returns how
// many it assigned.
func (s *Scene) AssignIDs() int {
	n := 0
	for i := range s.Objects {
		if s.Objects[i].ID == "" {
			s.Objects[i].ID = uuid.NewString()
			n++
		}
	}
	return n
}

// Validate reports the first problem found in the scene.
func (s *Scene) Validate() error {
	if len(s.Objects) == 0 {
		return errors.New(errors.ErrCodeInvalidScene, "scene has no objects")
	}
	if s.Bounds != nil && (s.Bounds.W <= 0 || s.Bounds.H <= 0) {
		return errors.New(errors.ErrCodeInvalidScene, "bounds must have a positive size")
	}

	seen := make(map[string]bool, len(s.Objects))
	for i, o := range s.Objects {
		if err := errors.ValidateObjectID(o.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidObjectID, err, "object #%d", i)
		}
		if seen[o.ID] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate object id %q", o.ID)
		}
		seen[o.ID] = true

		if _, err := o.Shape(); err != nil {
			return err
		}
		if o.Pad < 0 {
			return errors.New(errors.ErrCodeInvalidScene, "object %s: pad must not be negative", o.ID)
		}
		if f := o.Footprint; f != nil && (f.W < 0 || f.H < 0) {
			return errors.New(errors.ErrCodeInvalidScene, "object %s: footprint size must not be negative", o.ID)
		}
		if v := o.Velocity; v != nil {
			if !o.Dynamic {
				return errors.New(errors.ErrCodeInvalidScene, "object %s: only dynamic objects move", o.ID)
			}
			if !v.IsFinite() {
				return errors.New(errors.ErrCodeInvalidScene, "object %s: velocity must be finite", o.ID)
			}
		}
	}
	return nil
}

// Counts returns the number of static and dynamic objects.
func (s *Scene) Counts() (static, dynamic int) {
	for _, o := range s.Objects {
		if o.Dynamic {
			dynamic++
		} else {
			static++
		}
	}
	return static, dynamic
}
