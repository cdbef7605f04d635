package scene

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/matzehuels/isosort/pkg/geom"
)

// HCL scenes use one labelled block per object and number lists for
// vectors:
//
//	name = "courtyard"
//
//	object "hedge" {
//	  kind = "segment"
//	  p1   = [-8, 2]
//	  p2   = [8, 5]
//	  pad  = 1
//	}
type hclScene struct {
	Name    string       `hcl:"name,optional"`
	Bounds  []float64    `hcl:"bounds,optional"`
	Objects []*hclObject `hcl:"object,block"`
}

type hclObject struct {
	ID        string    `hcl:"id,label"`
	Kind      string    `hcl:"kind,optional"`
	Dynamic   bool      `hcl:"dynamic,optional"`
	P1        []float64 `hcl:"p1"`
	P2        []float64 `hcl:"p2,optional"`
	Footprint []float64 `hcl:"footprint,optional"`
	Pad       float64   `hcl:"pad,optional"`
	Secondary bool      `hcl:"secondary,optional"`
	Velocity  []float64 `hcl:"velocity,optional"`
}

func parseHCL(data []byte) (*Scene, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, "scene.hcl")
	if diags.HasErrors() {
		return nil, diags
	}
	var root hclScene
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}

	s := &Scene{Name: root.Name}
	if root.Bounds != nil {
		f, err := hclFootprint("bounds", root.Bounds)
		if err != nil {
			return nil, err
		}
		s.Bounds = f
	}
	for _, b := range root.Objects {
		o, err := b.object()
		if err != nil {
			return nil, err
		}
		s.Objects = append(s.Objects, o)
	}
	return s, nil
}

func (b *hclObject) object() (Object, error) {
	o := Object{
		ID:        b.ID,
		Kind:      b.Kind,
		Dynamic:   b.Dynamic,
		Pad:       b.Pad,
		Secondary: b.Secondary,
	}
	var err error
	if o.P1, err = hclVec(b.ID, "p1", b.P1); err != nil {
		return o, err
	}
	if b.P2 != nil {
		p2, err := hclVec(b.ID, "p2", b.P2)
		if err != nil {
			return o, err
		}
		o.P2 = &p2
	}
	if b.Velocity != nil {
		v, err := hclVec(b.ID, "velocity", b.Velocity)
		if err != nil {
			return o, err
		}
		o.Velocity = &v
	}
	if b.Footprint != nil {
		if o.Footprint, err = hclFootprint(b.ID+".footprint", b.Footprint); err != nil {
			return o, err
		}
	}
	return o, nil
}

func hclVec(id, attr string, v []float64) (geom.Vec2, error) {
	if len(v) != 2 {
		return geom.Vec2{}, fmt.Errorf("object %s: %s needs 2 numbers, got %d", id, attr, len(v))
	}
	return geom.V(v[0], v[1]), nil
}

func hclFootprint(what string, v []float64) (*Footprint, error) {
	if len(v) != 4 {
		return nil, fmt.Errorf("%s needs 4 numbers (x, y, w, h), got %d", what, len(v))
	}
	return &Footprint{X: v[0], Y: v[1], W: v[2], H: v[3]}, nil
}
