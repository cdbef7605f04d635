package scene

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/geom"
	"github.com/matzehuels/isosort/pkg/iso"
)

func vec(x, y float64) *geom.Vec2 {
	v := geom.V(x, y)
	return &v
}

func TestObjectShape(t *testing.T) {
	s, err := Object{ID: "a", P1: geom.V(1, 2)}.Shape()
	require.NoError(t, err)
	assert.Equal(t, iso.Point(geom.V(1, 2)), s)

	s, err = Object{ID: "w", Kind: "segment", P1: geom.V(0, 0), P2: vec(4, 2)}.Shape()
	require.NoError(t, err)
	assert.Equal(t, iso.KindSegment, s.Kind)
	assert.Equal(t, geom.V(4, 2), s.P2)
}

func TestObjectBounds(t *testing.T) {
	r, err := Object{ID: "a", P1: geom.V(1, 2), Pad: 1}.Bounds()
	require.NoError(t, err)
	assert.Equal(t, geom.R(0, 1, 2, 2), r)

	r, err = Object{ID: "a", P1: geom.V(1, 2), Footprint: &Footprint{X: -1, Y: -1, W: 3, H: 4}}.Bounds()
	require.NoError(t, err)
	assert.Equal(t, geom.R(-1, -1, 3, 4), r)
}

func TestValidate(t *testing.T) {
	ok := func() Object { return Object{ID: "ok", P1: geom.V(0, 0)} }
	tests := []struct {
		name string
		objs []Object
		code errors.Code
	}{
		{"empty scene", nil, errors.ErrCodeInvalidScene},
		{"empty id", []Object{{P1: geom.V(0, 0)}}, errors.ErrCodeInvalidObjectID},
		{"id with space", []Object{{ID: "a b"}}, errors.ErrCodeInvalidObjectID},
		{"duplicate id", []Object{ok(), ok()}, errors.ErrCodeInvalidScene},
		{"unknown kind", []Object{{ID: "a", Kind: "circle"}}, errors.ErrCodeInvalidShape},
		{"segment without p2", []Object{{ID: "a", Kind: "segment"}}, errors.ErrCodeInvalidShape},
		{"point with p2", []Object{{ID: "a", P2: vec(1, 1)}}, errors.ErrCodeInvalidShape},
		{"nan anchor", []Object{{ID: "a", P1: geom.V(math.NaN(), 0)}}, errors.ErrCodeInvalidShape},
		{"negative pad", []Object{{ID: "a", Pad: -1}}, errors.ErrCodeInvalidScene},
		{"negative footprint", []Object{{ID: "a", Footprint: &Footprint{W: -1, H: 2}}}, errors.ErrCodeInvalidScene},
		{"static velocity", []Object{{ID: "a", Velocity: vec(1, 0)}}, errors.ErrCodeInvalidScene},
		{"infinite velocity", []Object{{ID: "a", Dynamic: true, Velocity: vec(math.Inf(1), 0)}}, errors.ErrCodeInvalidScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scene{Objects: tt.objs}
			err := s.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "got %v", err)
		})
	}

	s := &Scene{Objects: []Object{ok()}, Bounds: &Footprint{W: 0, H: 1}}
	assert.True(t, errors.Is(s.Validate(), errors.ErrCodeInvalidScene))

	s.Bounds = nil
	assert.NoError(t, s.Validate())
}

func TestAssignIDs(t *testing.T) {
	s := &Scene{Objects: []Object{
		{ID: "keep"},
		{},
		{},
	}}
	assert.Equal(t, 2, s.AssignIDs())
	assert.Equal(t, "keep", s.Objects[0].ID)
	for _, o := range s.Objects[1:] {
		_, err := uuid.Parse(o.ID)
		assert.NoError(t, err, "id %q", o.ID)
	}
	assert.NotEqual(t, s.Objects[1].ID, s.Objects[2].ID)
	assert.Zero(t, s.AssignIDs())
}

func TestCounts(t *testing.T) {
	s := &Scene{Objects: []Object{{ID: "a"}, {ID: "b", Dynamic: true}, {ID: "c"}}}
	static, dynamic := s.Counts()
	assert.Equal(t, 2, static)
	assert.Equal(t, 1, dynamic)
}
