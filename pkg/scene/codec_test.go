package scene

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/isosort/pkg/errors"
	"github.com/matzehuels/isosort/pkg/geom"
)

func courtyard() *Scene {
	return &Scene{
		Name:   "courtyard",
		Bounds: &Footprint{X: -10, Y: -2, W: 20, H: 12},
		Objects: []Object{
			{ID: "fountain", P1: geom.V(0, 6), Pad: 2},
			{ID: "hedge", Kind: "segment", P1: geom.V(-8, 2), P2: vec(8, 5), Pad: 1},
			{ID: "cat", Dynamic: true, Secondary: true, P1: geom.V(-4, 0), Velocity: vec(1.5, 1), Pad: 1},
			{ID: "lamp", P1: geom.V(3, 1), Footprint: &Footprint{X: 2, Y: 0, W: 2, H: 4}},
		},
	}
}

func TestLoadAllFormats(t *testing.T) {
	for _, ext := range []string{"toml", "json", "yaml", "hcl"} {
		t.Run(ext, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", "courtyard."+ext))
			require.NoError(t, err)
			if diff := cmp.Diff(courtyard(), s); diff != "" {
				t.Errorf("decoded scene mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"toml", FormatTOML},
		{".JSON", FormatJSON},
		{"yml", FormatYAML},
		{".yaml", FormatYAML},
		{"hcl", FormatHCL},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	_, err = FormatOf("scene")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	tests := map[Format]string{
		FormatTOML: "[[objects]]\nid = \"a\"\np1 = { x = 0, y = 0 }\ncolour = \"red\"\n",
		FormatJSON: `{"objects": [{"id": "a", "p1": {"x": 0, "y": 0}, "colour": "red"}]}`,
		FormatYAML: "objects:\n  - id: a\n    p1: {x: 0, y: 0}\n    colour: red\n",
		FormatHCL:  "object \"a\" {\n  p1 = [0, 0]\n  colour = \"red\"\n}\n",
	}
	for f, data := range tests {
		t.Run(string(f), func(t *testing.T) {
			_, err := Parse([]byte(data), f)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidScene), "got %v", err)
		})
	}
}

func TestParseAssignsMissingIDs(t *testing.T) {
	s, err := Decode(strings.NewReader("objects:\n  - p1: {x: 1, y: 2}\n  - p1: {x: 3, y: 4}\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, s.Objects, 2)
	assert.NotEmpty(t, s.Objects[0].ID)
	assert.NotEqual(t, s.Objects[0].ID, s.Objects[1].ID)
}

func TestParseHCLVectorArity(t *testing.T) {
	_, err := Parse([]byte("object \"a\" {\n  p1 = [0, 0, 1]\n}\n"), FormatHCL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p1 needs 2 numbers")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	_, err = Load("../testdata/../courtyard.toml")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath), "got %v", err)

	_, err = Load(filepath.Join("testdata", "courtyard.txt"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
}

func TestLoadNamesSceneAfterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alley.json")
	s := courtyard()
	s.Name = ""
	require.NoError(t, Save(path, s))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alley", got.Name)
}

func TestEncodeHCLUnsupported(t *testing.T) {
	err := Encode(&bytes.Buffer{}, courtyard(), FormatHCL)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}
