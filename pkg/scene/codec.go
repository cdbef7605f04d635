package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/isosort/pkg/errors"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Formats lists the readable formats.
var Formats = []string{string(FormatTOML), string(FormatJSON), string(FormatYAML), string(FormatHCL)}

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(s, "."))
	if s == "yml" {
		s = string(FormatYAML)
	}
	if err := errors.ValidateFormat(s, Formats...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer scene format of %s", path)
	}
	return ParseFormat(ext)
}

// Load reads, decodes and validates the scene file at path.
func Load(path string) (*Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read scene %s", path)
	}
	s, err := Parse(data, f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "scene %s", path)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode reads a scene in format f from r.
func Decode(r io.Reader, f Format) (*Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read scene")
	}
	return Parse(data, f)
}

// Parse decodes data, assigns missing IDs and validates the result.
// Unknown keys are rejected in every format.
func Parse(data []byte, f Format) (*Scene, error) {
	var (
		s   *Scene
		err error
	)
	switch f {
	case FormatTOML:
		s, err = parseTOML(data)
	case FormatJSON:
		s, err = parseJSON(data)
	case FormatYAML:
		s, err = parseYAML(data)
	case FormatHCL:
		s, err = parseHCL(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", f)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode %s", f)
	}
	s.AssignIDs()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseTOML(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %s", undecoded[0])
	}
	return &s, nil
}

func parseJSON(data []byte) (*Scene, error) {
	var s Scene
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func parseYAML(data []byte) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes s in format f. HCL is read-only.
func Encode(w io.Writer, s *Scene, f Format) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case FormatHCL:
		return errors.New(errors.ErrCodeUnsupported, "writing HCL scenes is not supported")
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format %q", f)
}

// Save encodes s to path, inferring the format from the extension.
func Save(path string, s *Scene) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, s, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write scene %s", path)
	}
	return nil
}
