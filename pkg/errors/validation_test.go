package errors

import (
	"strings"
	"testing"
)

func TestValidateObjectID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tree", false},
		{"dashed", "wall-north-01", false},
		{"uuid", "4b3c1f0e-8a8d-4f7e-9f6b-7f7f3d2a9c10", false},
		{"unicode", "bäume", false},
		{"dotted", "props.crate.1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", MaxObjectIDLength+1), true},
		{"space", "big tree", true},
		{"tab", "a\tb", true},
		{"null byte", "a\x00b", true},
		{"quote", `say"hi`, true},
		{"single quote", "it's", true},
		{"backslash", `a\b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateObjectID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateObjectID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidObjectID) {
				t.Errorf("ValidateObjectID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "scenes/forest.toml", false},
		{"valid absolute", "/tmp/out/graph.svg", false},
		{"valid filename only", "scene.yaml", false},
		{"valid with dots", "v1.2.3/scene.json", false},
		{"valid dotted name", "my..scene.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"dot", "svg", "png", "json"}
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"svg", false},
		{"json", false},
		{"", true},
		{"SVG", true},
		{"pdf", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.input, allowed...)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) returned wrong error code: %v", tt.input, err)
		}
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidScene,
		ErrCodeInvalidShape,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeInvalidObjectID,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
