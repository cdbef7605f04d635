package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxObjectIDLength bounds object IDs accepted from scene files and the API.
const MaxObjectIDLength = 128

// ValidateObjectID validates a scene object ID.
//
// IDs end up in DOT output, JSON keys and log lines, so the rules are
// conservative:
//   - No empty IDs
//   - No control characters or whitespace
//   - No quotes or backslashes
//   - Maximum length of 128 characters
func ValidateObjectID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidObjectID, "object id cannot be empty")
	}

	if len(id) > MaxObjectIDLength {
		return New(ErrCodeInvalidObjectID, "object id too long (max %d characters)", MaxObjectIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidObjectID, "object id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, "\"'\\") {
		return New(ErrCodeInvalidObjectID, "object id %q contains quotes or backslashes", id)
	}

	return nil
}

// ValidatePath validates a scene or output file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateFormat checks that format is one of allowed. The comparison is
// case-sensitive; callers normalize first.
func ValidateFormat(format string, allowed ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}
