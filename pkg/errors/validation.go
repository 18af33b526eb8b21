package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds node labels so a hostile stream cannot blow up a row.
const maxLabelLength = 1024

// ValidateLabel rejects node labels that would corrupt terminal output.
//
// Rows are written straight to terminals with embedded SGR sequences, so a
// label may not carry its own escapes or line breaks:
//   - No control characters (ESC, CR, LF, NUL, ...)
//   - Maximum length of 1024 bytes
//
// An empty label is valid; it simply renders nothing after the graph.
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d bytes)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains control characters: %q", label)
		}
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

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

	return nil
}
