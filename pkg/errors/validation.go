package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// idRegex matches item and layout identifiers: a letter or digit followed by
// letters, digits, dots, dashes, underscores or colons.
var idRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._:-]*$`)

// ValidateID validates an item or layout identifier.
//
// Identifiers end up in SVG attributes, cache keys and DOT node names, so the
// rules are conservative:
//   - No empty identifiers
//   - Maximum length of 128 characters
//   - Letters, digits and ". _ : -" only, starting with a letter or digit
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItem, "id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidItem, "id too long (max 128 characters)")
	}
	if !idRegex.MatchString(id) {
		return New(ErrCodeInvalidItem, "invalid id: %q", id)
	}
	return nil
}

// ValidatePath validates a file path referenced from inside a scene document
// (for example a measure script). It prevents path traversal and ensures a
// reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
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

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateWeight validates a flex grow or shrink weight.
// Weights must be finite and non-negative.
func ValidateWeight(name string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidItem, "%s must be a finite number", name)
	}
	if w < 0 {
		return New(ErrCodeInvalidItem, "%s must be non-negative, got %g", name, w)
	}
	return nil
}

// ValidateColor validates a "#rgb" or "#rrggbb" colour literal.
func ValidateColor(c string) error {
	if len(c) != 4 && len(c) != 7 || !strings.HasPrefix(c, "#") {
		return New(ErrCodeInvalidStyle, "invalid colour %q (want #rgb or #rrggbb)", c)
	}
	for _, r := range c[1:] {
		if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
			return New(ErrCodeInvalidStyle, "invalid colour %q", c)
		}
	}
	return nil
}
