package errors

import (
	"strings"
	"unicode"
)

// ValidateColumnName validates a user-supplied column name before it is
// resolved against a file header.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters (a tab inside a name can never match an FSDB header)
//   - No whitespace
//   - Maximum length of 128 characters
//
// Whether the column actually exists in a given file is checked separately
// against that file's header.
func ValidateColumnName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidColumn, "column name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidColumn, "column name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidColumn, "column name %q contains whitespace or control characters", name)
		}
	}

	return nil
}

// ValidateHexColor validates a palette entry as a #rgb or #rrggbb hex color.
func ValidateHexColor(color string) error {
	if !strings.HasPrefix(color, "#") {
		return New(ErrCodeInvalidPalette, "color %q must start with '#'", color)
	}
	digits := color[1:]
	if len(digits) != 3 && len(digits) != 6 {
		return New(ErrCodeInvalidPalette, "color %q must be #rgb or #rrggbb", color)
	}
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return New(ErrCodeInvalidPalette, "color %q contains non-hex character %q", color, r)
		}
	}
	return nil
}
