package extract

import (
	"regexp"
	"strings"
)

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	nonNumericRE = regexp.MustCompile(`[^0-9,.\-]`)
	numericRE    = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
)

// Clean normalizes raw OCR text. Checkbox glyphs are normalized, whitespace
// (including newlines) collapses to single spaces, and values that reduce to
// a signed decimal after symbol stripping come back as the bare number with
// thousands commas removed ("$1,234.50" → "1234.50"). Anything else comes
// back as the collapsed, trimmed text. Numeric coercion is the caller's
// responsibility.
func Clean(raw string) string {
	s := strings.ReplaceAll(raw, "☐", "✓")
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	s = strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))

	candidate := strings.ReplaceAll(nonNumericRE.ReplaceAllString(s, ""), ",", "")
	if numericRE.MatchString(candidate) {
		return candidate
	}
	return s
}
