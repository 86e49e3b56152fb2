package catalog

import "strings"

// Game text carries two historical line-break encodings: a literal "/n"
// and a backslash-escaped "\n" stored as two characters. Both render as
// a separator glyph in the catalog.
const descSeparator = " ⭑ "

// CleanDescription normalizes stored description text for display.
func CleanDescription(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "/n", descSeparator)
	s = strings.ReplaceAll(s, `\n`, descSeparator)
	return s
}

// CleanName flattens the same break encodings to a plain space, used for
// monster and merchant names where the glyph would look out of place.
func CleanName(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "/n", " ")
	s = strings.ReplaceAll(s, `\n`, " ")
	return s
}
