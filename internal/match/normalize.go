package match

import (
	"strings"
	"unicode"
)

// NormalizeIdent folds an identifier to a comparable key: lower case with
// separators (_, -, ., spaces) removed. "orphansAsTopLevel",
// "orphans-as-top-level" and "ORPHANS_AS_TOP_LEVEL" share one key.
func NormalizeIdent(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}

// isSeparator returns true if the rune is a common separator.
func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
