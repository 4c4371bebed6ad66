package common

import (
	"path"
	"strings"
)

// UnknownStr is the fallback name used by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// LastSegment returns the last path element of a slash separated identifier such as
// a namespace URI ("http://example.org/tree" -> "tree"). Fragments and trailing
// slashes are ignored. Returns empty string if id is empty.
func LastSegment(id string) string {
	if id == "" {
		return ""
	}

	if i := strings.IndexByte(id, '#'); i >= 0 {
		id = id[:i]
	}

	id = strings.TrimRight(id, "/")
	if id == "" {
		return ""
	}

	return path.Base(id)
}
