package site

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Hidden reports whether a slash-separated path relative to the root, or
// any directory above it, matches one of the glob patterns. Patterns are
// also tried against the bare name so "*.go" hides Go files at any depth.
func Hidden(rel string, patterns []string) bool {
	rel = strings.Trim(path.Clean("/"+rel), "/")
	if rel == "" || len(patterns) == 0 {
		return false
	}
	for p := rel; p != "." && p != ""; p = path.Dir(p) {
		if matchesAny(p, patterns) {
			return true
		}
	}
	return false
}

func matchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
