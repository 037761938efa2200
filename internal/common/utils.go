package common

import "strings"

// OneOf reports whether s equals any of the candidates.
func OneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}

// FoldHeader canonicalizes a column header for comparison: surrounding
// whitespace and a UTF-8 byte order mark are removed and the result is
// upper-cased.
func FoldHeader(h string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}
