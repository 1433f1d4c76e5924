package search

import (
	"strings"
)

// NormalizeQuery trims surrounding whitespace. Interior text is kept as typed
// because matching is a plain substring test.
func NormalizeQuery(input string) string {
	return strings.TrimSpace(input)
}

// Matches reports whether q is a case-insensitive substring of any field.
// An empty query matches everything.
func Matches(q string, fields ...string) bool {
	q = NormalizeQuery(q)
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// LikePattern builds an ILIKE pattern for a substring search with the LIKE
// metacharacters of q escaped. The caller must use ESCAPE '\'.
func LikePattern(q string) string {
	q = NormalizeQuery(q)
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
