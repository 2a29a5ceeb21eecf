// Package search holds the helpers shared by the case-insensitive filter queries.
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Result size bounds for filter queries.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Normalize trims s and lower-cases it the way SQL LOWER() does for
// comparison keys such as emails and tag names.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// LikePattern builds a substring LIKE pattern for term with wildcards escaped.
// Use it with "LOWER(column) LIKE ? ESCAPE '\'".
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(Normalize(term)) + "%"
}

// Limit clamps a requested result size into [1, MaxLimit], using
// DefaultLimit for non-positive values.
func Limit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	default:
		return n
	}
}
