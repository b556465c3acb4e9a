// Package search holds helpers shared by the persistence adapters'
// full-text search implementations.
package search

import (
	"strings"
	"time"
)

// DefaultSearchTimeout bounds catalog search queries. Multi-word LIKE
// scans over half a million rows can get slow; past this point the user
// has given up anyway.
const DefaultSearchTimeout = 5 * time.Second

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE/ILIKE metacharacters in a search word and wraps
// it in wildcards. The caller must pair the pattern with ESCAPE '\' on
// engines where backslash is not the default escape character.
func EscapeLike(word string) string {
	return "%" + likeEscaper.Replace(word) + "%"
}

// Words splits a raw query string into search words on whitespace,
// dropping empties so "  der   rhein " queries two words.
func Words(query string) []string {
	return strings.Fields(query)
}
