// Package sqlite provides the SQLite implementation of the media repository.
package sqlite

import (
	"strings"

	"kuckmal/internal/pkg/search"
	"kuckmal/internal/repository"
)

// EntryQueryBuilder builds WHERE clauses for catalog queries.
// The builders are shared between COUNT and SELECT queries so both always
// see the same conditions.
type EntryQueryBuilder struct{}

// NewEntryQueryBuilder creates a new query builder instance.
func NewEntryQueryBuilder() *EntryQueryBuilder {
	return &EntryQueryBuilder{}
}

// BuildThemeWhere builds the WHERE clause for theme listings.
// Returns an empty clause when the filter has no conditions.
func (qb *EntryQueryBuilder) BuildThemeWhere(f repository.ThemeFilter) (clause string, args []interface{}) {
	var conditions []string

	if f.Channel != "" {
		conditions = append(conditions, "channel = ?")
		args = append(args, f.Channel)
	}
	if f.MinTimestamp > 0 {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, f.MinTimestamp)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildTitleWhere builds the WHERE clause for title (entry) listings.
func (qb *EntryQueryBuilder) BuildTitleWhere(f repository.TitleFilter) (clause string, args []interface{}) {
	var conditions []string

	if f.Channel != "" {
		conditions = append(conditions, "channel = ?")
		args = append(args, f.Channel)
	}
	if f.Theme != "" {
		conditions = append(conditions, "theme = ?")
		args = append(args, f.Theme)
	}
	if f.MinTimestamp > 0 {
		conditions = append(conditions, "timestamp >= ?")
		args = append(args, f.MinTimestamp)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildSearchWhere builds the WHERE clause for full-text search.
// Every word must match title, description, or theme (word-order
// independent AND). SQLite LIKE is case-insensitive for ASCII, which
// matches the catalog's mostly-ASCII German titles well enough.
func (qb *EntryQueryBuilder) BuildSearchWhere(q repository.SearchQuery) (clause string, args []interface{}) {
	var conditions []string

	for _, word := range q.Words {
		pattern := search.EscapeLike(word)
		conditions = append(conditions, `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR theme LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	if q.Channel != "" {
		conditions = append(conditions, "channel = ?")
		args = append(args, q.Channel)
	}
	if q.Theme != "" {
		conditions = append(conditions, "theme = ?")
		args = append(args, q.Theme)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
