// Package postgres provides the PostgreSQL implementation of the media repository.
package postgres

import (
	"fmt"
	"strings"

	"kuckmal/internal/pkg/search"
	"kuckmal/internal/repository"
)

// EntryQueryBuilder builds WHERE clauses for catalog queries using
// PostgreSQL's numbered placeholders. The builders are shared between
// COUNT and SELECT queries so both always see the same conditions.
type EntryQueryBuilder struct{}

// NewEntryQueryBuilder creates a new query builder instance.
func NewEntryQueryBuilder() *EntryQueryBuilder {
	return &EntryQueryBuilder{}
}

// BuildThemeWhere builds the WHERE clause for theme listings.
// Returns an empty clause when the filter has no conditions.
func (qb *EntryQueryBuilder) BuildThemeWhere(f repository.ThemeFilter) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if f.Channel != "" {
		conditions = append(conditions, fmt.Sprintf("channel = $%d", paramIndex))
		args = append(args, f.Channel)
		paramIndex++
	}
	if f.MinTimestamp > 0 {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", paramIndex))
		args = append(args, f.MinTimestamp)
		paramIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildTitleWhere builds the WHERE clause for title (entry) listings.
func (qb *EntryQueryBuilder) BuildTitleWhere(f repository.TitleFilter) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if f.Channel != "" {
		conditions = append(conditions, fmt.Sprintf("channel = $%d", paramIndex))
		args = append(args, f.Channel)
		paramIndex++
	}
	if f.Theme != "" {
		conditions = append(conditions, fmt.Sprintf("theme = $%d", paramIndex))
		args = append(args, f.Theme)
		paramIndex++
	}
	if f.MinTimestamp > 0 {
		conditions = append(conditions, fmt.Sprintf("timestamp >= $%d", paramIndex))
		args = append(args, f.MinTimestamp)
		paramIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

// BuildSearchWhere builds the WHERE clause for full-text search.
// Every word must match title, description, or theme (word-order
// independent AND). ILIKE keeps matching case-insensitive beyond ASCII,
// which SQLite's LIKE cannot do for umlauts.
func (qb *EntryQueryBuilder) BuildSearchWhere(q repository.SearchQuery) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	// Numbered placeholders let one argument serve all three columns.
	for _, word := range q.Words {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d OR theme ILIKE $%d)",
			paramIndex, paramIndex, paramIndex))
		args = append(args, search.EscapeLike(word))
		paramIndex++
	}

	if q.Channel != "" {
		conditions = append(conditions, fmt.Sprintf("channel = $%d", paramIndex))
		args = append(args, q.Channel)
		paramIndex++
	}
	if q.Theme != "" {
		conditions = append(conditions, fmt.Sprintf("theme = $%d", paramIndex))
		args = append(args, q.Theme)
		paramIndex++
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
