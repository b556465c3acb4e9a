package sqlite_test

import (
	"testing"

	"kuckmal/internal/infra/adapter/persistence/sqlite"
	"kuckmal/internal/repository"
)

/* ──────────────────────────── QueryBuilder Tests ──────────────────────────── */

func TestEntryQueryBuilder_BuildThemeWhere_Empty(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	clause, args := qb.BuildThemeWhere(repository.ThemeFilter{})

	if clause != "" {
		t.Errorf("clause = %q, want empty", clause)
	}
	if len(args) != 0 {
		t.Errorf("args length = %d, want 0", len(args))
	}
}

func TestEntryQueryBuilder_BuildThemeWhere_ChannelOnly(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	clause, args := qb.BuildThemeWhere(repository.ThemeFilter{Channel: "ARD"})

	expectedClause := "WHERE channel = ?"
	if clause != expectedClause {
		t.Errorf("clause = %q, want %q", clause, expectedClause)
	}
	if len(args) != 1 || args[0] != "ARD" {
		t.Errorf("args = %v, want [ARD]", args)
	}
}

func TestEntryQueryBuilder_BuildThemeWhere_ChannelAndTimestamp(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	clause, args := qb.BuildThemeWhere(repository.ThemeFilter{
		Channel:      "ZDF",
		MinTimestamp: 1700000000,
	})

	expectedClause := "WHERE channel = ? AND timestamp >= ?"
	if clause != expectedClause {
		t.Errorf("clause = %q, want %q", clause, expectedClause)
	}
	if len(args) != 2 {
		t.Fatalf("args length = %d, want 2", len(args))
	}
	if args[0] != "ZDF" || args[1] != int64(1700000000) {
		t.Errorf("args = %v, want [ZDF 1700000000]", args)
	}
}

func TestEntryQueryBuilder_BuildTitleWhere_AllFilters(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	clause, args := qb.BuildTitleWhere(repository.TitleFilter{
		Channel:      "ARD",
		Theme:        "Tatort",
		MinTimestamp: 1700000000,
	})

	expectedClause := "WHERE channel = ? AND theme = ? AND timestamp >= ?"
	if clause != expectedClause {
		t.Errorf("clause = %q, want %q", clause, expectedClause)
	}
	if len(args) != 3 {
		t.Fatalf("args length = %d, want 3", len(args))
	}
}

func TestEntryQueryBuilder_BuildSearchWhere_SingleWord(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	clause, args := qb.BuildSearchWhere(repository.SearchQuery{Words: []string{"rhein"}})

	expectedClause := `WHERE (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR theme LIKE ? ESCAPE '\')`
	if clause != expectedClause {
		t.Errorf("clause = %q, want %q", clause, expectedClause)
	}
	if len(args) != 3 {
		t.Fatalf("args length = %d, want 3", len(args))
	}
	for i, arg := range args {
		if arg != "%rhein%" {
			t.Errorf("args[%d] = %v, want %%rhein%%", i, arg)
		}
	}
}

func TestEntryQueryBuilder_BuildSearchWhere_MultipleWords(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	// Two words produce two AND-joined groups (word-order independent).
	clause, args := qb.BuildSearchWhere(repository.SearchQuery{
		Words: []string{"rhein", "doku"},
	})

	expectedClause := `WHERE (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR theme LIKE ? ESCAPE '\') AND (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR theme LIKE ? ESCAPE '\')`
	if clause != expectedClause {
		t.Errorf("clause = %q, want %q", clause, expectedClause)
	}
	if len(args) != 6 {
		t.Fatalf("args length = %d, want 6", len(args))
	}
	if args[0] != "%rhein%" || args[3] != "%doku%" {
		t.Errorf("args = %v, want rhein then doku groups", args)
	}
}

func TestEntryQueryBuilder_BuildSearchWhere_WithChannelAndTheme(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	clause, args := qb.BuildSearchWhere(repository.SearchQuery{
		Words:   []string{"wetten"},
		Channel: "ZDF",
		Theme:   "Show",
	})

	expectedClause := `WHERE (title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR theme LIKE ? ESCAPE '\') AND channel = ? AND theme = ?`
	if clause != expectedClause {
		t.Errorf("clause = %q, want %q", clause, expectedClause)
	}
	if len(args) != 5 {
		t.Fatalf("args length = %d, want 5", len(args))
	}
	if args[3] != "ZDF" || args[4] != "Show" {
		t.Errorf("args = %v, want channel ZDF and theme Show last", args)
	}
}

func TestEntryQueryBuilder_BuildSearchWhere_EscapesWildcards(t *testing.T) {
	t.Parallel()

	qb := sqlite.NewEntryQueryBuilder()

	// Literal % and _ in a search word must not act as wildcards.
	_, args := qb.BuildSearchWhere(repository.SearchQuery{Words: []string{"100%_pur"}})

	if len(args) != 3 {
		t.Fatalf("args length = %d, want 3", len(args))
	}
	want := `%100\%\_pur%`
	if args[0] != want {
		t.Errorf("args[0] = %v, want %s", args[0], want)
	}
}
