//go:build !sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// initFTS is a no-op on this build: without FTS5 support there is no
// virtual table to create, and ftsSearchIDs below falls back to a
// LIKE scan over the primary table directly.
func initFTS(_ *sql.DB) error { return nil }

// ftsSearchIDs approximates the full-text stage with an AND-of-LIKE
// scan across title/citation/text_snippet when the binary was built
// without FTS5 support, the same accommodation the teacher project's
// fts_fallback.go makes for its own single-table index. expr (the
// compiled MATCH expression) is unused on this build.
func ftsSearchIDs(db *sql.DB, spec searchSpec, expr string, tokens []string, limit int) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var clauses []string
	var args []any
	for _, tok := range tokens {
		like := "%" + tok + "%"
		clauses = append(clauses, fmt.Sprintf("(%s LIKE ? OR %s LIKE ? OR %s LIKE ?)",
			spec.likeTitleCol, spec.likeCitationCol, spec.likeSnippetCol))
		args = append(args, like, like, like)
	}

	query := fmt.Sprintf(`
		SELECT t.id FROM %s t
		WHERE %s%s
		ORDER BY t.id
		LIMIT ?
	`, spec.table, strings.Join(clauses, " AND "), spec.extraWhere)

	args = append(args, spec.extraArgs...)
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: fallback search: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
