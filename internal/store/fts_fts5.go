//go:build sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
)

// initFTS creates the three FTS5 companion tables and their sync
// triggers. It is idempotent (IF NOT EXISTS throughout) so it can run
// against an already-ingested corpus file without disturbing it.
func initFTS(db *sql.DB) error {
	_, err := db.Exec(`
CREATE VIRTUAL TABLE IF NOT EXISTS law_documents_fts USING fts5(
  title, citation, text_snippet,
  content='law_documents', content_rowid='rowid', tokenize='unicode61'
);
CREATE TRIGGER IF NOT EXISTS law_documents_ai AFTER INSERT ON law_documents BEGIN
  INSERT INTO law_documents_fts(rowid, title, citation, text_snippet)
  VALUES (new.rowid, new.title, COALESCE(new.citation, ''), COALESCE(new.text_snippet, ''));
END;
CREATE TRIGGER IF NOT EXISTS law_documents_ad AFTER DELETE ON law_documents BEGIN
  INSERT INTO law_documents_fts(law_documents_fts, rowid, title, citation, text_snippet)
  VALUES ('delete', old.rowid, old.title, COALESCE(old.citation, ''), COALESCE(old.text_snippet, ''));
END;
CREATE TRIGGER IF NOT EXISTS law_documents_au AFTER UPDATE ON law_documents BEGIN
  INSERT INTO law_documents_fts(law_documents_fts, rowid, title, citation, text_snippet)
  VALUES ('delete', old.rowid, old.title, COALESCE(old.citation, ''), COALESCE(old.text_snippet, ''));
  INSERT INTO law_documents_fts(rowid, title, citation, text_snippet)
  VALUES (new.rowid, new.title, COALESCE(new.citation, ''), COALESCE(new.text_snippet, ''));
END;

CREATE VIRTUAL TABLE IF NOT EXISTS case_law_documents_fts USING fts5(
  title, citation, text_snippet,
  content='case_law_documents', content_rowid='rowid', tokenize='unicode61'
);
CREATE TRIGGER IF NOT EXISTS case_law_documents_ai AFTER INSERT ON case_law_documents BEGIN
  INSERT INTO case_law_documents_fts(rowid, title, citation, text_snippet)
  VALUES (new.rowid, new.title, COALESCE(new.citation, ''), COALESCE(new.text_snippet, ''));
END;
CREATE TRIGGER IF NOT EXISTS case_law_documents_ad AFTER DELETE ON case_law_documents BEGIN
  INSERT INTO case_law_documents_fts(case_law_documents_fts, rowid, title, citation, text_snippet)
  VALUES ('delete', old.rowid, old.title, COALESCE(old.citation, ''), COALESCE(old.text_snippet, ''));
END;
CREATE TRIGGER IF NOT EXISTS case_law_documents_au AFTER UPDATE ON case_law_documents BEGIN
  INSERT INTO case_law_documents_fts(case_law_documents_fts, rowid, title, citation, text_snippet)
  VALUES ('delete', old.rowid, old.title, COALESCE(old.citation, ''), COALESCE(old.text_snippet, ''));
  INSERT INTO case_law_documents_fts(rowid, title, citation, text_snippet)
  VALUES (new.rowid, new.title, COALESCE(new.citation, ''), COALESCE(new.text_snippet, ''));
END;

CREATE VIRTUAL TABLE IF NOT EXISTS preparatory_works_fts USING fts5(
  title, statute_citation, text_snippet,
  content='preparatory_works', content_rowid='rowid', tokenize='unicode61'
);
CREATE TRIGGER IF NOT EXISTS preparatory_works_ai AFTER INSERT ON preparatory_works BEGIN
  INSERT INTO preparatory_works_fts(rowid, title, statute_citation, text_snippet)
  VALUES (new.rowid, new.title, COALESCE(new.statute_citation, ''), COALESCE(new.text_snippet, ''));
END;
CREATE TRIGGER IF NOT EXISTS preparatory_works_ad AFTER DELETE ON preparatory_works BEGIN
  INSERT INTO preparatory_works_fts(preparatory_works_fts, rowid, title, statute_citation, text_snippet)
  VALUES ('delete', old.rowid, old.title, COALESCE(old.statute_citation, ''), COALESCE(old.text_snippet, ''));
END;
CREATE TRIGGER IF NOT EXISTS preparatory_works_au AFTER UPDATE ON preparatory_works BEGIN
  INSERT INTO preparatory_works_fts(preparatory_works_fts, rowid, title, statute_citation, text_snippet)
  VALUES ('delete', old.rowid, old.title, COALESCE(old.statute_citation, ''), COALESCE(old.text_snippet, ''));
  INSERT INTO preparatory_works_fts(rowid, title, statute_citation, text_snippet)
  VALUES (new.rowid, new.title, COALESCE(new.statute_citation, ''), COALESCE(new.text_snippet, ''));
END;
`)
	return err
}

// ftsSearchIDs runs a compiled FTS5 MATCH expression against table's
// companion FTS index, joined back to table by rowid, and returns ids
// ranked by SQLite's bm25 function (the backend's BM25-equivalent rank
// named in spec §4.5). tokens is unused on this build; the fallback
// build (fts_fallback.go) uses it instead of a MATCH expression.
func ftsSearchIDs(db *sql.DB, spec searchSpec, expr string, tokens []string, limit int) ([]string, error) {
	if expr == "" {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT t.id FROM %s f
		JOIN %s t ON t.rowid = f.rowid
		WHERE f MATCH ?%s
		ORDER BY rank
		LIMIT ?
	`, spec.ftsTable, spec.table, spec.extraWhere)

	args := append([]any{expr}, spec.extraArgs...)
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: fts search: %w", err)
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
