package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/thornvik/juricore/internal/apperr"
	"github.com/thornvik/juricore/internal/citation"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/querycompile"
)

// CountLawDocuments returns the row count of law_documents, or 0 if the
// Store is unavailable.
func (s *Store) CountLawDocuments() int {
	db, err := s.requireDB()
	if err != nil {
		return 0
	}
	return tableCountIfExists(db, "law_documents")
}

// GetLawDocument fetches a single statute/regulation row by id.
func (s *Store) GetLawDocument(id string) (*models.Document, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	row := db.QueryRow(`SELECT `+lawDocumentColumns+` FROM law_documents WHERE id = ?`, id)
	doc, err := scanLawDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get law document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns up to limit statute rows ordered by id, with
// no query term, clamped to the EU-linkage ceiling of 200. The
// EU-linkage family (get_national_implementations, validate_eu_compliance
// with no narrowing citation/statuteId) scans these rows rather than a
// search result set, since an EU act can be implemented by a statute
// the caller never names; rows past the first 200 by id are not scanned.
func (s *Store) ListDocuments(limit int) ([]models.Document, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, 200)
	rows, err := db.Query(`SELECT `+lawDocumentColumns+` FROM law_documents ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		doc, err := scanLawDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("store: list documents scan: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// SearchDocuments runs the three-tier statute search described in
// spec §4.5: exact citation, then full-text, then substring, merged
// with stable dedup by id and capped at clamp(limit, 1, 100).
func (s *Store) SearchDocuments(query string, limit int) ([]models.Document, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, 100)

	var stages [][]models.Document

	if exact, err := s.searchDocumentsExact(db, query, limit); err != nil {
		return nil, err
	} else if len(exact) > 0 {
		stages = append(stages, exact)
	}

	ftsDocs, err := s.searchDocumentsFTS(db, query, limit)
	if err != nil {
		return nil, err
	}
	stages = append(stages, ftsDocs)

	subDocs, err := s.searchDocumentsSubstring(db, query, limit)
	if err != nil {
		return nil, err
	}
	stages = append(stages, subDocs)

	return dedupByID(limit, func(d models.Document) string { return d.ID }, stages...), nil
}

func (s *Store) searchDocumentsExact(db *sql.DB, query string, limit int) ([]models.Document, error) {
	g := citation.For("de")
	if g == nil {
		return nil, nil
	}
	parsed := g.Parse(query)
	if parsed == nil || len(parsed.LookupCitations) == 0 {
		return nil, nil
	}
	return fetchByPreferredCitation(db, "law_documents", lawDocumentColumns, "citation", scanLawDocument, parsed.LookupCitations, limit)
}

func (s *Store) searchDocumentsFTS(db *sql.DB, query string, limit int) ([]models.Document, error) {
	compiled := querycompile.Compile(query)
	if compiled.Primary == "" {
		return nil, nil
	}
	spec := searchSpec{
		table:           "law_documents",
		ftsTable:        "law_documents_fts",
		likeTitleCol:    "t.title",
		likeCitationCol: "t.citation",
		likeSnippetCol:  "t.text_snippet",
	}
	tokens := substringTokens(query)

	ids, err := ftsSearchIDs(db, spec, compiled.Primary, tokens, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search documents fts: %w", err)
	}
	if len(ids) < limit && compiled.Fallback != "" {
		more, err := ftsSearchIDs(db, spec, compiled.Fallback, tokens, limit-len(ids))
		if err != nil {
			return nil, fmt.Errorf("store: search documents fallback fts: %w", err)
		}
		ids = append(ids, more...)
	}
	return fetchLawDocumentsByIDsOrdered(db, ids)
}

func (s *Store) searchDocumentsSubstring(db *sql.DB, query string, limit int) ([]models.Document, error) {
	tokens := substringTokens(query)
	if len(tokens) == 0 {
		return nil, nil
	}
	var clauses []string
	var args []any
	for _, tok := range tokens {
		like := "%" + tok + "%"
		clauses = append(clauses, "(title LIKE ? OR citation LIKE ? OR text_snippet LIKE ?)")
		args = append(args, like, like, like)
	}
	q := `SELECT ` + lawDocumentColumns + ` FROM law_documents WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY id LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search documents substring: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		doc, err := scanLawDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// GetDocumentsByCitation parses citation and joins on any of its
// normalized lookup forms, preferred normalization first (spec §4.5).
func (s *Store) GetDocumentsByCitation(rawCitation string, limit int) ([]models.Document, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, 100)

	g := citation.For("de")
	if g == nil {
		return nil, nil
	}
	parsed := g.Parse(rawCitation)
	if parsed == nil || len(parsed.LookupCitations) == 0 {
		return nil, nil
	}
	return fetchByPreferredCitation(db, "law_documents", lawDocumentColumns, "citation", scanLawDocument, parsed.LookupCitations, limit)
}

// fetchByPreferredCitation fetches rows from table whose lowercased
// citationCol matches any candidate (also lowercased), ordering by
// candidate preference (first candidate first) then id ascending.
func fetchByPreferredCitation(db *sql.DB, table, columns, citationCol string, scanFn func(scanner) (models.Document, error), candidates []string, limit int) ([]models.Document, error) {
	placeholders := make([]string, len(candidates))
	args := make([]any, 0, len(candidates)*2)
	caseParts := make([]string, len(candidates))
	for i, c := range candidates {
		lc := strings.ToLower(c)
		placeholders[i] = "?"
		args = append(args, lc)
		caseParts[i] = fmt.Sprintf("WHEN ? THEN %d", i)
	}
	for _, c := range candidates {
		args = append(args, strings.ToLower(c))
	}
	args = append(args, limit)

	q := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE lower(%s) IN (%s)
		ORDER BY CASE lower(%s) %s ELSE %d END, id ASC
		LIMIT ?
	`, columns, table, citationCol, strings.Join(placeholders, ","),
		citationCol, strings.Join(caseParts, " "), len(candidates))

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: fetch by citation: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		doc, err := scanFn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func fetchLawDocumentsByIDsOrdered(db *sql.DB, ids []string) ([]models.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	q := `SELECT ` + lawDocumentColumns + ` FROM law_documents WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: fetch by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Document, len(ids))
	for rows.Next() {
		doc, err := scanLawDocument(rows)
		if err != nil {
			return nil, err
		}
		byID[doc.ID] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := byID[id]; ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

// GetDocument probes statutes, then case law, then preparatory works,
// and returns the first match (spec §4.5 by-id lookup).
func (s *Store) GetDocument(id string) (*models.Document, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	if !anyPrimaryTableExists(db) {
		return nil, apperr.ErrUnavailable
	}

	if doc, err := s.GetLawDocument(id); err != nil {
		return nil, err
	} else if doc != nil {
		return doc, nil
	}
	if doc, err := s.getCaseLawDocumentByAnyID(db, id); err != nil {
		return nil, err
	} else if doc != nil {
		return doc, nil
	}
	if doc, err := s.getPreparatoryWorkByID(db, id); err != nil {
		return nil, err
	} else if doc != nil {
		return doc, nil
	}
	return nil, nil
}

func anyPrimaryTableExists(db *sql.DB) bool {
	for _, t := range []string{"law_documents", "case_law_documents", "preparatory_works"} {
		if tableExists(db, t) {
			return true
		}
	}
	return false
}
