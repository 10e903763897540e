package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/thornvik/juricore/internal/citation"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/querycompile"
)

// CaseLawFilters narrows every stage of SearchCaseLaw (spec §4.5:
// "applied at every stage").
type CaseLawFilters struct {
	Court    string
	DateFrom string
	DateTo   string
}

// CountCaseLawDocuments returns the row count of case_law_documents,
// or 0 if the Store is unavailable.
func (s *Store) CountCaseLawDocuments() int {
	db, err := s.requireDB()
	if err != nil {
		return 0
	}
	return tableCountIfExists(db, "case_law_documents")
}

func (f CaseLawFilters) clause() (string, []any) {
	var parts []string
	var args []any
	if f.Court != "" {
		parts = append(parts, "court LIKE ?")
		args = append(args, "%"+f.Court+"%")
	}
	if f.DateFrom != "" {
		parts = append(parts, "decision_date >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		parts = append(parts, "decision_date <= ?")
		args = append(args, f.DateTo)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return " AND " + strings.Join(parts, " AND "), args
}

// SearchCaseLaw runs the case-law variant of the three-tier template:
// the exact stage matches ecli/file_number/citation/case_id/id, and
// default ordering (when rank is absent) is decision_date desc, then
// id desc (spec §4.5).
func (s *Store) SearchCaseLaw(query string, limit int, filters CaseLawFilters) ([]models.Document, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, 100)
	filterClause, filterArgs := filters.clause()

	var stages [][]models.Document

	exact, err := s.searchCaseLawExact(db, query, limit, filterClause, filterArgs)
	if err != nil {
		return nil, err
	}
	if len(exact) > 0 {
		stages = append(stages, exact)
	}

	ftsDocs, err := s.searchCaseLawFTS(db, query, limit, filterClause, filterArgs)
	if err != nil {
		return nil, err
	}
	stages = append(stages, ftsDocs)

	subDocs, err := s.searchCaseLawSubstring(db, query, limit, filterClause, filterArgs)
	if err != nil {
		return nil, err
	}
	stages = append(stages, subDocs)

	return dedupByID(limit, func(d models.Document) string { return d.ID }, stages...), nil
}

func (s *Store) searchCaseLawExact(db *sql.DB, query string, limit int, filterClause string, filterArgs []any) ([]models.Document, error) {
	candidates := caseLawExactCandidates(query)
	if len(candidates) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(candidates))
	args := make([]any, len(candidates))
	for i, c := range candidates {
		placeholders[i] = "?"
		args[i] = c
	}
	cols := []string{"ecli", "file_number", "citation", "case_id", "id"}
	var orClauses []string
	for _, col := range cols {
		orClauses = append(orClauses, fmt.Sprintf("lower(%s) IN (%s)", col, strings.Join(placeholders, ",")))
	}
	// Each column probe repeats the same candidate set; duplicate the
	// args block once per column so the placeholder count matches.
	fullArgs := make([]any, 0, len(args)*len(cols))
	for range cols {
		fullArgs = append(fullArgs, args...)
	}
	fullArgs = append(fullArgs, filterArgs...)
	fullArgs = append(fullArgs, limit)

	q := `SELECT ` + caseLawColumns + ` FROM case_law_documents WHERE (` +
		strings.Join(orClauses, " OR ") + `)` + filterClause +
		` ORDER BY decision_date DESC, id DESC LIMIT ?`

	rows, err := db.Query(q, fullArgs...)
	if err != nil {
		return nil, fmt.Errorf("store: search case law exact: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		doc, err := scanCaseLawDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// caseLawExactCandidates collects lowercased equality candidates for
// the exact stage: the raw query itself, plus any lookup citation the
// German grammar derives from it.
func caseLawExactCandidates(query string) []string {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}
	candidates := []string{strings.ToLower(q)}
	if g := citation.For("de"); g != nil {
		if parsed := g.Parse(q); parsed != nil {
			for _, lc := range parsed.LookupCitations {
				candidates = append(candidates, strings.ToLower(lc))
			}
		}
	}
	return candidates
}

func (s *Store) searchCaseLawFTS(db *sql.DB, query string, limit int, filterClause string, filterArgs []any) ([]models.Document, error) {
	compiled := querycompile.Compile(query)
	if compiled.Primary == "" {
		return nil, nil
	}
	spec := searchSpec{
		table:           "case_law_documents",
		ftsTable:        "case_law_documents_fts",
		extraWhere:      filterClause,
		extraArgs:       filterArgs,
		likeTitleCol:    "t.title",
		likeCitationCol: "t.citation",
		likeSnippetCol:  "t.text_snippet",
	}
	tokens := substringTokens(query)

	ids, err := ftsSearchIDs(db, spec, compiled.Primary, tokens, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search case law fts: %w", err)
	}
	if len(ids) < limit && compiled.Fallback != "" {
		more, err := ftsSearchIDs(db, spec, compiled.Fallback, tokens, limit-len(ids))
		if err != nil {
			return nil, fmt.Errorf("store: search case law fallback fts: %w", err)
		}
		ids = append(ids, more...)
	}
	return fetchCaseLawByIDsOrdered(db, ids, filterClause, filterArgs)
}

func fetchCaseLawByIDsOrdered(db *sql.DB, ids []string, filterClause string, filterArgs []any) ([]models.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	args = append(args, filterArgs...)
	q := `SELECT ` + caseLawColumns + ` FROM case_law_documents WHERE id IN (` +
		strings.Join(placeholders, ",") + `)` + filterClause

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: fetch case law by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Document, len(ids))
	for rows.Next() {
		doc, err := scanCaseLawDocument(rows)
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

func (s *Store) searchCaseLawSubstring(db *sql.DB, query string, limit int, filterClause string, filterArgs []any) ([]models.Document, error) {
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
	args = append(args, filterArgs...)
	args = append(args, limit)

	q := `SELECT ` + caseLawColumns + ` FROM case_law_documents WHERE ` +
		strings.Join(clauses, " AND ") + filterClause +
		` ORDER BY decision_date DESC, id DESC LIMIT ?`

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search case law substring: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		doc, err := scanCaseLawDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *Store) getCaseLawDocumentByAnyID(db *sql.DB, id string) (*models.Document, error) {
	if !tableExists(db, "case_law_documents") {
		return nil, nil
	}
	lid := strings.ToLower(id)
	row := db.QueryRow(`
		SELECT `+caseLawColumns+` FROM case_law_documents
		WHERE id = ? OR lower(case_id) = ? OR lower(ecli) = ? OR lower(file_number) = ? OR lower(citation) = ?
		LIMIT 1
	`, id, lid, lid, lid, lid)
	doc, err := scanCaseLawDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get case law document: %w", err)
	}
	return &doc, nil
}
