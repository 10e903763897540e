package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/thornvik/juricore/internal/citation"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/querycompile"
)

// PrepHints are the inputs spec §4.5 builds a preparatory-works hint
// list from: citation, statuteId, query. At least one must be
// non-empty for the adapter to call this at all; the Store itself
// degrades to the filter-only listing if all three are empty.
type PrepHints struct {
	Citation  string
	StatuteID string
	Query     string
}

// CountPreparatoryWorks returns the row count of preparatory_works, or
// 0 if the Store is unavailable.
func (s *Store) CountPreparatoryWorks() int {
	db, err := s.requireDB()
	if err != nil {
		return 0
	}
	return tableCountIfExists(db, "preparatory_works")
}

// hintList assembles the ordered hint list from PrepHints plus the
// parsed citation's code, deduplicated, empties dropped.
func (h PrepHints) hintList() []string {
	var hints []string
	seen := map[string]struct{}{}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		hints = append(hints, v)
	}
	add(h.Citation)
	add(h.StatuteID)
	add(h.Query)
	if g := citation.For("de"); g != nil && h.Citation != "" {
		if parsed := g.Parse(h.Citation); parsed != nil {
			if code, ok := parsed.Parsed["code"]; ok {
				add(code)
			}
		}
	}
	return hints
}

// SearchPreparatoryWorks implements spec §4.5's preparatory-works
// search: full-text stage on the first hint, then substring stage
// across all hints, then a filter-only listing when no hints exist.
func (s *Store) SearchPreparatoryWorks(hints PrepHints, limit int) ([]models.Document, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	limit = clampLimit(limit, 100)

	filterClause, filterArgs := prepFilterClause(hints.StatuteID)
	hintList := hints.hintList()

	if len(hintList) == 0 {
		return fetchPrepFilterOnly(db, filterClause, filterArgs, limit)
	}

	var stages [][]models.Document

	ftsDocs, err := searchPrepFTS(db, hintList[0], limit, filterClause, filterArgs)
	if err != nil {
		return nil, err
	}
	stages = append(stages, ftsDocs)

	subDocs, err := searchPrepSubstringAnyHint(db, hintList, limit, filterClause, filterArgs)
	if err != nil {
		return nil, err
	}
	stages = append(stages, subDocs)

	return dedupByID(limit, func(d models.Document) string { return d.ID }, stages...), nil
}

func prepFilterClause(statuteID string) (string, []any) {
	if statuteID == "" {
		return "", nil
	}
	return " AND statute_id = ?", []any{statuteID}
}

func fetchPrepFilterOnly(db *sql.DB, filterClause string, filterArgs []any, limit int) ([]models.Document, error) {
	where := ""
	args := []any{}
	if filterClause != "" {
		where = "WHERE" + strings.TrimPrefix(filterClause, " AND")
		args = append(args, filterArgs...)
	}
	args = append(args, limit)

	q := `SELECT ` + preparatoryWorkColumns + ` FROM preparatory_works ` + where +
		` ORDER BY publication_date DESC, id DESC LIMIT ?`

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: preparatory works listing: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		doc, err := scanPreparatoryWork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func searchPrepFTS(db *sql.DB, hint string, limit int, filterClause string, filterArgs []any) ([]models.Document, error) {
	compiled := querycompile.Compile(hint)
	if compiled.Primary == "" {
		return nil, nil
	}
	spec := searchSpec{
		table:           "preparatory_works",
		ftsTable:        "preparatory_works_fts",
		extraWhere:      filterClause,
		extraArgs:       filterArgs,
		likeTitleCol:    "t.title",
		likeCitationCol: "t.statute_citation",
		likeSnippetCol:  "t.text_snippet",
	}
	tokens := substringTokens(hint)

	ids, err := ftsSearchIDs(db, spec, compiled.Primary, tokens, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search prep works fts: %w", err)
	}
	if len(ids) < limit && compiled.Fallback != "" {
		more, err := ftsSearchIDs(db, spec, compiled.Fallback, tokens, limit-len(ids))
		if err != nil {
			return nil, fmt.Errorf("store: search prep works fallback fts: %w", err)
		}
		ids = append(ids, more...)
	}
	return fetchPrepByIDsOrdered(db, ids, filterClause, filterArgs)
}

func fetchPrepByIDsOrdered(db *sql.DB, ids []string, filterClause string, filterArgs []any) ([]models.Document, error) {
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
	q := `SELECT ` + preparatoryWorkColumns + ` FROM preparatory_works WHERE id IN (` +
		strings.Join(placeholders, ",") + `)` + filterClause

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: fetch prep works by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]models.Document, len(ids))
	for rows.Next() {
		doc, err := scanPreparatoryWork(rows)
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

// searchPrepSubstringAnyHint ORs each hint's own AND-of-tokens clause;
// the spec leaves the cross-hint combinator unspecified, and treating
// distinct hints (citation, statuteId, query) as alternatives rather
// than a conjunction maximizes recall for this fallback tier.
func searchPrepSubstringAnyHint(db *sql.DB, hints []string, limit int, filterClause string, filterArgs []any) ([]models.Document, error) {
	var hintClauses []string
	var args []any
	for _, hint := range hints {
		tokens := substringTokens(hint)
		if len(tokens) == 0 {
			continue
		}
		var tokClauses []string
		for _, tok := range tokens {
			like := "%" + tok + "%"
			tokClauses = append(tokClauses, "(title LIKE ? OR statute_citation LIKE ? OR text_snippet LIKE ?)")
			args = append(args, like, like, like)
		}
		hintClauses = append(hintClauses, "("+strings.Join(tokClauses, " AND ")+")")
	}
	if len(hintClauses) == 0 {
		return nil, nil
	}
	args = append(args, filterArgs...)
	args = append(args, limit)

	q := `SELECT ` + preparatoryWorkColumns + ` FROM preparatory_works WHERE (` +
		strings.Join(hintClauses, " OR ") + `)` + filterClause +
		` ORDER BY publication_date DESC, id DESC LIMIT ?`

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search prep works substring: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		doc, err := scanPreparatoryWork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *Store) getPreparatoryWorkByID(db *sql.DB, id string) (*models.Document, error) {
	if !tableExists(db, "preparatory_works") {
		return nil, nil
	}
	row := db.QueryRow(`SELECT `+preparatoryWorkColumns+` FROM preparatory_works WHERE id = ? OR dip_id = ?`, id, id)
	doc, err := scanPreparatoryWork(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: get preparatory work: %w", err)
	}
	return &doc, nil
}
