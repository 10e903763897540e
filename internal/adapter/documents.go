package adapter

import (
	"errors"
	"sort"
	"strings"

	"github.com/thornvik/juricore/internal/apperr"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/store"
)

// SearchDocuments runs the Store's three-tier statute search, falling
// back to the seed fixture when the Store is unavailable (spec §4.5,
// §9's Open Question on unavailable-vs-empty).
func (a *German) SearchDocuments(query string, limit int) (DocumentsResult, error) {
	if a.storeAvailable() {
		docs, err := a.store.SearchDocuments(query, limit)
		if err != nil && !errors.Is(err, apperr.ErrUnavailable) {
			return DocumentsResult{}, err
		}
		if err == nil {
			return DocumentsResult{Documents: docs, Total: len(docs)}, nil
		}
	}
	docs := seedSearch(seedDocuments, query, limit)
	return DocumentsResult{Documents: docs, Total: len(docs)}, nil
}

// GetDocument probes statutes, case law, then preparatory works
// (spec §4.5's by-id lookup), falling back to the seed fixture by id
// or citation when the Store is unavailable.
func (a *German) GetDocument(id string) (*models.Document, error) {
	if a.storeAvailable() {
		doc, err := a.store.GetDocument(id)
		if err != nil && !errors.Is(err, apperr.ErrUnavailable) {
			return nil, err
		}
		if err == nil {
			return doc, nil
		}
	}
	for i := range seedDocuments {
		d := seedDocuments[i]
		if d.ID == id || strings.EqualFold(d.Citation, id) {
			return &d, nil
		}
	}
	return nil, nil
}

// SearchCaseLaw runs the Store's case-law three-tier search. The seed
// fixture carries no case-law rows, so an unavailable Store yields an
// empty result rather than a fabricated one.
func (a *German) SearchCaseLaw(query string, limit int, filters store.CaseLawFilters) (DocumentsResult, error) {
	if !a.storeAvailable() {
		return DocumentsResult{}, nil
	}
	docs, err := a.store.SearchCaseLaw(query, limit, filters)
	if err != nil {
		if errors.Is(err, apperr.ErrUnavailable) {
			return DocumentsResult{}, nil
		}
		return DocumentsResult{}, err
	}
	return DocumentsResult{Documents: docs, Total: len(docs)}, nil
}

// GetPreparatoryWorks runs the Store's preparatory-works search. Like
// case law, there is no seed fallback: the fixture only covers
// statutes well enough to keep parse/validate/format/currency/EU
// demonstrable without a live corpus.
func (a *German) GetPreparatoryWorks(hints store.PrepHints, limit int) (DocumentsResult, error) {
	if !a.storeAvailable() {
		return DocumentsResult{}, nil
	}
	docs, err := a.store.SearchPreparatoryWorks(hints, limit)
	if err != nil {
		if errors.Is(err, apperr.ErrUnavailable) {
			return DocumentsResult{}, nil
		}
		return DocumentsResult{}, err
	}
	return DocumentsResult{Documents: docs, Total: len(docs)}, nil
}

// getByStatuteID fetches every document for a statute, used by
// currency check and EU linkage when only a statuteId is given: the
// seed fixture indexes by statute_id the same way law_documents does.
func (a *German) getByStatuteID(statuteID string) []models.Document {
	if a.storeAvailable() {
		docs, err := a.store.SearchDocuments(statuteID, 100)
		if err == nil {
			var out []models.Document
			for _, d := range docs {
				if sid, _ := d.Metadata["statute_id"].(string); sid == statuteID {
					out = append(out, d)
				}
			}
			return out
		}
	}
	var out []models.Document
	for _, d := range seedDocuments {
		if sid, _ := d.Metadata["statute_id"].(string); sid == statuteID {
			out = append(out, d)
		}
	}
	return out
}

// getByCitation fetches every document matching citation, preferring
// the Store's normalized join and falling back to the seed fixture's
// literal citation match.
func (a *German) getByCitation(rawCitation string) []models.Document {
	if a.storeAvailable() {
		docs, err := a.store.GetDocumentsByCitation(rawCitation, 100)
		if err == nil && len(docs) > 0 {
			return docs
		}
	}
	var out []models.Document
	for _, d := range seedDocuments {
		if strings.EqualFold(d.Citation, rawCitation) {
			out = append(out, d)
		}
	}
	return out
}

// seedSearch approximates the Store's substring stage over the fixed
// seed fixture: exact citation match first, then AND-of-substring
// tokens, id ascending.
func seedSearch(docs []models.Document, query string, limit int) []models.Document {
	limit = clampLimit(limit, 100)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var exact, rest []models.Document
	for _, d := range docs {
		if strings.EqualFold(d.Citation, query) {
			exact = append(exact, d)
			continue
		}
		if seedMatches(d, q) {
			rest = append(rest, d)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].ID < rest[j].ID })

	out := append(exact, rest...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func seedMatches(d models.Document, lowerQuery string) bool {
	tokens := strings.Fields(lowerQuery)
	if len(tokens) == 0 {
		return false
	}
	haystack := strings.ToLower(d.Title + " " + d.Citation + " " + d.TextSnippet)
	for _, tok := range tokens {
		if len(tok) < 2 {
			continue
		}
		if !strings.Contains(haystack, tok) {
			return false
		}
	}
	return true
}

func clampLimit(limit, max int) int {
	if limit <= 0 {
		return 20
	}
	if limit > max {
		return max
	}
	return limit
}
