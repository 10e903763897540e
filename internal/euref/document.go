package euref

import (
	"sort"
	"strings"

	"github.com/thornvik/juricore/internal/models"
)

// crossDocumentFanout is the multiplier spec §4.9 applies to a
// caller-supplied result limit when extraction runs over a whole
// search result set rather than a single document.
const crossDocumentFanout = 24

// FromDocument extracts every EU reference from one document's
// searchable text, deduplicated by (normalized identifier, type)
// keeping the highest-confidence match per pair.
func FromDocument(doc models.Document) []models.EuReference {
	text := strings.Join(doc.SearchableText(), " ")
	matches := Extract(text)
	if len(matches) == 0 {
		return nil
	}

	best := map[string]Match{}
	order := []string{}
	for _, m := range matches {
		key := normalizedKey(m.EuID, string(m.EuType))
		if existing, ok := best[key]; !ok {
			best[key] = m
			order = append(order, key)
		} else if m.Confidence > existing.Confidence {
			best[key] = m
		}
	}

	statuteID, _ := doc.Metadata["statute_id"].(string)
	out := make([]models.EuReference, 0, len(order))
	for _, key := range order {
		m := best[key]
		out = append(out, models.EuReference{
			EuID:            m.EuID,
			EuType:          m.EuType,
			SourceKind:      doc.Kind,
			SourceID:        doc.ID,
			SourceStatuteID: statuteID,
			SourceCitation:  doc.Citation,
			SourceTitle:     doc.Title,
			SourceURL:       doc.SourceURL,
			ContextSnippet:  m.ContextSnippet,
			Confidence:      m.Confidence,
		})
	}
	return out
}

// FromDocuments runs FromDocument across a whole result set and caps
// the aggregate at limit*crossDocumentFanout references, the ceiling
// spec §4.9 sets for multi-document extraction (get_eu_basis,
// search_eu_implementations and friends operate over several source
// documents per call, so a flat per-document limit would starve
// later documents in the set).
func FromDocuments(docs []models.Document, limit int) []models.EuReference {
	max := limit * crossDocumentFanout
	if max <= 0 {
		max = crossDocumentFanout
	}

	var out []models.EuReference
	for _, doc := range docs {
		out = append(out, FromDocument(doc)...)
		if len(out) >= max {
			out = out[:max]
			break
		}
	}
	return out
}

// ImplementationSummary groups a set of EU references by the EU act
// they implement, per spec §4.9's get_national_implementations shape.
type ImplementationSummary struct {
	EuID                string   `json:"eu_id"`
	EuType              string   `json:"eu_type"`
	ImplementationCount int      `json:"implementation_count"`
	RelatedStatutes     []string `json:"related_statutes"`
}

// Summarize groups refs by (eu_id, eu_type), counting distinct
// source_ids as ImplementationCount and separately collecting the
// sorted, deduplicated set of source_statute_ids as RelatedStatutes
// (the two fields track different things: every reference has a
// source_id, but not every reference carries a source_statute_id).
// Groups are ordered by implementation count descending, eu_id
// ascending as a tiebreak.
func Summarize(refs []models.EuReference) []ImplementationSummary {
	type group struct {
		euID, euType string
		sourceIDs    map[string]bool
		statutes     map[string]bool
	}
	groups := map[string]*group{}
	var order []string

	for _, r := range refs {
		key := normalizedKey(r.EuID, string(r.EuType))
		g, ok := groups[key]
		if !ok {
			g = &group{euID: r.EuID, euType: string(r.EuType), sourceIDs: map[string]bool{}, statutes: map[string]bool{}}
			groups[key] = g
			order = append(order, key)
		}
		if r.SourceID != "" {
			g.sourceIDs[r.SourceID] = true
		}
		if r.SourceStatuteID != "" {
			g.statutes[r.SourceStatuteID] = true
		}
	}

	out := make([]ImplementationSummary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		statutes := make([]string, 0, len(g.statutes))
		for s := range g.statutes {
			statutes = append(statutes, s)
		}
		sort.Strings(statutes)
		out = append(out, ImplementationSummary{
			EuID:                g.euID,
			EuType:              g.euType,
			ImplementationCount: len(g.sourceIDs),
			RelatedStatutes:     statutes,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ImplementationCount != out[j].ImplementationCount {
			return out[i].ImplementationCount > out[j].ImplementationCount
		}
		return out[i].EuID < out[j].EuID
	})
	return out
}
