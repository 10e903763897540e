package adapter

import (
	"sort"

	"github.com/thornvik/juricore/internal/euref"
	"github.com/thornvik/juricore/internal/models"
)

// euLinkageLimitCeiling is the EU-linkage family's own clamp ceiling
// (spec §5: "clamp(limit, 1, 100) (200 for EU-linkage family)").
const euLinkageLimitCeiling = 200

func clampEuLimit(limit int) int {
	return clampLimit(limit, euLinkageLimitCeiling)
}

// GetEuBasis resolves the candidate source documents (by citation,
// statuteId, or documentId — spec §6 accepts any of the three) and
// extracts every EU reference they carry.
func (a *German) GetEuBasis(req EuBasisRequest) (EuReferencesResult, error) {
	var docs []models.Document
	switch {
	case req.DocumentID != "":
		doc, err := a.GetDocument(req.DocumentID)
		if err != nil {
			return EuReferencesResult{}, err
		}
		if doc != nil {
			docs = append(docs, *doc)
		}
	case req.StatuteID != "":
		docs = a.getByStatuteID(req.StatuteID)
	case req.Citation != "":
		docs = a.getByCitation(req.Citation)
	}

	refs := euref.FromDocuments(docs, clampEuLimit(req.Limit))
	return EuReferencesResult{References: refs, Total: len(refs)}, nil
}

// SearchEuImplementations runs the normal document search and returns
// the EU references found across the result set, the EU-linkage
// analogue of search_documents.
func (a *German) SearchEuImplementations(query string, limit int) (EuReferencesResult, error) {
	limit = clampEuLimit(limit)
	res, err := a.SearchDocuments(query, limit)
	if err != nil {
		return EuReferencesResult{}, err
	}
	refs := euref.FromDocuments(res.Documents, limit)
	return EuReferencesResult{References: refs, Total: len(refs)}, nil
}

// GetNationalImplementations scans every retrievable document for EU
// references matching euID (via euref.IdentifiersMatch, tolerant of
// CELEX-vs-bare and jurisdiction-prefix shape differences) and groups
// the survivors into implementation summaries per spec's "implementation
// summaries" shape.
func (a *German) GetNationalImplementations(euID string, limit int) (ImplementationsResult, error) {
	limit = clampEuLimit(limit)
	docs := a.allDocuments()

	var matched []models.EuReference
	for _, ref := range euref.FromDocuments(docs, limit) {
		if !euref.IdentifiersMatch(ref.EuID, euID) {
			continue
		}
		matched = append(matched, ref)
	}
	summaries := euref.Summarize(matched)
	return ImplementationsResult{Results: summaries, Total: len(summaries)}, nil
}

// GetProvisionEuBasis is GetEuBasis restricted to a single document.
func (a *German) GetProvisionEuBasis(documentID string, limit int) (EuReferencesResult, error) {
	return a.GetEuBasis(EuBasisRequest{DocumentID: documentID, Limit: limit})
}

// ValidateEuCompliance reports whether euID is implemented anywhere in
// the retrievable corpus (spec §6: status ∈ {mapped, not_mapped,
// unknown}). "unknown" covers the Store-unavailable-with-no-seed-hit
// case, distinct from a definite absence.
func (a *German) ValidateEuCompliance(req EuComplianceRequest) (EuComplianceResult, error) {
	var scope []models.Document
	switch {
	case req.StatuteID != "":
		scope = a.getByStatuteID(req.StatuteID)
	case req.Citation != "":
		scope = a.getByCitation(req.Citation)
	default:
		scope = a.allDocuments()
	}

	result := EuComplianceResult{EuID: req.EuID}
	if len(scope) == 0 {
		if !a.storeAvailable() {
			result.Status = "unknown"
			result.Reason = "store unavailable"
			return result, nil
		}
		result.Status = "not_mapped"
		return result, nil
	}

	refs := euref.FromDocuments(scope, euLinkageLimitCeiling)
	statutes := map[string]bool{}
	for _, ref := range refs {
		if !euref.IdentifiersMatch(ref.EuID, req.EuID) {
			continue
		}
		result.Matches++
		if ref.SourceStatuteID != "" {
			statutes[ref.SourceStatuteID] = true
		}
	}
	if result.Matches == 0 {
		result.Status = "not_mapped"
		return result, nil
	}
	result.Status = "mapped"
	for s := range statutes {
		result.RelatedStatutes = append(result.RelatedStatutes, s)
	}
	sort.Strings(result.RelatedStatutes)
	return result, nil
}

// allDocuments gathers the first euLinkageLimitCeiling statute rows by
// id (or the seed fixture) as the scan scope for euID-keyed lookups
// that have no narrower starting point.
func (a *German) allDocuments() []models.Document {
	if !a.storeAvailable() {
		return seedDocuments
	}
	docs, err := a.store.ListDocuments(euLinkageLimitCeiling)
	if err != nil {
		return nil
	}
	return docs
}
