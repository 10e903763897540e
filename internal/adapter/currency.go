package adapter

import (
	"github.com/thornvik/juricore/internal/models"
)

// CheckCurrency implements spec §4.7: collect candidate documents by
// statuteId and/or citation, derive sourceDate from the newest
// effective_date among them, and compare against asOfDate when given.
// Every branch is a pure function of req and the current corpus
// snapshot, never an error return — "unknown" and "not_found" are
// status values, not failures.
func (a *German) CheckCurrency(req CurrencyRequest) (CurrencyResult, error) {
	var docs []models.Document
	if req.StatuteID != "" {
		docs = append(docs, a.getByStatuteID(req.StatuteID)...)
	}
	if req.Citation != "" {
		docs = append(docs, a.getByCitation(req.Citation)...)
	}

	result := CurrencyResult{StatuteID: req.StatuteID, Citation: req.Citation, AsOfDate: req.AsOfDate}

	if len(docs) == 0 {
		if !a.storeAvailable() {
			result.Status = "unknown"
			result.Reason = "store unavailable"
			return result, nil
		}
		result.Status = "not_found"
		return result, nil
	}

	sourceDate := newestDate(docs)
	result.SourceDate = sourceDate

	if req.AsOfDate != "" && sourceDate != "" && req.AsOfDate < sourceDate {
		result.Status = "unknown"
		result.Reason = "corpus stores consolidated current text, not historical in-force state"
		return result, nil
	}

	result.Status = "likely_in_force"
	result.Evidence = &CurrencyEvidence{Matches: len(docs), SampleID: docs[0].ID}
	return result, nil
}

// newestDate returns the lexically (and, since dates are ISO
// YYYY-MM-DD, chronologically) largest effective_date among docs,
// falling back to each document's ingestion updated_at when
// effective_date is empty.
func newestDate(docs []models.Document) string {
	var newest string
	for _, d := range docs {
		date := d.EffectiveDate
		if date == "" {
			if ua, ok := d.Metadata["updated_at"].(string); ok {
				date = ua
			}
		}
		if date > newest {
			newest = date
		}
	}
	return newest
}
