package euref

import (
	"testing"

	"github.com/thornvik/juricore/internal/models"
)

func TestFromDocumentDedupsByIdentifierAndType(t *testing.T) {
	doc := models.Document{
		ID:       "bdsg:1",
		Kind:     models.KindStatute,
		Title:    "BDSG Anpassung",
		Citation: "§ 1 BDSG",
		TextSnippet: "Dieses Gesetz dient der Durchfuehrung der Verordnung (EU) 2016/679 " +
			"sowie der Verordnung 2016/679/EU im Anwendungsbereich.",
		Metadata: map[string]any{"statute_id": "bdsg"},
	}

	refs := FromDocument(doc)
	if len(refs) != 1 {
		t.Fatalf("FromDocument = %+v, want exactly one deduplicated reference", refs)
	}
	if refs[0].EuID != "EU 2016/679" {
		t.Errorf("EuID = %q, want EU 2016/679", refs[0].EuID)
	}
	if refs[0].SourceStatuteID != "bdsg" {
		t.Errorf("SourceStatuteID = %q, want bdsg", refs[0].SourceStatuteID)
	}
}

func TestFromDocumentsCapsAtFanoutLimit(t *testing.T) {
	var docs []models.Document
	for i := 0; i < 5; i++ {
		docs = append(docs, models.Document{
			ID:          "doc:" + string(rune('a'+i)),
			Kind:        models.KindStatute,
			TextSnippet: "Verordnung (EU) 2016/679 und Richtlinie (EU) 2016/680 und 2016/681/EU",
		})
	}

	refs := FromDocuments(docs, 1)
	if len(refs) > crossDocumentFanout {
		t.Errorf("FromDocuments returned %d refs, want <= %d", len(refs), crossDocumentFanout)
	}
}

func TestSummarizeGroupsAndSortsByImplementationCount(t *testing.T) {
	refs := []models.EuReference{
		{EuID: "EU 2016/679", EuType: models.EuRegulation, SourceID: "statute:bdsg:1", SourceStatuteID: "bdsg"},
		{EuID: "EU 2016/679", EuType: models.EuRegulation, SourceID: "statute:tmg:1", SourceStatuteID: "tmg"},
		{EuID: "EU 2016/680", EuType: models.EuDirective, SourceID: "statute:bdsg:1", SourceStatuteID: "bdsg"},
	}

	summary := Summarize(refs)
	if len(summary) != 2 {
		t.Fatalf("Summarize = %+v, want 2 groups", summary)
	}
	if summary[0].EuID != "EU 2016/679" || summary[0].ImplementationCount != 2 {
		t.Errorf("summary[0] = %+v, want EU 2016/679 with count 2 first", summary[0])
	}
	if summary[1].ImplementationCount != 1 {
		t.Errorf("summary[1] = %+v, want count 1", summary[1])
	}
}

// Case-law-sourced references carry a source_id but never a
// source_statute_id (rowscan never populates that metadata key for
// case law). ImplementationCount must still count them, and
// RelatedStatutes must stay empty rather than falling back to
// source_id, since the two fields track different things.
func TestSummarizeCountsCaseLawSourcedRefsWithoutStatuteID(t *testing.T) {
	refs := []models.EuReference{
		{EuID: "EU 2016/679", EuType: models.EuRegulation, SourceID: "caselaw:bgh-1", SourceStatuteID: ""},
		{EuID: "EU 2016/679", EuType: models.EuRegulation, SourceID: "caselaw:bgh-2", SourceStatuteID: ""},
		{EuID: "EU 2016/679", EuType: models.EuRegulation, SourceID: "statute:bdsg:1", SourceStatuteID: "bdsg"},
	}

	summary := Summarize(refs)
	if len(summary) != 1 {
		t.Fatalf("Summarize = %+v, want 1 group", summary)
	}
	if summary[0].ImplementationCount != 3 {
		t.Errorf("ImplementationCount = %d, want 3 distinct source_ids", summary[0].ImplementationCount)
	}
	if len(summary[0].RelatedStatutes) != 1 || summary[0].RelatedStatutes[0] != "bdsg" {
		t.Errorf("RelatedStatutes = %v, want [bdsg] only", summary[0].RelatedStatutes)
	}
}
