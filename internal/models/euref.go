package models

// EuReferenceType is the closed set of EU act types the extractor yields.
type EuReferenceType string

const (
	EuDirective  EuReferenceType = "directive"
	EuRegulation EuReferenceType = "regulation"
	EuDecision   EuReferenceType = "decision"
	EuAct        EuReferenceType = "act"
)

// EuReference is a single cross-reference to an external EU legal act,
// extracted from a document's searchable text.
type EuReference struct {
	EuID              string          `json:"eu_id"`
	EuType            EuReferenceType `json:"eu_type"`
	SourceKind        DocumentKind    `json:"source_kind"`
	SourceID          string          `json:"source_id"`
	SourceStatuteID   string          `json:"source_statute_id,omitempty"`
	SourceCitation    string          `json:"source_citation,omitempty"`
	SourceTitle       string          `json:"source_title,omitempty"`
	SourceURL         string          `json:"source_url,omitempty"`
	ContextSnippet    string          `json:"context_snippet"`
	Confidence        float64         `json:"confidence"`
}
