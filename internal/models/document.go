// Package models defines the domain types shared across the retrieval
// core: the atomic Document, its three closed vocabularies (kind,
// capability, EU reference type), and the Adapter Descriptor contract.
package models

// DocumentKind is the closed set of retrievable document shapes.
type DocumentKind string

const (
	KindStatute          DocumentKind = "statute"
	KindRegulation       DocumentKind = "regulation"
	KindCase             DocumentKind = "case"
	KindPreparatoryWork  DocumentKind = "preparatory_work"
	KindOther            DocumentKind = "other"
)

// Document is the atomic retrieval unit returned by every search and
// fetch operation. Metadata holds only scalars (string/number/bool/nil);
// cross-document references live there as plain string IDs, never as
// embedded pointers.
type Document struct {
	ID            string         `json:"id"`
	Jurisdiction  string         `json:"jurisdiction"`
	Kind          DocumentKind   `json:"kind"`
	Title         string         `json:"title"`
	Citation      string         `json:"citation,omitempty"`
	SourceURL     string         `json:"source_url,omitempty"`
	EffectiveDate string         `json:"effective_date,omitempty"`
	TextSnippet   string         `json:"text_snippet,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// SearchableText assembles the text the EU Reference Extractor scans:
// title, citation, snippet, and every scalar metadata value, whitespace
// collapsed into a single string by the caller.
func (d Document) SearchableText() []string {
	parts := make([]string, 0, 4+len(d.Metadata))
	if d.Title != "" {
		parts = append(parts, d.Title)
	}
	if d.Citation != "" {
		parts = append(parts, d.Citation)
	}
	if d.TextSnippet != "" {
		parts = append(parts, d.TextSnippet)
	}
	for _, v := range d.Metadata {
		if s, ok := v.(string); ok && s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// Capability is one entry in the closed Capability Set vocabulary — the
// runtime-detected corpus features a Store snapshot actually offers.
type Capability string

const (
	CapCoreLegislation     Capability = "core_legislation"
	CapBasicCaseLaw        Capability = "basic_case_law"
	CapEuReferences        Capability = "eu_references"
	CapExpandedCaseLaw     Capability = "expanded_case_law"
	CapFullPreparatoryWork Capability = "full_preparatory_works"
	CapAgencyGuidance      Capability = "agency_guidance"
)

// CapabilitySet is a set over the closed Capability vocabulary.
type CapabilitySet map[Capability]bool

// Has reports whether cap is present in the set.
func (s CapabilitySet) Has(cap Capability) bool {
	if s == nil {
		return false
	}
	return s[cap]
}

// List returns the set's members sorted for deterministic output.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c, ok := range s {
		if ok {
			out = append(out, c)
		}
	}
	// Fixed closed-vocabulary order keeps output deterministic without
	// needing a generic sort of the Capability string type.
	order := []Capability{
		CapCoreLegislation, CapBasicCaseLaw, CapEuReferences,
		CapExpandedCaseLaw, CapFullPreparatoryWork, CapAgencyGuidance,
	}
	filtered := out[:0:0]
	for _, c := range order {
		if s[c] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// AdapterFlags is the static capability vector of an Adapter — the
// contract, independent of what the current Store snapshot can serve.
type AdapterFlags struct {
	Documents         bool `json:"documents"`
	CaseLaw           bool `json:"case_law"`
	PreparatoryWorks  bool `json:"preparatory_works"`
	Citations         bool `json:"citations"`
	Formatting        bool `json:"formatting"`
	Currency          bool `json:"currency"`
	LegalStance       bool `json:"legal_stance"`
	Eu                bool `json:"eu"`
	Ingestion         bool `json:"ingestion"`
}

// AdapterDescriptor is the static self-description of a jurisdiction
// adapter, independent of the runtime Capability Set.
type AdapterDescriptor struct {
	JurisdictionCode string       `json:"jurisdiction_code"`
	Name             string       `json:"name"`
	DefaultLanguage  string       `json:"default_language"`
	Sources          []string     `json:"sources"`
	Flags            AdapterFlags `json:"-"`
}
