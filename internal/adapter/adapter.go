// Package adapter binds a Store, a Citation Grammar, and the EU
// Reference Extractor behind the uniform, capability-flagged operation
// surface spec §4 names — the jurisdiction-scoped façade the Shell
// dispatches every tool call through. It plays the role the teacher
// project's internal/api.Service plays for notes: one struct wiring
// together the lower layers, with no transport concerns of its own.
package adapter

import (
	"context"

	"github.com/thornvik/juricore/internal/euref"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/store"
)

// Adapter is the jurisdiction-scoped operation surface spec §4 and §6
// describe. Every method is a total function: it returns either a
// valid payload or an error the Shell can classify, never a panic.
// Capability gating on whether an operation is *callable at all* is
// the Shell's job (spec §4.1); the flags returned by Descriptor are
// the static contract it gates against.
type Adapter interface {
	// Code is the lowercase jurisdiction code this adapter answers for
	// (registry.Adapter).
	Code() string
	Descriptor() models.AdapterDescriptor
	Capabilities() models.CapabilitySet

	SearchDocuments(query string, limit int) (DocumentsResult, error)
	GetDocument(id string) (*models.Document, error)
	SearchCaseLaw(query string, limit int, filters store.CaseLawFilters) (DocumentsResult, error)
	GetPreparatoryWorks(hints store.PrepHints, limit int) (DocumentsResult, error)

	ParseCitation(s string) *ParsedCitationResult
	ValidateCitation(s string) ValidationResult
	FormatCitation(s string, style string) FormatResult

	CheckCurrency(req CurrencyRequest) (CurrencyResult, error)
	BuildLegalStance(ctx context.Context, req StanceRequest) (StanceResult, error)

	GetEuBasis(req EuBasisRequest) (EuReferencesResult, error)
	SearchEuImplementations(query string, limit int) (EuReferencesResult, error)
	GetNationalImplementations(euID string, limit int) (ImplementationsResult, error)
	GetProvisionEuBasis(documentID string, limit int) (EuReferencesResult, error)
	ValidateEuCompliance(req EuComplianceRequest) (EuComplianceResult, error)

	RunIngestion(ctx context.Context, req IngestionRequest) IngestionReport
	GetIngestionHistory(sourceID string, limit int) (IngestionHistoryResult, error)
}

// DocumentsResult is the {documents, total} shape spec §6 names for
// every document-search tool.
type DocumentsResult struct {
	Documents []models.Document `json:"documents"`
	Total     int                `json:"total"`
}

// ParsedCitationResult is parse_citation's {original, normalized,
// parsed} payload.
type ParsedCitationResult struct {
	Original   string            `json:"original"`
	Normalized string            `json:"normalized"`
	Parsed     map[string]string `json:"parsed"`
}

// ValidationResult is validate_citation's payload.
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	Normalized string `json:"normalized,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// FormatResult is format_citation's payload.
type FormatResult struct {
	Original  string `json:"original"`
	Formatted string `json:"formatted"`
	Style     string `json:"style"`
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason,omitempty"`
}

// CurrencyRequest bundles check_currency's inputs (spec §4.7).
type CurrencyRequest struct {
	Citation  string
	StatuteID string
	AsOfDate  string
}

// CurrencyEvidence is check_currency's evidence payload.
type CurrencyEvidence struct {
	Matches   int    `json:"matches"`
	SampleID  string `json:"sampleId,omitempty"`
}

// CurrencyResult is check_currency's payload.
type CurrencyResult struct {
	Status     string            `json:"status"`
	StatuteID  string            `json:"statuteId,omitempty"`
	Citation   string            `json:"citation,omitempty"`
	AsOfDate   string            `json:"asOfDate,omitempty"`
	SourceDate string            `json:"sourceDate,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Evidence   *CurrencyEvidence `json:"evidence,omitempty"`
}

// StanceRequest bundles build_legal_stance's inputs (spec §4.8).
type StanceRequest struct {
	Query                   string
	Limit                   int
	IncludeCaseLaw          bool
	IncludePreparatoryWorks bool
}

// StanceResult is build_legal_stance's payload.
type StanceResult struct {
	Query            string             `json:"query"`
	Statutes         []models.Document  `json:"statutes"`
	CaseLaw          []models.Document  `json:"caseLaw"`
	PreparatoryWorks []models.Document  `json:"preparatoryWorks"`
	KeyCitations     []string           `json:"keyCitations"`
}

// EuBasisRequest bundles get_eu_basis's inputs (spec §6: any of
// citation, statuteId, documentId).
type EuBasisRequest struct {
	Citation   string
	StatuteID  string
	DocumentID string
	Limit      int
}

// EuReferencesResult is the {references, total} shape shared by
// get_eu_basis, search_eu_implementations and get_provision_eu_basis.
// The Shell re-keys search_eu_implementations' references as results.
type EuReferencesResult struct {
	References []models.EuReference `json:"references"`
	Total      int                   `json:"total"`
}

// ImplementationsResult is get_national_implementations' {results,
// total} shape: one implementation summary per (eu_id, eu_type) group.
type ImplementationsResult struct {
	Results []euref.ImplementationSummary `json:"results"`
	Total   int                           `json:"total"`
}

// EuComplianceRequest bundles validate_eu_compliance's inputs.
type EuComplianceRequest struct {
	EuID      string
	Citation  string
	StatuteID string
}

// EuComplianceResult is validate_eu_compliance's payload. Status is
// one of {mapped, not_mapped, unknown} per spec §6.
type EuComplianceResult struct {
	EuID            string   `json:"euId"`
	Status          string   `json:"status"`
	Matches         int      `json:"matches"`
	RelatedStatutes []string `json:"relatedStatutes"`
	Reason          string   `json:"reason,omitempty"`
}

// IngestionRequest bundles run_ingestion's inputs.
type IngestionRequest struct {
	SourceID string
	DryRun   bool
}

// IngestionReport is run_ingestion's payload; a zeroed report (every
// count left at 0) is the documented failure fallback (spec §4.10,
// §7), never a thrown error.
type IngestionReport struct {
	RunID         string `json:"runId"`
	StartedAt     string `json:"startedAt"`
	FinishedAt    string `json:"finishedAt"`
	SourceID      string `json:"sourceId"`
	DryRun        bool   `json:"dryRun"`
	IngestedCount int    `json:"ingestedCount"`
	SkippedCount  int    `json:"skippedCount"`
}

// IngestionHistoryResult is the additive get_ingestion_history
// diagnostic's payload (SPEC_FULL §12.3).
type IngestionHistoryResult struct {
	Runs  []IngestionRunSummary `json:"runs"`
	Total int                    `json:"total"`
}

// IngestionRunSummary is one ingestion_runs row surfaced read-only.
type IngestionRunSummary struct {
	SourceID      string `json:"sourceId"`
	StartedAt     string `json:"startedAt"`
	FinishedAt    string `json:"finishedAt,omitempty"`
	Status        string `json:"status"`
	IngestedLaws  int    `json:"ingestedLaws"`
	SkippedLaws   int    `json:"skippedLaws"`
	ErrorCount    int    `json:"errorCount"`
}
