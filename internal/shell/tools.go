package shell

import (
	"context"

	"github.com/thornvik/juricore/internal/adapter"
	"github.com/thornvik/juricore/internal/euref"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/store"
)

// upgradeNotice is the "runtime capability gated but absent" payload
// shape §4.1 step 5 requires: ok:true, with an explicit notice rather
// than a fabricated result or an error.
type upgradeNotice struct {
	Notice string `json:"notice"`
}

func runtimeAbsent(ad adapter.Adapter, cap models.Capability) bool {
	return !ad.Capabilities().Has(cap)
}

func notice(cap models.Capability) string {
	return "capability " + string(cap) + " is not available in the current corpus snapshot"
}

func handleListCountries(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	type entry struct {
		Country      string                 `json:"country"`
		Capabilities []models.Capability `json:"capabilities"`
	}
	adapters := sh.registry.List()
	out := make([]entry, 0, len(adapters))
	for _, a := range adapters {
		full, isFull := a.(adapter.Adapter)
		var caps []models.Capability
		if isFull {
			caps = full.Capabilities().List()
		}
		out = append(out, entry{Country: a.Code(), Capabilities: caps})
	}
	return ok("list_countries", out)
}

func handleDescribeCountry(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	desc := ad.Descriptor()
	flagNames := map[string]bool{
		"documents":         desc.Flags.Documents,
		"case_law":          desc.Flags.CaseLaw,
		"preparatory_works": desc.Flags.PreparatoryWorks,
		"citations":         desc.Flags.Citations,
		"formatting":        desc.Flags.Formatting,
		"currency":          desc.Flags.Currency,
		"legal_stance":      desc.Flags.LegalStance,
		"eu":                desc.Flags.Eu,
		"ingestion":         desc.Flags.Ingestion,
	}
	return ok("describe_country", map[string]any{
		"country":      ad.Code(),
		"capabilities": ad.Capabilities().List(),
		"tools":        flagNames,
	})
}

func handleSearchDocuments(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	query, err := args.requiredString("query")
	if err != nil {
		return invalidArgsResult("search_documents", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("search_documents", err)
	}
	limit = clampLimit(limit, 100)

	if runtimeAbsent(ad, models.CapCoreLegislation) {
		return ok("search_documents", map[string]any{
			"documents": []models.Document{}, "total": 0, "notice": notice(models.CapCoreLegislation),
		})
	}
	res, err := ad.SearchDocuments(query, limit)
	if err != nil {
		return internalErrorResult("search_documents", err)
	}
	return ok("search_documents", res)
}

func handleGetDocument(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	id, err := args.requiredString("id")
	if err != nil {
		return invalidArgsResult("get_document", err)
	}
	doc, err := ad.GetDocument(id)
	if err != nil {
		return internalErrorResult("get_document", err)
	}
	return ok("get_document", doc)
}

func handleSearchCaseLaw(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	query, err := args.requiredString("query")
	if err != nil {
		return invalidArgsResult("search_case_law", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("search_case_law", err)
	}
	court, err := args.optionalString("court")
	if err != nil {
		return invalidArgsResult("search_case_law", err)
	}
	dateFrom, err := args.optionalString("dateFrom")
	if err != nil {
		return invalidArgsResult("search_case_law", err)
	}
	dateTo, err := args.optionalString("dateTo")
	if err != nil {
		return invalidArgsResult("search_case_law", err)
	}
	limit = clampLimit(limit, 100)

	if runtimeAbsent(ad, models.CapBasicCaseLaw) {
		return ok("search_case_law", map[string]any{
			"documents": []models.Document{}, "total": 0, "notice": notice(models.CapBasicCaseLaw),
		})
	}
	res, err := ad.SearchCaseLaw(query, limit, store.CaseLawFilters{Court: court, DateFrom: dateFrom, DateTo: dateTo})
	if err != nil {
		return internalErrorResult("search_case_law", err)
	}
	return ok("search_case_law", res)
}

func handleGetPreparatoryWorks(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	if err := atLeastOneOf(args, "citation", "statuteId", "query"); err != nil {
		return invalidArgsResult("get_preparatory_works", err)
	}
	citation, err := args.optionalString("citation")
	if err != nil {
		return invalidArgsResult("get_preparatory_works", err)
	}
	statuteID, err := args.optionalString("statuteId")
	if err != nil {
		return invalidArgsResult("get_preparatory_works", err)
	}
	query, err := args.optionalString("query")
	if err != nil {
		return invalidArgsResult("get_preparatory_works", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("get_preparatory_works", err)
	}
	limit = clampLimit(limit, 100)

	if runtimeAbsent(ad, models.CapFullPreparatoryWork) {
		return ok("get_preparatory_works", map[string]any{
			"documents": []models.Document{}, "total": 0, "notice": notice(models.CapFullPreparatoryWork),
		})
	}
	res, err := ad.GetPreparatoryWorks(store.PrepHints{Citation: citation, StatuteID: statuteID, Query: query}, limit)
	if err != nil {
		return internalErrorResult("get_preparatory_works", err)
	}
	return ok("get_preparatory_works", res)
}

func handleParseCitation(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	citation, err := args.requiredString("citation")
	if err != nil {
		return invalidArgsResult("parse_citation", err)
	}
	return ok("parse_citation", ad.ParseCitation(citation))
}

func handleValidateCitation(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	citation, err := args.requiredString("citation")
	if err != nil {
		return invalidArgsResult("validate_citation", err)
	}
	return ok("validate_citation", ad.ValidateCitation(citation))
}

func handleFormatCitation(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	citation, err := args.requiredString("citation")
	if err != nil {
		return invalidArgsResult("format_citation", err)
	}
	style, err := args.optionalString("style")
	if err != nil {
		return invalidArgsResult("format_citation", err)
	}
	if err := enumString("style", style, "default", "short", "pinpoint"); err != nil {
		return invalidArgsResult("format_citation", err)
	}
	return ok("format_citation", ad.FormatCitation(citation, style))
}

func handleCheckCurrency(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	if err := atLeastOneOf(args, "citation", "statuteId"); err != nil {
		return invalidArgsResult("check_currency", err)
	}
	citation, err := args.optionalString("citation")
	if err != nil {
		return invalidArgsResult("check_currency", err)
	}
	statuteID, err := args.optionalString("statuteId")
	if err != nil {
		return invalidArgsResult("check_currency", err)
	}
	asOfDate, err := args.optionalString("asOfDate")
	if err != nil {
		return invalidArgsResult("check_currency", err)
	}
	res, err := ad.CheckCurrency(adapter.CurrencyRequest{Citation: citation, StatuteID: statuteID, AsOfDate: asOfDate})
	if err != nil {
		return internalErrorResult("check_currency", err)
	}
	return ok("check_currency", res)
}

func handleBuildLegalStance(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	query, err := args.requiredString("query")
	if err != nil {
		return invalidArgsResult("build_legal_stance", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("build_legal_stance", err)
	}
	includeCaseLaw, err := args.optionalBool("includeCaseLaw")
	if err != nil {
		return invalidArgsResult("build_legal_stance", err)
	}
	includePrep, err := args.optionalBool("includePreparatoryWorks")
	if err != nil {
		return invalidArgsResult("build_legal_stance", err)
	}
	limit = clampLimit(limit, 100)

	res, err := ad.BuildLegalStance(ctx, adapter.StanceRequest{
		Query: query, Limit: limit, IncludeCaseLaw: includeCaseLaw, IncludePreparatoryWorks: includePrep,
	})
	if err != nil {
		return internalErrorResult("build_legal_stance", err)
	}
	return ok("build_legal_stance", res)
}

func handleGetEuBasis(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	if err := atLeastOneOf(args, "citation", "statuteId", "documentId"); err != nil {
		return invalidArgsResult("get_eu_basis", err)
	}
	citation, err := args.optionalString("citation")
	if err != nil {
		return invalidArgsResult("get_eu_basis", err)
	}
	statuteID, err := args.optionalString("statuteId")
	if err != nil {
		return invalidArgsResult("get_eu_basis", err)
	}
	documentID, err := args.optionalString("documentId")
	if err != nil {
		return invalidArgsResult("get_eu_basis", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("get_eu_basis", err)
	}
	limit = clampLimit(limit, 200)

	if runtimeAbsent(ad, models.CapEuReferences) {
		return ok("get_eu_basis", map[string]any{
			"references": []models.EuReference{}, "total": 0, "notice": notice(models.CapEuReferences),
		})
	}
	res, err := ad.GetEuBasis(adapter.EuBasisRequest{Citation: citation, StatuteID: statuteID, DocumentID: documentID, Limit: limit})
	if err != nil {
		return internalErrorResult("get_eu_basis", err)
	}
	return ok("get_eu_basis", res)
}

func handleSearchEuImplementations(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	query, err := args.requiredString("query")
	if err != nil {
		return invalidArgsResult("search_eu_implementations", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("search_eu_implementations", err)
	}
	limit = clampLimit(limit, 200)

	if runtimeAbsent(ad, models.CapEuReferences) {
		return ok("search_eu_implementations", map[string]any{
			"results": []models.EuReference{}, "total": 0, "notice": notice(models.CapEuReferences),
		})
	}
	res, err := ad.SearchEuImplementations(query, limit)
	if err != nil {
		return internalErrorResult("search_eu_implementations", err)
	}
	return ok("search_eu_implementations", map[string]any{"results": res.References, "total": res.Total})
}

func handleGetNationalImplementations(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	euID, err := args.requiredString("euId")
	if err != nil {
		return invalidArgsResult("get_national_implementations", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("get_national_implementations", err)
	}
	limit = clampLimit(limit, 200)

	if runtimeAbsent(ad, models.CapEuReferences) {
		return ok("get_national_implementations", map[string]any{
			"results": []euref.ImplementationSummary{}, "total": 0, "notice": notice(models.CapEuReferences),
		})
	}
	res, err := ad.GetNationalImplementations(euID, limit)
	if err != nil {
		return internalErrorResult("get_national_implementations", err)
	}
	return ok("get_national_implementations", res)
}

func handleGetProvisionEuBasis(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	documentID, err := args.requiredString("documentId")
	if err != nil {
		return invalidArgsResult("get_provision_eu_basis", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("get_provision_eu_basis", err)
	}
	limit = clampLimit(limit, 200)

	if runtimeAbsent(ad, models.CapEuReferences) {
		return ok("get_provision_eu_basis", map[string]any{
			"references": []models.EuReference{}, "total": 0, "notice": notice(models.CapEuReferences),
		})
	}
	res, err := ad.GetProvisionEuBasis(documentID, limit)
	if err != nil {
		return internalErrorResult("get_provision_eu_basis", err)
	}
	return ok("get_provision_eu_basis", res)
}

func handleValidateEuCompliance(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	euID, err := args.requiredString("euId")
	if err != nil {
		return invalidArgsResult("validate_eu_compliance", err)
	}
	citation, err := args.optionalString("citation")
	if err != nil {
		return invalidArgsResult("validate_eu_compliance", err)
	}
	statuteID, err := args.optionalString("statuteId")
	if err != nil {
		return invalidArgsResult("validate_eu_compliance", err)
	}

	if runtimeAbsent(ad, models.CapEuReferences) {
		return ok("validate_eu_compliance", map[string]any{
			"euId": euID, "status": "unknown", "matches": 0, "relatedStatutes": []string{}, "notice": notice(models.CapEuReferences),
		})
	}
	res, err := ad.ValidateEuCompliance(adapter.EuComplianceRequest{EuID: euID, Citation: citation, StatuteID: statuteID})
	if err != nil {
		return internalErrorResult("validate_eu_compliance", err)
	}
	return ok("validate_eu_compliance", res)
}

func handleRunIngestion(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	sourceID, err := args.optionalString("sourceId")
	if err != nil {
		return invalidArgsResult("run_ingestion", err)
	}
	dryRun, err := args.optionalBool("dryRun")
	if err != nil {
		return invalidArgsResult("run_ingestion", err)
	}
	report := ad.RunIngestion(ctx, adapter.IngestionRequest{SourceID: sourceID, DryRun: dryRun})
	return ok("run_ingestion", report)
}

func handleGetIngestionHistory(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult {
	sourceID, err := args.optionalString("sourceId")
	if err != nil {
		return invalidArgsResult("get_ingestion_history", err)
	}
	limit, err := args.optionalInt("limit", 20)
	if err != nil {
		return invalidArgsResult("get_ingestion_history", err)
	}
	limit = clampLimit(limit, 100)

	res, err := ad.GetIngestionHistory(sourceID, limit)
	if err != nil {
		return internalErrorResult("get_ingestion_history", err)
	}
	return ok("get_ingestion_history", res)
}
