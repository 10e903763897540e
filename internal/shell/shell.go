package shell

import (
	"context"

	"github.com/thornvik/juricore/internal/adapter"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/registry"
)

// Shell is the stateless dispatcher described in §4.1: built once
// around a Registry, with no per-call mutable state of its own.
type Shell struct {
	registry *registry.Registry
}

// New wires a Shell around reg.
func New(reg *registry.Registry) *Shell {
	return &Shell{registry: reg}
}

// toolSpec is the closed-set entry per tool name: whether it needs a
// resolved country adapter, which static Descriptor flag gates it,
// and the handler that does the actual work once gating passes.
type toolSpec struct {
	requiresCountry bool
	staticFlag      func(models.AdapterFlags) bool
	handle          func(ctx context.Context, sh *Shell, ad adapter.Adapter, args Args) ToolResult
}

var tools = map[string]toolSpec{
	"list_countries":   {handle: handleListCountries},
	"describe_country": {requiresCountry: true, handle: handleDescribeCountry},

	"search_documents": {requiresCountry: true, staticFlag: flagDocuments, handle: handleSearchDocuments},
	"get_document":      {requiresCountry: true, staticFlag: flagDocuments, handle: handleGetDocument},
	"search_case_law":   {requiresCountry: true, staticFlag: flagCaseLaw, handle: handleSearchCaseLaw},
	"get_preparatory_works": {requiresCountry: true, staticFlag: flagPreparatoryWorks, handle: handleGetPreparatoryWorks},

	"parse_citation":    {requiresCountry: true, staticFlag: flagCitations, handle: handleParseCitation},
	"validate_citation": {requiresCountry: true, staticFlag: flagCitations, handle: handleValidateCitation},
	"format_citation":   {requiresCountry: true, staticFlag: flagFormatting, handle: handleFormatCitation},

	"check_currency":     {requiresCountry: true, staticFlag: flagCurrency, handle: handleCheckCurrency},
	"build_legal_stance":  {requiresCountry: true, staticFlag: flagLegalStance, handle: handleBuildLegalStance},

	"get_eu_basis":                 {requiresCountry: true, staticFlag: flagEu, handle: handleGetEuBasis},
	"search_eu_implementations":    {requiresCountry: true, staticFlag: flagEu, handle: handleSearchEuImplementations},
	"get_national_implementations": {requiresCountry: true, staticFlag: flagEu, handle: handleGetNationalImplementations},
	"get_provision_eu_basis":       {requiresCountry: true, staticFlag: flagEu, handle: handleGetProvisionEuBasis},
	"validate_eu_compliance":       {requiresCountry: true, staticFlag: flagEu, handle: handleValidateEuCompliance},

	"run_ingestion":         {requiresCountry: true, staticFlag: flagIngestion, handle: handleRunIngestion},
	"get_ingestion_history": {requiresCountry: true, staticFlag: flagIngestion, handle: handleGetIngestionHistory},
}

func flagDocuments(f models.AdapterFlags) bool        { return f.Documents }
func flagCaseLaw(f models.AdapterFlags) bool          { return f.CaseLaw }
func flagPreparatoryWorks(f models.AdapterFlags) bool { return f.PreparatoryWorks }
func flagCitations(f models.AdapterFlags) bool        { return f.Citations }
func flagFormatting(f models.AdapterFlags) bool       { return f.Formatting }
func flagCurrency(f models.AdapterFlags) bool         { return f.Currency }
func flagLegalStance(f models.AdapterFlags) bool      { return f.LegalStance }
func flagEu(f models.AdapterFlags) bool               { return f.Eu }
func flagIngestion(f models.AdapterFlags) bool        { return f.Ingestion }

// HandleToolCall is the public contract §4.1 names:
// handle_tool_call({name, arguments?}) -> ToolResult. It never panics
// out to the caller; every adapter-level failure is mapped to
// {ok:false, error:...} before this function returns.
func (sh *Shell) HandleToolCall(ctx context.Context, name string, arguments map[string]any) ToolResult {
	spec, known := tools[name]
	if !known {
		return fail(name, "unknown_tool", "no tool registered under this name")
	}
	args := Args(arguments)

	var ad adapter.Adapter
	if spec.requiresCountry {
		country, err := args.requiredString("country")
		if err != nil {
			return invalidArgsResult(name, err)
		}
		found := sh.registry.Get(country)
		if found == nil {
			return fail(name, "unknown_country", "no adapter registered for country "+country)
		}
		full, ok := found.(adapter.Adapter)
		if !ok {
			return fail(name, "internal_error", "registered adapter does not implement the full Adapter interface")
		}
		ad = full
	}

	if spec.staticFlag != nil {
		if ad == nil || !spec.staticFlag(ad.Descriptor().Flags) {
			return fail(name, "unsupported_capability", "adapter's static contract does not include "+name)
		}
	}

	result := func() (res ToolResult) {
		defer func() {
			if r := recover(); r != nil {
				res = fail(name, "internal_error", "panic recovered during dispatch")
			}
		}()
		return spec.handle(ctx, sh, ad, args)
	}()
	return result
}

// invalidArgsResult turns an *argError raised by the args.go helpers
// into the envelope's invalid_arguments shape.
func invalidArgsResult(tool string, err error) ToolResult {
	if ae, ok := err.(*argError); ok {
		return failWithDetails(tool, "invalid_arguments", ae.message, map[string]string{"field": ae.field})
	}
	return fail(tool, "invalid_arguments", err.Error())
}

// internalErrorResult wraps an unexpected adapter error, preserving
// the underlying reason in the message per §7's internal_error
// catch-all.
func internalErrorResult(tool string, err error) ToolResult {
	return fail(tool, "internal_error", err.Error())
}
