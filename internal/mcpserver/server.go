// Package mcpserver exposes the Shell's tool-call contract over the
// Model Context Protocol via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thornvik/juricore/internal/shell"
)

// Server wraps the MCP server with every tool the Shell's closed
// tool-name set describes (§6), dispatched through a single generic
// bridge rather than one handwritten decode function per tool, since
// every tool shares the same loosely-typed Args contract (§9).
type Server struct {
	mcp *server.MCPServer
	sh  *shell.Shell
}

// New creates a new MCP server with every tool registered against sh.
func New(sh *shell.Shell) *Server {
	s := &Server{sh: sh}

	s.mcp = server.NewMCPServer(
		"juricore",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	country := mcp.WithString("country", mcp.Required(), mcp.Description("Jurisdiction code, e.g. \"de\""))

	s.register("list_countries", "List every registered jurisdiction adapter and the capabilities it currently reports.")

	s.register("describe_country", "Describe a jurisdiction adapter: its static contract and runtime capability vector.", country)

	s.register("search_documents", "Search a jurisdiction's indexed legislation by citation or free text.",
		country,
		mcp.WithString("query", mcp.Required(), mcp.Description("Citation or free-text query")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
	)

	s.register("get_document", "Fetch a single document by its internal identifier.",
		country,
		mcp.WithString("id", mcp.Required()),
	)

	s.register("search_case_law", "Search a jurisdiction's indexed case law.",
		country,
		mcp.WithString("query", mcp.Required(), mcp.Description("Free-text query")),
		mcp.WithString("court", mcp.Description("Filter by deciding court")),
		mcp.WithString("dateFrom", mcp.Description("Earliest decision date, YYYY-MM-DD")),
		mcp.WithString("dateTo", mcp.Description("Latest decision date, YYYY-MM-DD")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
	)

	s.register("get_preparatory_works", "Search a jurisdiction's preparatory materials for a statute or citation.",
		country,
		mcp.WithString("statuteId", mcp.Description("Statute document identifier")),
		mcp.WithString("citation", mcp.Description("Statute citation string")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results")),
	)

	s.register("parse_citation", "Parse a raw citation string into structured fields using the jurisdiction's Citation Grammar.",
		country,
		mcp.WithString("citation", mcp.Required()),
	)

	s.register("validate_citation", "Validate that a citation is both grammatically well-formed and present in the indexed corpus.",
		country,
		mcp.WithString("citation", mcp.Required()),
	)

	s.register("format_citation", "Reformat a citation into one of the jurisdiction's supported display styles.",
		country,
		mcp.WithString("citation", mcp.Required()),
		mcp.WithString("style", mcp.Description("default, short, or pinpoint")),
	)

	s.register("check_currency", "Check whether a statute or citation is still likely in force as of a given date.",
		country,
		mcp.WithString("statuteId", mcp.Description("Statute document identifier")),
		mcp.WithString("citation", mcp.Description("Statute citation string")),
		mcp.WithString("asOfDate", mcp.Description("YYYY-MM-DD date compared against the source's effective date")),
	)

	s.register("build_legal_stance", "Aggregate statutes, case law, and preparatory works bearing on a legal question into one stance report.",
		country,
		mcp.WithString("query", mcp.Required()),
		mcp.WithBoolean("includeCaseLaw", mcp.Description("Include case law in the aggregation")),
		mcp.WithBoolean("includePreparatoryWorks", mcp.Description("Include preparatory works in the aggregation")),
		mcp.WithNumber("limit", mcp.Description("Maximum citations per category")),
	)

	s.register("get_eu_basis", "Extract EU legal-instrument references found within a document, statute, or citation.",
		country,
		mcp.WithString("documentId", mcp.Description("Document identifier")),
		mcp.WithString("statuteId", mcp.Description("Statute document identifier")),
		mcp.WithString("citation", mcp.Description("Statute citation string")),
		mcp.WithNumber("limit", mcp.Description("Maximum references returned")),
	)

	s.register("search_eu_implementations", "Search national documents and return the EU legal-instrument references found in the matches.",
		country,
		mcp.WithString("query", mcp.Required(), mcp.Description("Citation or free-text query")),
		mcp.WithNumber("limit", mcp.Description("Maximum results")),
	)

	s.register("get_national_implementations", "Scan the jurisdiction's statutes for references to one EU instrument and summarize them per instrument.",
		country,
		mcp.WithString("euId", mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Maximum results")),
	)

	s.register("get_provision_eu_basis", "Extract the EU basis for a single statute provision.",
		country,
		mcp.WithString("documentId", mcp.Required(), mcp.Description("Provision document identifier")),
		mcp.WithNumber("limit", mcp.Description("Maximum references returned")),
	)

	s.register("validate_eu_compliance", "Check whether national statutes, optionally narrowed by citation or statute, are mapped to a given EU instrument.",
		country,
		mcp.WithString("citation", mcp.Description("Statute citation string")),
		mcp.WithString("statuteId", mcp.Description("Statute document identifier")),
		mcp.WithString("euId", mcp.Required()),
	)

	s.register("run_ingestion", "Trigger a bounded ingestion run against one of the jurisdiction's configured sources.",
		country,
		mcp.WithString("sourceId", mcp.Description("Source identifier; optional")),
	)

	s.register("get_ingestion_history", "List recent ingestion runs recorded for a jurisdiction.",
		country,
		mcp.WithString("sourceId", mcp.Description("Filter by source identifier")),
		mcp.WithNumber("limit", mcp.Description("Maximum runs returned")),
	)

	return s
}

// register adds a single tool whose handler forwards its raw arguments
// straight to the Shell, which owns all validation and gating (§4.1).
func (s *Server) register(name, description string, opts ...mcp.ToolOption) {
	full := append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)
	s.mcp.AddTool(mcp.NewTool(name, full...), s.dispatch(name))
}

func (s *Server) dispatch(name string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := s.sh.HandleToolCall(ctx, name, req.GetArguments())
		out, err := json.Marshal(result)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}
