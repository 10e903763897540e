package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/thornvik/juricore/internal/adapter"
	"github.com/thornvik/juricore/internal/registry"
	"github.com/thornvik/juricore/internal/shell"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	reg := registry.New()
	if err := reg.Register(adapter.NewGerman(adapter.Config{})); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return New(shell.New(reg))
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) shell.ToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	res, err := srv.dispatch(name)(context.Background(), req)
	if err != nil {
		t.Fatalf("dispatch(%s): %v", name, err)
	}
	if len(res.Content) != 1 {
		t.Fatalf("dispatch(%s) returned %d content blocks, want 1", name, len(res.Content))
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("dispatch(%s) content is not text", name)
	}

	var out shell.ToolResult
	if err := json.Unmarshal([]byte(text.Text), &out); err != nil {
		t.Fatalf("dispatch(%s) result is not valid JSON: %v", name, err)
	}
	return out
}

func TestListCountriesTool(t *testing.T) {
	srv := testServer(t)
	got := callTool(t, srv, "list_countries", nil)
	if !got.Ok {
		t.Fatalf("list_countries = %+v, want ok:true", got)
	}
}

func TestSearchDocumentsToolWithoutStoreReturnsUpgradeNotice(t *testing.T) {
	srv := testServer(t)
	got := callTool(t, srv, "search_documents", map[string]any{"country": "de", "query": "BDSG"})
	if !got.Ok {
		t.Fatalf("search_documents = %+v, want ok:true", got)
	}
	data, isMap := got.Data.(map[string]any)
	if !isMap || data["notice"] == nil || data["notice"] == "" {
		t.Errorf("search_documents data = %+v, want an upgrade notice", got.Data)
	}
}

func TestUnknownCountryTool(t *testing.T) {
	srv := testServer(t)
	got := callTool(t, srv, "describe_country", map[string]any{"country": "se"})
	if got.Ok {
		t.Fatal("describe_country(unregistered country).Ok = true, want false")
	}
	if got.Error.Code != "unknown_country" {
		t.Errorf("Error.Code = %q, want unknown_country", got.Error.Code)
	}
}
