package shell

import (
	"context"
	"testing"

	"github.com/thornvik/juricore/internal/adapter"
	"github.com/thornvik/juricore/internal/registry"
)

func newTestShell(t *testing.T) *Shell {
	t.Helper()
	reg := registry.New()
	if err := reg.Register(adapter.NewGerman(adapter.Config{})); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return New(reg)
}

func TestHandleToolCallUnknownToolName(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "delete_everything", nil)
	if got.Ok {
		t.Fatal("HandleToolCall(unknown tool).Ok = true, want false")
	}
	if got.Error.Code != "unknown_tool" {
		t.Errorf("Error.Code = %q, want unknown_tool", got.Error.Code)
	}
}

func TestHandleToolCallUnknownCountry(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "describe_country", map[string]any{"country": "se"})
	if got.Ok {
		t.Fatal("HandleToolCall(unregistered country).Ok = true, want false")
	}
	if got.Error.Code != "unknown_country" {
		t.Errorf("Error.Code = %q, want unknown_country", got.Error.Code)
	}
}

func TestHandleToolCallMissingRequiredArgumentIsInvalidArguments(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "run_ingestion", nil)
	if got.Ok {
		t.Fatal("HandleToolCall(run_ingestion without country).Ok = true, want false")
	}
	if got.Error.Code != "invalid_arguments" {
		t.Errorf("Error.Code = %q, want invalid_arguments", got.Error.Code)
	}
}

func TestHandleToolCallUnsupportedCapabilityWhenIngestionBinaryUnset(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "run_ingestion", map[string]any{"country": "de"})
	if got.Ok {
		t.Fatal("HandleToolCall(run_ingestion, no ingestion binary configured).Ok = true, want false")
	}
	if got.Error.Code != "unsupported_capability" {
		t.Errorf("Error.Code = %q, want unsupported_capability", got.Error.Code)
	}
}

func TestHandleToolCallDescribeCountry(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "describe_country", map[string]any{"country": "DE"})
	if !got.Ok {
		t.Fatalf("HandleToolCall(describe_country) = %+v, want ok:true", got)
	}
}

func TestHandleToolCallSearchDocumentsWithoutStoreReturnsUpgradeNotice(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "search_documents", map[string]any{"country": "de", "query": "BDSG"})
	if !got.Ok {
		t.Fatalf("HandleToolCall(search_documents) = %+v, want ok:true", got)
	}
	data, isMap := got.Data.(map[string]any)
	if !isMap || data["notice"] == nil || data["notice"] == "" {
		t.Errorf("HandleToolCall(search_documents).Data = %+v, want an upgrade notice", got.Data)
	}
}

func TestHandleToolCallFormatCitationRejectsUnknownStyle(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "format_citation", map[string]any{
		"country": "de", "citation": "§ 1 BDSG", "style": "verbose",
	})
	if got.Ok {
		t.Fatal("HandleToolCall(format_citation, bad style).Ok = true, want false")
	}
	if got.Error.Code != "invalid_arguments" {
		t.Errorf("Error.Code = %q, want invalid_arguments", got.Error.Code)
	}
}

func TestHandleToolCallGetPreparatoryWorksRequiresASelector(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "get_preparatory_works", map[string]any{"country": "de"})
	if got.Ok {
		t.Fatal("HandleToolCall(get_preparatory_works, no selector).Ok = true, want false")
	}
	if got.Error.Code != "invalid_arguments" {
		t.Errorf("Error.Code = %q, want invalid_arguments", got.Error.Code)
	}
}

func TestHandleToolCallListCountries(t *testing.T) {
	sh := newTestShell(t)
	got := sh.HandleToolCall(context.Background(), "list_countries", nil)
	if !got.Ok {
		t.Fatalf("HandleToolCall(list_countries) = %+v, want ok:true", got)
	}
}
