package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/thornvik/juricore/internal/adapter"
	"github.com/thornvik/juricore/internal/registry"
	"github.com/thornvik/juricore/internal/shell"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	reg := registry.New()
	if err := reg.Register(adapter.NewGerman(adapter.Config{})); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return NewHandler(shell.New(reg))
}

func TestHandleToolValidBody(t *testing.T) {
	h := newTestHandler(t)
	body, _ := json.Marshal(toolCallRequest{Tool: "list_countries"})
	req := httptest.NewRequest(http.MethodPost, "/tool", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleTool(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got shell.ToolResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Ok {
		t.Fatalf("got.Ok = false, want true: %+v", got)
	}
}

func TestHandleToolMalformedBody(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/tool", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	h.HandleTool(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var got shell.ToolResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Ok {
		t.Fatal("got.Ok = true, want false")
	}
	if got.Error.Code != "invalid_json" {
		t.Errorf("Error.Code = %q, want invalid_json", got.Error.Code)
	}
}
