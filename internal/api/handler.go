package api

import (
	"encoding/json"
	"net/http"

	"github.com/thornvik/juricore/internal/shell"
)

// Handler exposes the Shell's single handle_tool_call contract over
// HTTP, mirroring the stdio MCP transport so both front doors drive the
// same dispatcher.
type Handler struct {
	shell *shell.Shell
}

// NewHandler wraps sh for HTTP delivery.
func NewHandler(sh *shell.Shell) *Handler {
	return &Handler{shell: sh}
}

// toolCallRequest is the HTTP request body: {tool, arguments?}.
type toolCallRequest struct {
	Tool      string         `json:"tool"`
	Arguments map[string]any `json:"arguments"`
}

// HandleTool decodes a toolCallRequest and forwards it to the Shell,
// writing back the Result Envelope verbatim. A malformed body is
// reported as invalid_json, the one transport-only error code §7
// reserves for this layer.
func (h *Handler) HandleTool(w http.ResponseWriter, r *http.Request) {
	var req toolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, shell.ToolResult{
			Ok: false,
			Error: &shell.ToolError{
				Code:    "invalid_json",
				Message: "request body is not valid JSON",
			},
		})
		return
	}

	result := h.shell.HandleToolCall(r.Context(), req.Tool, req.Arguments)
	writeJSON(w, http.StatusOK, result)
}
