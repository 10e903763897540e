package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/thornvik/juricore/internal/shell"
)

// NewRouter creates a chi router exposing the Shell over HTTP.
// authEnabled controls whether Bearer token auth is enforced on /tool.
func NewRouter(sh *shell.Shell, authEnabled bool, token string) chi.Router {
	h := NewHandler(sh)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Post("/tool", h.HandleTool)

	return r
}
