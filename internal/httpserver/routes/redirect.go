package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/snip/internal/httpserver/mw"
)

func init() { Register(registerRedirect) }

// Registered last in path precedence anyway: chi prefers static routes like
// /healthz over the {slug} parameter at the same level.
func registerRedirect(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/{slug}", handlers.Redirect(d))
}
