package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/snip/internal/httpserver/mw"
)

func init() { Register(registerHealthz) }

func registerHealthz(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/healthz", handlers.Healthz(d))
}
