package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/snip/internal/httpserver/mw"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	r.With(mw.RateLimit(d.APIRateLimit), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/links/{slug}", handlers.LinkInfo(d))
}
