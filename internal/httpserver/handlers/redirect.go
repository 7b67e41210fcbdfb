package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/snip/internal/domain"
	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/logger"
)

// Redirect handles GET /{slug}: resolve the slug, count the click and send
// the visitor to the stored URL.
func Redirect(d deps.Deps) http.HandlerFunc {
	svc := d.Shortener

	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		link, err := svc.Resolve(r.Context(), slug)
		switch {
		case errors.Is(err, domain.ErrEmptySlug):
			writeError(w, http.StatusBadRequest, "slug is required")
			return
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "short link not found")
			return
		case err != nil:
			d.Logger.Error("failed to resolve slug",
				logger.String("slug", slug),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not resolve link")
			return
		}

		d.Logger.Info("redirect",
			logger.String("slug", slug),
			logger.Int64("clicks", link.Clicks))

		http.Redirect(w, r, link.URL, http.StatusFound)
	}
}
