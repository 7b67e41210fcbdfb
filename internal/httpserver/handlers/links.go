package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/snip/internal/domain"
	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/logger"
)

// LinkInfo handles GET /api/links/{slug}: link metadata without counting
// a click.
func LinkInfo(d deps.Deps) http.HandlerFunc {
	svc := d.Shortener

	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		link, err := svc.Lookup(r.Context(), slug)
		switch {
		case errors.Is(err, domain.ErrEmptySlug):
			writeError(w, http.StatusBadRequest, "slug is required")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "short link not found")
		case err != nil:
			d.Logger.Error("failed to look up slug",
				logger.String("slug", slug),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not look up link")
		default:
			writeJSON(w, http.StatusOK, link)
		}
	}
}
