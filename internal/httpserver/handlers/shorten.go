package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/snip/internal/domain"
	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/throttle"
	"github.com/MrSnakeDoc/snip/internal/utils"
)

type shortenRequest struct {
	URL string `json:"url"`
}

type shortenResponse struct {
	ShortURL string `json:"shorturl"`
	Slug     string `json:"slug"`
}

// Shorten handles POST /api/shorten: validate, throttle, issue a slug and
// return the composed short URL.
func Shorten(d deps.Deps) http.HandlerFunc {
	svc := d.Shortener

	return func(w http.ResponseWriter, r *http.Request) {
		var req shortenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		res, err := svc.CreateShortLink(r.Context(), req.URL, clientKey(r, d.TrustProxy))
		switch {
		case errors.Is(err, domain.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, "too many requests, slow down")
		case errors.Is(err, domain.ErrInvalidURL):
			writeError(w, http.StatusBadRequest, "invalid url")
		case errors.Is(err, domain.ErrSlugExhausted):
			writeError(w, http.StatusBadRequest, "slug already exists, try again")
		case err != nil:
			d.Logger.Error("failed to create short link",
				logger.String("url", req.URL),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not save link")
		default:
			writeJSON(w, http.StatusOK, shortenResponse{
				ShortURL: res.ShortURL,
				Slug:     res.Slug,
			})
		}
	}
}

// clientKey identifies the requesting client for throttling. Best effort:
// proxy headers are spoofable and the fallback bucket is shared.
func clientKey(r *http.Request, trustProxy bool) string {
	if ip := utils.ClientIP(r, trustProxy); ip != "" {
		return ip
	}
	return throttle.UnknownClient
}
