package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/logger"
)

type statsResponse struct {
	Links  int              `json:"links"`
	Clicks map[string]int64 `json:"clicks"`
}

// Stats handles GET /api/stats: click counts per slug.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := d.Store.Stats(r.Context())
		if err != nil {
			d.Logger.Error("failed to collect stats", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "could not collect stats")
			return
		}

		writeJSON(w, http.StatusOK, statsResponse{
			Links:  len(stats),
			Clicks: stats,
		})
	}
}
