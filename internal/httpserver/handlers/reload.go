package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/snip/internal/httpserver/deps"
	"github.com/MrSnakeDoc/snip/internal/logger"
)

// Reload triggers a manual reload of the seed file
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, http.StatusNotFound, "seeding is not enabled")
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual seed reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "reload triggered"})
		default:
			d.Logger.Warn("seed reload already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "reload already in progress")
		}
	}
}
