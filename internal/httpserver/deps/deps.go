package deps

import (
	"time"

	"github.com/MrSnakeDoc/snip/internal/httpserver/mw"
	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/shortener"
	"github.com/MrSnakeDoc/snip/internal/store"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	Shortener     *shortener.Service // creation and resolution flows
	Store         store.LinkStore    // direct store access (stats, readiness)
	BaseURL       string             // prefix of composed short URLs
	AllowedHosts  []string           // Host headers allowed to access the server
	AllowedCIDRS  []string           // IPs allowed to access admin endpoints
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	APIRateLimit  mw.RateLimitConfig // coarse token bucket on the API subtree
	ReloadTrigger chan struct{}      // Channel to trigger manual seed reload (nil if seeding disabled)
}
