package throttle

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/snip/internal/logger"
)

const (
	// DefaultSweepInterval is how often the janitor prunes idle entries
	DefaultSweepInterval = time.Minute
	// DefaultIdleTTL is how long an entry may sit idle before pruning
	DefaultIdleTTL = 15 * time.Minute
)

// Janitor periodically prunes idle throttle entries so the client map does
// not grow without bound.
type Janitor struct {
	throttle *Throttle
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
}

// NewJanitor creates a janitor for the given throttle
func NewJanitor(t *Throttle, log logger.Logger, interval, ttl time.Duration) *Janitor {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	return &Janitor{
		throttle: t,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := j.throttle.Sweep(j.ttl); removed > 0 {
					j.logger.Debug("pruned idle throttle entries",
						logger.Int("removed", removed),
						logger.Int("remaining", j.throttle.Len()))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the janitor
func (j *Janitor) Stop() {
	close(j.stopCh)
}
