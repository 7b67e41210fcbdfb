package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/snip/internal/domain"
	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/store"
)

// Reloader loads predefined links into the store at startup and keeps them
// in sync, either on a timer or when the manual trigger fires.
//
// Seeding only ever inserts: an existing slug stays untouched (its URL and
// click counter are immutable once created), and invalid entries are logged
// and skipped.
type Reloader struct {
	loader        *Loader
	store         store.LinkStore
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewReloader creates a new seed reloader
func NewReloader(
	seedFile string,
	st store.LinkStore,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Reloader {
	return &Reloader{
		loader:        NewLoader(seedFile),
		store:         st,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start seeds immediately, then reloads periodically and on manual trigger
func (r *Reloader) Start(ctx context.Context) error {
	if err := r.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed failed: %w", err)
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.Reload(ctx); err != nil {
					r.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual seed reload triggered")
				if err := r.Reload(ctx); err != nil {
					r.logger.Error("failed to reload seed file",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (r *Reloader) Stop() {
	close(r.stopCh)
}

// Reload reads the seed file and inserts any links not yet in the store.
func (r *Reloader) Reload(ctx context.Context) error {
	entries, err := r.loader.Load()
	if err != nil {
		return err
	}

	created := 0
	skipped := 0
	for _, entry := range entries {
		if entry.Slug == "" {
			r.logger.Warn("skipping seed entry without slug",
				logger.String("url", entry.URL))
			skipped++
			continue
		}
		if err := domain.ValidateURL(entry.URL); err != nil {
			r.logger.Warn("skipping seed entry with invalid url",
				logger.String("slug", entry.Slug),
				logger.String("url", entry.URL))
			skipped++
			continue
		}

		_, err := r.store.Create(ctx, entry.Slug, entry.URL)
		switch {
		case errors.Is(err, domain.ErrDuplicateSlug):
			// Already present, leave it alone
		case err != nil:
			r.logger.Warn("failed to seed link",
				logger.String("slug", entry.Slug),
				logger.Error(err))
		default:
			created++
		}
	}

	r.logger.Info("seed file applied",
		logger.Int("entries", len(entries)),
		logger.Int("created", created),
		logger.Int("skipped", skipped))

	return nil
}
