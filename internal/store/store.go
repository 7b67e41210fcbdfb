package store

import (
	"context"

	"github.com/MrSnakeDoc/snip/internal/domain"
)

// LinkStore is the durable slug -> link mapping.
//
// Uniqueness of slugs is a storage-layer constraint: Create must decide the
// winner between concurrent inserts of the same slug, never an application
// check-then-insert. IncrementClicks must be a single atomic operation so
// concurrent redirects for the same slug are all counted.
type LinkStore interface {
	// Create inserts a new link. Returns domain.ErrDuplicateSlug if the slug
	// already exists.
	Create(ctx context.Context, slug, url string) (*domain.Link, error)

	// FindBySlug is a read-only lookup. Returns domain.ErrNotFound if the
	// slug is unknown.
	FindBySlug(ctx context.Context, slug string) (*domain.Link, error)

	// IncrementClicks atomically adds 1 to the click counter and returns the
	// updated link. Returns domain.ErrNotFound if the slug is unknown.
	IncrementClicks(ctx context.Context, slug string) (*domain.Link, error)

	// Stats returns the click count per slug.
	Stats(ctx context.Context) (map[string]int64, error)

	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}
