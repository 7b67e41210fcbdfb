package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/snip/internal/domain"
)

// Store is an in-memory link store guarded by a mutex. It backs local
// development and tests; state is lost on restart.
type Store struct {
	mu    sync.RWMutex
	links map[string]*domain.Link
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		links: make(map[string]*domain.Link),
	}
}

// Create inserts a new link. The existence check and the insert happen under
// the same lock, so concurrent creates for one slug have exactly one winner.
func (s *Store) Create(ctx context.Context, slug, url string) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[slug]; ok {
		return nil, domain.ErrDuplicateSlug
	}

	link := &domain.Link{
		Slug:      slug,
		URL:       url,
		Clicks:    0,
		CreatedAt: time.Now(),
	}
	s.links[slug] = link

	cp := *link
	return &cp, nil
}

// FindBySlug returns a copy of the stored link.
func (s *Store) FindBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}

	cp := *link
	return &cp, nil
}

// IncrementClicks adds 1 to the counter under the lock and returns the
// updated link. Two concurrent increments are both counted.
func (s *Store) IncrementClicks(ctx context.Context, slug string) (*domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, ok := s.links[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	link.Clicks++

	cp := *link
	return &cp, nil
}

// Stats returns the click count per slug.
func (s *Store) Stats(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]int64, len(s.links))
	for slug, link := range s.links {
		stats[slug] = link.Clicks
	}
	return stats, nil
}

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Count returns the number of stored links.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.links)
}
