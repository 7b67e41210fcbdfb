package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/snip/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store persists links in Redis. Each link is a hash keyed by
// KeyPrefixLink+slug; all slugs are tracked in a set for stats.
//
// Links are never deleted or expired, which is what makes the
// exists-then-HINCRBY pair in IncrementClicks safe.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis-backed link store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Create inserts a new link. HSETNX on the url field is the uniqueness
// arbiter: exactly one of two concurrent creates for the same slug wins,
// the loser gets domain.ErrDuplicateSlug.
func (s *Store) Create(ctx context.Context, slug, url string) (*domain.Link, error) {
	key := LinkKey(slug)
	createdAt := time.Now().UTC()

	ok, err := s.client.HSetNX(ctx, key, fieldURL, url).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to create link %s: %w", slug, domain.ErrUnavailable)
	}
	if !ok {
		return nil, domain.ErrDuplicateSlug
	}

	// HSETNX again for clicks so a redirect racing this create never has
	// its increment clobbered by the zero initialization.
	pipe := s.client.Pipeline()
	pipe.HSetNX(ctx, key, fieldClicks, 0)
	pipe.HSet(ctx, key, fieldCreatedAt, createdAt.Format(time.RFC3339Nano))
	pipe.SAdd(ctx, AllLinksKey(), slug)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to finish link %s: %w", slug, domain.ErrUnavailable)
	}

	return &domain.Link{
		Slug:      slug,
		URL:       url,
		Clicks:    0,
		CreatedAt: createdAt,
	}, nil
}

// FindBySlug retrieves a link without touching its counter.
func (s *Store) FindBySlug(ctx context.Context, slug string) (*domain.Link, error) {
	fields, err := s.client.HGetAll(ctx, LinkKey(slug)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link %s: %w", slug, domain.ErrUnavailable)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}

	return linkFromFields(slug, fields)
}

// IncrementClicks adds 1 to the counter via HINCRBY and returns the link
// with the post-increment count. HINCRBY is atomic on the server, so
// concurrent redirects for the same slug are all counted.
func (s *Store) IncrementClicks(ctx context.Context, slug string) (*domain.Link, error) {
	key := LinkKey(slug)

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link %s: %w", slug, domain.ErrUnavailable)
	}
	if len(fields) == 0 {
		return nil, domain.ErrNotFound
	}

	clicks, err := s.client.HIncrBy(ctx, key, fieldClicks, 1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count click for %s: %w", slug, domain.ErrUnavailable)
	}

	link, err := linkFromFields(slug, fields)
	if err != nil {
		return nil, err
	}
	link.Clicks = clicks
	return link, nil
}

// Stats returns the click count per slug, read in one pipeline.
func (s *Store) Stats(ctx context.Context) (map[string]int64, error) {
	slugs, err := s.client.SMembers(ctx, AllLinksKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", domain.ErrUnavailable)
	}

	stats := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return stats, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(slugs))
	for i, slug := range slugs {
		cmds[i] = pipe.HGet(ctx, LinkKey(slug), fieldClicks)
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read counters: %w", domain.ErrUnavailable)
	}

	for i, slug := range slugs {
		clicks, err := cmds[i].Int64()
		if err != nil {
			// Slug set out of sync with its hash, skip it
			continue
		}
		stats[slug] = clicks
	}

	return stats, nil
}

// Ping reports whether Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", domain.ErrUnavailable)
	}
	return nil
}

func linkFromFields(slug string, fields map[string]string) (*domain.Link, error) {
	link := &domain.Link{
		Slug: slug,
		URL:  fields[fieldURL],
	}

	if raw, ok := fields[fieldClicks]; ok {
		clicks, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt click counter for %s: %q", slug, raw)
		}
		link.Clicks = clicks
	}

	if raw, ok := fields[fieldCreatedAt]; ok {
		if createdAt, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			link.CreatedAt = createdAt
		}
	}

	return link, nil
}
