package shortener

import (
	"context"
	"errors"
	"strings"

	"github.com/MrSnakeDoc/snip/internal/domain"
	"github.com/MrSnakeDoc/snip/internal/logger"
	"github.com/MrSnakeDoc/snip/internal/store"
	"github.com/MrSnakeDoc/snip/internal/throttle"
)

// DefaultMaxSlugAttempts bounds the collision retry loop during creation.
const DefaultMaxSlugAttempts = 5

// SlugGenerator produces candidate slugs. Candidates carry no uniqueness
// guarantee; the store decides.
type SlugGenerator interface {
	Generate() string
}

// ShortLink is the result of a successful creation.
type ShortLink struct {
	Slug     string
	ShortURL string
	Link     *domain.Link
}

// Options configures a Service.
type Options struct {
	Store           store.LinkStore
	Generator       SlugGenerator
	Throttle        *throttle.Throttle
	Logger          logger.Logger
	BaseURL         string
	MaxSlugAttempts int
}

// Service implements the slug-issuance and redirect-counting flows on top of
// the link store.
type Service struct {
	store       store.LinkStore
	gen         SlugGenerator
	throttle    *throttle.Throttle
	logger      logger.Logger
	baseURL     string
	maxAttempts int
}

// New creates a Service from opts.
func New(opts Options) *Service {
	maxAttempts := opts.MaxSlugAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxSlugAttempts
	}
	return &Service{
		store:       opts.Store,
		gen:         opts.Generator,
		throttle:    opts.Throttle,
		logger:      opts.Logger,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		maxAttempts: maxAttempts,
	}
}

// CreateShortLink runs the creation flow: throttle, validate, generate,
// persist with bounded collision retry, compose the short URL.
func (s *Service) CreateShortLink(ctx context.Context, rawURL, clientKey string) (*ShortLink, error) {
	if !s.throttle.Allow(clientKey) {
		s.logger.Debug("creation throttled",
			logger.String("client", clientKey))
		return nil, domain.ErrRateLimited
	}

	if err := domain.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		candidate := s.gen.Generate()

		link, err := s.store.Create(ctx, candidate, rawURL)
		if errors.Is(err, domain.ErrDuplicateSlug) {
			s.logger.Debug("slug collision, retrying",
				logger.String("slug", candidate),
				logger.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		s.logger.Info("short link created",
			logger.String("slug", candidate),
			logger.String("url", rawURL))

		return &ShortLink{
			Slug:     candidate,
			ShortURL: s.baseURL + "/" + candidate,
			Link:     link,
		}, nil
	}

	s.logger.Warn("slug space exhausted after retries",
		logger.Int("attempts", s.maxAttempts))
	return nil, domain.ErrSlugExhausted
}

// Resolve looks up a slug and counts the click. The returned link carries
// the post-increment count, never a stale one; the store does the increment
// atomically.
func (s *Service) Resolve(ctx context.Context, slug string) (*domain.Link, error) {
	if slug == "" {
		return nil, domain.ErrEmptySlug
	}
	return s.store.IncrementClicks(ctx, slug)
}

// Lookup returns a link without counting a click.
func (s *Service) Lookup(ctx context.Context, slug string) (*domain.Link, error) {
	if slug == "" {
		return nil, domain.ErrEmptySlug
	}
	return s.store.FindBySlug(ctx, slug)
}

// BaseURL returns the configured short-URL prefix.
func (s *Service) BaseURL() string {
	return s.baseURL
}
