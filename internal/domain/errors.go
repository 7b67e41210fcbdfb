package domain

import "errors"

// Error taxonomy for the issuance and resolution paths. Boundaries match on
// these with errors.Is and map them to HTTP status codes.
var (
	// ErrInvalidURL is returned when the submitted URL is missing or not an
	// absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid url")

	// ErrEmptySlug is returned when a lookup is attempted with an empty slug.
	ErrEmptySlug = errors.New("slug is required")

	// ErrRateLimited is returned when the creation throttle rejects a client.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound is returned when no link exists for a slug.
	ErrNotFound = errors.New("link not found")

	// ErrDuplicateSlug is returned by the store when a slug already exists.
	// The creation flow retries with a fresh slug on this error.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrSlugExhausted is returned when every generation attempt collided.
	ErrSlugExhausted = errors.New("could not allocate a unique slug")

	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)
