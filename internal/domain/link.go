package domain

import (
	"net/url"
	"time"
)

// Link is the sole persisted entity: a short slug mapped to a target URL.
// Slug and URL are immutable once created; only Clicks changes, and only
// through the store's atomic increment.
type Link struct {
	Slug      string    `json:"slug"`
	URL       string    `json:"url"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateURL checks that raw is a well-formed absolute http(s) URL.
// Returns ErrInvalidURL otherwise.
func ValidateURL(raw string) error {
	if raw == "" {
		return ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
