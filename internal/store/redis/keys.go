package redis

const (
	// KeyPrefixLink is the prefix for link hashes
	KeyPrefixLink = "snip:link:"
	// KeyAllLinks is the key for the set of all slugs
	KeyAllLinks = "snip:links:all"

	// Hash fields of a link entry
	fieldURL       = "url"
	fieldClicks    = "clicks"
	fieldCreatedAt = "created_at"
)

// LinkKey returns the Redis key for a link by slug
func LinkKey(slug string) string {
	return KeyPrefixLink + slug
}

// AllLinksKey returns the key for the set of all slugs
func AllLinksKey() string {
	return KeyAllLinks
}
