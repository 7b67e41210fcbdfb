package throttle

import (
	"sync"
	"time"
)

// UnknownClient is the bucket used when no client key could be resolved.
// All anonymous clients share it; this is a deliberate best-effort limiter,
// not abuse protection, since the key comes from spoofable headers.
const UnknownClient = "unknown"

// DefaultWindow is the minimum gap between two accepted creation requests
// from the same client.
const DefaultWindow = 2 * time.Second

// Throttle tracks the last accepted request per client key. It is an
// injected component owned by the app, not process-global state, so tests
// can construct one per case and drive its clock.
type Throttle struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

// New creates a throttle with the given acceptance window. Non-positive
// windows fall back to DefaultWindow.
func New(window time.Duration) *Throttle {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Throttle{
		window: window,
		last:   make(map[string]time.Time, 256),
		now:    time.Now,
	}
}

// Allow reports whether a request from key may proceed. The timestamp is
// recorded only on acceptance, so a rejected burst does not extend the
// window. An empty key falls into the shared UnknownClient bucket.
func (t *Throttle) Allow(key string) bool {
	if key == "" {
		key = UnknownClient
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if last, ok := t.last[key]; ok && now.Sub(last) < t.window {
		return false
	}

	t.last[key] = now
	return true
}

// Sweep drops entries idle for longer than ttl and returns how many were
// removed. Entries older than the window can never reject anyone again,
// they only hold memory.
func (t *Throttle) Sweep(ttl time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	removed := 0
	for key, last := range t.last {
		if now.Sub(last) > ttl {
			delete(t.last, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked client keys.
func (t *Throttle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.last)
}
