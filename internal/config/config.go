package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	BaseURL         string        // prefix of composed short URLs (ex: https://sn.ip)
	StoreBackend    string        // "redis" | "memory"
	SlugLength      int           // length of generated slugs (default: 6)
	MaxSlugAttempts int           // bounded retries on slug collision (default: 5)
	ThrottleWindow  time.Duration // min gap between accepted creations per client (default: 2s)
	ThrottleIdleTTL time.Duration // throttle entries idle longer than this get pruned
	ThrottleSweep   time.Duration // how often the throttle janitor runs
	SeedFile        string        // optional YAML file of predefined links (empty = disabled)
	SeedInterval    time.Duration // interval to reload the seed file (default: 24h)

	// Coarse token-bucket limit on the API subtree (distinct from the
	// per-client creation throttle)
	APIBurst        int // bucket capacity per client IP
	APIRefillPerMin int // tokens refilled per minute

	// Redis (used when StoreBackend == "redis")
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict admin endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	// Optional .env for local development; absent in prod is fine
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SNIP_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SNIP_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SNIP_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SNIP_PRETTY_LOG", true),

		// Shortener
		BaseURL:         getenv("SNIP_BASE_URL", "http://localhost:8080"),
		StoreBackend:    getenv("SNIP_STORE", StoreMemory),
		SlugLength:      getenvInt("SNIP_SLUG_LENGTH", 6),
		MaxSlugAttempts: getenvInt("SNIP_MAX_SLUG_ATTEMPTS", 5),
		ThrottleWindow:  mustDuration("SNIP_THROTTLE_WINDOW", 2*time.Second),
		ThrottleIdleTTL: mustDuration("SNIP_THROTTLE_IDLE_TTL", 15*time.Minute),
		ThrottleSweep:   mustDuration("SNIP_THROTTLE_SWEEP_INTERVAL", time.Minute),
		SeedFile:        getenv("SNIP_SEED_FILE", ""),
		SeedInterval:    mustDuration("SNIP_SEED_RELOAD_INTERVAL", 24*time.Hour),

		// API rate limit
		APIBurst:        getenvInt("SNIP_API_BURST", 20),
		APIRefillPerMin: getenvInt("SNIP_API_REFILL_PER_MIN", 60),

		// Redis settings
		RedisAddr:           getenv("SNIP_REDIS_ADDR", "localhost:6379"),
		RedisUser:           getenv("SNIP_REDIS_USERNAME", ""),
		RedisPassword:       getenv("SNIP_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("SNIP_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SNIP_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SNIP_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SNIP_TRUST_PROXY", true),
	}

	if cfg.StoreBackend != StoreRedis && cfg.StoreBackend != StoreMemory {
		panic("❌ FATAL: SNIP_STORE must be \"redis\" or \"memory\", got " + cfg.StoreBackend)
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
