package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Fetch     FetchConfig
	Crawler   CrawlerConfig
	Endpoints EndpointsConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	History   HistoryConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// FetchConfig controls outbound page fetches.
type FetchConfig struct {
	// Timeout is the per-fetch deadline.
	Timeout time.Duration // default: 10s
}

// CrawlerConfig controls the enrichment stage.
type CrawlerConfig struct {
	// MaxEnrichPosts is how many recent posts get detail enrichment.
	MaxEnrichPosts int // default: 30

	// EnrichWorkers is the worker-pool size for enrichment. Kept in the
	// single digits as a courtesy throttle against the upstream site.
	EnrichWorkers int // default: 5

	// SearchDelay is the pause between a post's detail fetch and its
	// search-exposure check.
	SearchDelay time.Duration // default: 300ms
}

// EndpointsConfig holds the upstream base URLs. Overridable so tests can
// point every fetch at a fixture server.
type EndpointsConfig struct {
	// BaseURL is the desktop blog host.
	BaseURL string // default: "https://blog.naver.com"

	// MobileBaseURL is the mobile blog host.
	MobileBaseURL string // default: "https://m.blog.naver.com"

	// RSSBaseURL is the RSS feed host.
	RSSBaseURL string // default: "https://rss.blog.naver.com"

	// SearchBaseURL is the search host for the blog vertical.
	SearchBaseURL string // default: "https://search.naver.com"

	// SuggestBaseURL is the autocomplete host.
	SuggestBaseURL string // default: "https://mac.search.naver.com"
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the suggestion response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached suggestion lists.
	MaxEntries int // default: 1000
}

// HistoryConfig controls the optional Redis analysis-history store.
type HistoryConfig struct {
	// RedisAddr enables the history store when non-empty ("host:port").
	RedisAddr string

	// RedisPassword is the optional Redis password.
	RedisPassword string

	// RedisDB is the Redis database number.
	RedisDB int // default: 0

	// MaxEntries caps the per-blog history length.
	MaxEntries int // default: 10
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("BLOGDEX_HOST", "0.0.0.0"),
			Port: envIntOr("BLOGDEX_PORT", 8080),
			Mode: envOr("BLOGDEX_MODE", "release"),
		},
		Fetch: FetchConfig{
			Timeout: envDurationOr("BLOGDEX_FETCH_TIMEOUT", 10*time.Second),
		},
		Crawler: CrawlerConfig{
			MaxEnrichPosts: envIntOr("BLOGDEX_MAX_ENRICH_POSTS", 30),
			EnrichWorkers:  envIntOr("BLOGDEX_ENRICH_WORKERS", 5),
			SearchDelay:    envDurationOr("BLOGDEX_SEARCH_DELAY", 300*time.Millisecond),
		},
		Endpoints: EndpointsConfig{
			BaseURL:        envOr("BLOGDEX_BASE_URL", "https://blog.naver.com"),
			MobileBaseURL:  envOr("BLOGDEX_MOBILE_BASE_URL", "https://m.blog.naver.com"),
			RSSBaseURL:     envOr("BLOGDEX_RSS_BASE_URL", "https://rss.blog.naver.com"),
			SearchBaseURL:  envOr("BLOGDEX_SEARCH_BASE_URL", "https://search.naver.com"),
			SuggestBaseURL: envOr("BLOGDEX_SUGGEST_BASE_URL", "https://mac.search.naver.com"),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("BLOGDEX_AUTH_ENABLED", false),
			APIKeys: envSliceOr("BLOGDEX_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("BLOGDEX_RATE_RPS", 5.0),
			Burst:             envIntOr("BLOGDEX_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("BLOGDEX_CACHE_MAX_ENTRIES", 1000),
		},
		History: HistoryConfig{
			RedisAddr:     os.Getenv("BLOGDEX_REDIS_ADDR"),
			RedisPassword: os.Getenv("BLOGDEX_REDIS_PASSWORD"),
			RedisDB:       envIntOr("BLOGDEX_REDIS_DB", 0),
			MaxEntries:    envIntOr("BLOGDEX_HISTORY_MAX_ENTRIES", 10),
		},
		Log: LogConfig{
			Level:  envOr("BLOGDEX_LOG_LEVEL", "info"),
			Format: envOr("BLOGDEX_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
