package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("fetch timeout = %v, want 10s", cfg.Fetch.Timeout)
	}
	if cfg.Crawler.MaxEnrichPosts != 30 || cfg.Crawler.EnrichWorkers != 5 {
		t.Errorf("enrich config = %d/%d, want 30/5",
			cfg.Crawler.MaxEnrichPosts, cfg.Crawler.EnrichWorkers)
	}
	if cfg.Endpoints.MobileBaseURL != "https://m.blog.naver.com" {
		t.Errorf("mobile base = %q", cfg.Endpoints.MobileBaseURL)
	}
	if cfg.Auth.Enabled {
		t.Error("auth enabled by default")
	}
	if cfg.History.RedisAddr != "" {
		t.Errorf("redis addr = %q, want empty by default", cfg.History.RedisAddr)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BLOGDEX_PORT", "9999")
	t.Setenv("BLOGDEX_SEARCH_DELAY", "50ms")
	t.Setenv("BLOGDEX_API_KEYS", "key-a, key-b,,key-c")
	t.Setenv("BLOGDEX_AUTH_ENABLED", "true")

	cfg := Load()

	if cfg.Server.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Crawler.SearchDelay != 50*time.Millisecond {
		t.Errorf("search delay = %v, want 50ms", cfg.Crawler.SearchDelay)
	}
	if !cfg.Auth.Enabled {
		t.Error("auth not enabled")
	}
	if len(cfg.Auth.APIKeys) != 3 || cfg.Auth.APIKeys[1] != "key-b" {
		t.Errorf("api keys = %v, want 3 trimmed keys", cfg.Auth.APIKeys)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("BLOGDEX_PORT", "not-a-number")
	t.Setenv("BLOGDEX_FETCH_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default on parse failure", cfg.Server.Port)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want default on parse failure", cfg.Fetch.Timeout)
	}
}
