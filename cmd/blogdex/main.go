package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/use-agent/blogdex/api"
	"github.com/use-agent/blogdex/cache"
	"github.com/use-agent/blogdex/config"
	"github.com/use-agent/blogdex/crawler"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/history"
	"github.com/use-agent/blogdex/metrics"
	"github.com/use-agent/blogdex/search"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("blogdex starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"enrichWorkers", cfg.Crawler.EnrichWorkers,
	)

	// ── 3. Initialise fetcher + analysis pipeline ───────────────────
	fetcher := fetch.NewClient(cfg.Fetch.Timeout)
	clock := fetch.SystemClock
	pipeline := crawler.New(fetcher, clock, cfg.Endpoints, cfg.Crawler)

	checker := search.NewChecker(fetcher, cfg.Endpoints.SearchBaseURL)
	suggester := search.NewSuggester(fetcher, cfg.Endpoints.SuggestBaseURL)

	// ── 4. Optional Redis-backed history store ──────────────────────
	var store *history.Store
	if cfg.History.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.History.RedisAddr,
			Password: cfg.History.RedisPassword,
			DB:       cfg.History.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis unreachable, history disabled", "addr", cfg.History.RedisAddr, "error", err)
		} else {
			store = history.New(client, cfg.History.MaxEntries)
			slog.Info("history store enabled", "addr", cfg.History.RedisAddr)
		}
		cancel()
	}

	// ── 4b. Suggestion cache + metrics ──────────────────────────────
	cc := cache.New(cfg.Cache.MaxEntries, 10*time.Minute)
	metrics.Init()

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(pipeline, checker, suggester, store, cc, clock, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("blogdex stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
