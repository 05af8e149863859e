// Package api wires the HTTP surface: routes, middleware, and the
// Prometheus endpoint.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/use-agent/blogdex/api/handler"
	"github.com/use-agent/blogdex/api/middleware"
	"github.com/use-agent/blogdex/cache"
	"github.com/use-agent/blogdex/config"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/history"
	"github.com/use-agent/blogdex/search"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → Metrics
//	API:     Auth (if enabled) → RateLimit
//
// Health and metrics endpoints sit outside auth so monitoring probes
// always work.
func NewRouter(an handler.Analyzer, checker *search.Checker, sg *search.Suggester,
	store *history.Store, cc *cache.Cache, clock fetch.Clock,
	cfg *config.Config, startTime time.Time) *gin.Engine {

	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.Metrics())

	r.GET("/api/health", handler.Health(startTime))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected group — auth + rate limit.
	protected := r.Group("/api")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.GET("/analyze", handler.Analyze(an, store))
	protected.GET("/seo-score", handler.SeoScore(an))
	protected.GET("/suggest", handler.Suggest(sg, cc))
	protected.GET("/competitor", handler.Competitor(checker))
	protected.GET("/trends", handler.Trends(clock))
	protected.GET("/history", handler.History(store))

	return r
}
