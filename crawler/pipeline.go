// Package crawler implements the extraction pipeline: it fetches a blog's
// public pages, runs the field extractors over them in a fixed stage order,
// enriches recent posts concurrently, and attaches the computed index.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/blogdex/config"
	"github.com/use-agent/blogdex/enrich"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
	"github.com/use-agent/blogdex/scoring"
	"github.com/use-agent/blogdex/search"
)

// Pipeline runs the full analysis for one blog identifier. It holds no
// per-request state; every Analyze call builds a fresh profile.
type Pipeline struct {
	fetcher   fetch.Fetcher
	clock     fetch.Clock
	endpoints config.EndpointsConfig
	cfg       config.CrawlerConfig
	checker   *search.Checker
}

// New creates a Pipeline.
func New(fetcher fetch.Fetcher, clock fetch.Clock, endpoints config.EndpointsConfig, cfg config.CrawlerConfig) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		clock:     clock,
		endpoints: endpoints,
		cfg:       cfg,
		checker:   search.NewChecker(fetcher, endpoints.SearchBaseURL),
	}
}

// Analyze crawls every page for blogID and returns the populated profile.
//
// Stage order is load-bearing: later stages only fill fields the earlier
// stages left at zero, so reordering changes results. The index is computed
// last, after every field it reads has settled. Individual stage failures
// are logged and swallowed; only a programming error reaches the top-level
// recover, which sets profile.Error and leaves the index unset.
func (p *Pipeline) Analyze(ctx context.Context, blogID string, weeklyAvg, weeklyCount int) (profile *models.BlogProfile) {
	profile = &models.BlogProfile{
		BlogID:         blogID,
		RecentPosts:    []models.PostSummary{},
		PostsWithIndex: []models.EnrichedPost{},
		CrawledAt:      p.clock().Format(time.RFC3339),
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis pipeline failed", "blog_id", blogID, "panic", r)
			profile.Error = fmt.Sprint(r)
		}
	}()

	p.crawlMainPage(ctx, blogID, profile)
	p.crawlRSS(ctx, blogID, profile)
	p.crawlProfile(ctx, blogID, profile)
	p.crawlVisitorStats(ctx, blogID, profile)
	p.crawlMobilePage(ctx, blogID, profile)

	if len(profile.RecentPosts) > 0 {
		profile.PostsWithIndex = enrich.Run(ctx, profile.RecentPosts,
			p.cfg.MaxEnrichPosts, p.cfg.EnrichWorkers, p.enrichTask(blogID))
	}

	idx := scoring.CalculateIndex(scoring.IndexInput{
		DailyVisitors:     profile.DailyVisitors,
		YesterdayVisitors: profile.YesterdayVisitors,
		TotalVisitors:     profile.TotalVisitors,
		Neighbors:         profile.Neighbors,
		TotalPosts:        profile.TotalPosts,
		Recent30DaysPosts: profile.Recent30DaysPosts,
		BlogAgeDays:       profile.BlogAgeDays,
	}, weeklyAvg, weeklyCount, p.clock())
	profile.Index = &idx

	return profile
}

// enrichTask builds the per-post enrichment task: detail fetch, a courtesy
// delay, then the search-exposure check.
func (p *Pipeline) enrichTask(blogID string) enrich.Task {
	return func(ctx context.Context, post models.PostSummary) (models.EnrichedPost, error) {
		detail := p.postDetails(ctx, blogID, post.Link)

		select {
		case <-time.After(p.cfg.SearchDelay):
		case <-ctx.Done():
		}

		exposure, keyword := p.checker.Check(ctx, blogID, post.Title, post.Link)

		enriched := models.EnrichedPost{
			PostSummary: post,
			PostDetail:  detail,
			Exposure:    exposure,
			Keyword:     keyword,
		}
		enriched.Score = scoring.PostScore(enriched)
		return enriched, nil
	}
}
