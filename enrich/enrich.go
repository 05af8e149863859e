// Package enrich runs per-post enrichment tasks over a bounded worker
// pool, preserving the input order of the results.
package enrich

import (
	"context"
	"log/slog"
	"sync"

	"github.com/use-agent/blogdex/models"
)

// Task enriches one post. Errors and panics are absorbed by Run; a failed
// task contributes the documented default enrichment instead.
type Task func(ctx context.Context, post models.PostSummary) (models.EnrichedPost, error)

// Run enriches the first maxPosts of posts using a pool of workers goroutines
// and returns the results in the original feed order. Each result carries
// its input index, so ordering never depends on post content or timing.
func Run(ctx context.Context, posts []models.PostSummary, maxPosts, workers int, task Task) []models.EnrichedPost {
	if maxPosts > 0 && len(posts) > maxPosts {
		posts = posts[:maxPosts]
	}
	if len(posts) == 0 {
		return []models.EnrichedPost{}
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(posts) {
		workers = len(posts)
	}

	type job struct {
		index int
		post  models.PostSummary
	}

	jobs := make(chan job)
	results := make([]models.EnrichedPost, len(posts))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = runOne(ctx, j.post, task)
			}
		}()
	}

	for i, post := range posts {
		jobs <- job{index: i, post: post}
	}
	close(jobs)
	wg.Wait()

	return results
}

// runOne isolates a single task: an error or panic degrades that post to
// the default enrichment without disturbing its siblings.
func runOne(ctx context.Context, post models.PostSummary, task Task) (result models.EnrichedPost) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("enrichment task panicked", "link", post.Link, "panic", r)
			result = models.DefaultEnriched(post)
		}
	}()

	enriched, err := task(ctx, post)
	if err != nil {
		slog.Warn("enrichment task failed", "link", post.Link, "error", err)
		return models.DefaultEnriched(post)
	}
	return enriched
}
