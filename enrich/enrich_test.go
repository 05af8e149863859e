package enrich

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/use-agent/blogdex/models"
)

func summaries(n int) []models.PostSummary {
	posts := make([]models.PostSummary, n)
	for i := range posts {
		posts[i] = models.PostSummary{
			Title: fmt.Sprintf("post %d", i),
			Link:  fmt.Sprintf("https://blog.example.com/id/%d", i),
		}
	}
	return posts
}

func TestRun_PreservesInputOrder(t *testing.T) {
	posts := summaries(20)

	// Random per-task delays so completion order differs from input order.
	task := func(ctx context.Context, post models.PostSummary) (models.EnrichedPost, error) {
		time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
		enriched := models.DefaultEnriched(post)
		enriched.Keyword = post.Title
		return enriched, nil
	}

	results := Run(context.Background(), posts, 30, 5, task)

	if len(results) != len(posts) {
		t.Fatalf("got %d results, want %d", len(results), len(posts))
	}
	for i, r := range results {
		if r.Title != posts[i].Title {
			t.Errorf("result %d has title %q, want %q", i, r.Title, posts[i].Title)
		}
	}
}

func TestRun_CapsAtMaxPosts(t *testing.T) {
	posts := summaries(50)
	var calls atomic.Int32

	task := func(ctx context.Context, post models.PostSummary) (models.EnrichedPost, error) {
		calls.Add(1)
		return models.DefaultEnriched(post), nil
	}

	results := Run(context.Background(), posts, 30, 5, task)

	if len(results) != 30 {
		t.Errorf("got %d results, want 30", len(results))
	}
	if got := calls.Load(); got != 30 {
		t.Errorf("task ran %d times, want 30", got)
	}
}

func TestRun_FaultIsolation(t *testing.T) {
	posts := summaries(6)

	task := func(ctx context.Context, post models.PostSummary) (models.EnrichedPost, error) {
		switch post.Title {
		case "post 2":
			return models.EnrichedPost{}, errors.New("detail fetch blew up")
		case "post 4":
			panic("selector gone wrong")
		}
		enriched := models.DefaultEnriched(post)
		enriched.Score = 50
		return enriched, nil
	}

	results := Run(context.Background(), posts, 30, 3, task)

	if len(results) != 6 {
		t.Fatalf("got %d results, want 6", len(results))
	}
	for _, i := range []int{2, 4} {
		if results[i].Exposure != models.ExposureUnknown {
			t.Errorf("failed post %d: exposure = %q, want unknown", i, results[i].Exposure)
		}
		if results[i].Score != 0 {
			t.Errorf("failed post %d: score = %d, want 0 default", i, results[i].Score)
		}
		if results[i].ImageSeo.AltQuality != models.AltQualityUnknown {
			t.Errorf("failed post %d: alt quality = %q, want unknown", i, results[i].ImageSeo.AltQuality)
		}
		if results[i].Title != fmt.Sprintf("post %d", i) {
			t.Errorf("failed post %d lost its summary: %+v", i, results[i].PostSummary)
		}
	}
	for _, i := range []int{0, 1, 3, 5} {
		if results[i].Score != 50 {
			t.Errorf("healthy post %d: score = %d, want 50", i, results[i].Score)
		}
	}
}

func TestRun_EmptyInput(t *testing.T) {
	task := func(ctx context.Context, post models.PostSummary) (models.EnrichedPost, error) {
		t.Fatal("task must not run for empty input")
		return models.EnrichedPost{}, nil
	}

	results := Run(context.Background(), nil, 30, 5, task)

	if results == nil || len(results) != 0 {
		t.Errorf("got %v, want empty non-nil slice", results)
	}
}

func TestRun_SingleWorkerStillCompletes(t *testing.T) {
	posts := summaries(4)

	task := func(ctx context.Context, post models.PostSummary) (models.EnrichedPost, error) {
		return models.DefaultEnriched(post), nil
	}

	results := Run(context.Background(), posts, 30, 0, task)

	if len(results) != 4 {
		t.Errorf("got %d results, want 4", len(results))
	}
}
