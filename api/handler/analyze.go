package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/history"
	"github.com/use-agent/blogdex/metrics"
	"github.com/use-agent/blogdex/models"
)

// Analyzer runs the full analysis for one blog identifier.
type Analyzer interface {
	Analyze(ctx context.Context, blogID string, weeklyAvg, weeklyCount int) *models.BlogProfile
}

// Analyze returns a handler for GET /api/analyze.
//
// Accepts a bare blog id or a full profile URL (the host part is stripped).
// weekly_avg and weekly_count are optional caller-tracked visitor history
// used by the index calculation; weekly_avg is echoed back only when at
// least 2 days back it.
func Analyze(an Analyzer, store *history.Store) gin.HandlerFunc {
	metrics.Init()

	return func(c *gin.Context) {
		blogID := normalizeBlogID(c.Query("blog_id"))
		if blogID == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "blog_id is required",
				},
			})
			return
		}

		weeklyAvg := intQuery(c, "weekly_avg")
		weeklyCount := intQuery(c, "weekly_count")

		start := time.Now()
		profile := an.Analyze(c.Request.Context(), blogID, weeklyAvg, weeklyCount)

		status := "success"
		if profile.Error != "" {
			status = "failure"
		}
		metrics.AnalysesTotal.WithLabelValues(status).Inc()
		metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
		metrics.EnrichedPostsTotal.Add(float64(len(profile.PostsWithIndex)))

		if store.Enabled() && profile.Error == "" && profile.Index != nil {
			entry := models.HistoryEntry{
				BlogID:     profile.BlogID,
				Grade:      profile.Index.Grade,
				Level:      profile.Index.Level,
				Score:      profile.Index.Score,
				AnalyzedAt: profile.CrawledAt,
			}
			if err := store.Append(c.Request.Context(), entry); err != nil {
				slog.Warn("history append failed", "blog_id", blogID, "error", err)
			}
		}

		echoed := 0
		if weeklyCount >= 2 {
			echoed = weeklyAvg
		}

		c.JSON(http.StatusOK, models.AnalyzeResponse{
			BlogProfile:   *profile,
			Platform:      "naver",
			WeeklyAvgUsed: echoed,
			WeeklyCount:   weeklyCount,
		})
	}
}

// normalizeBlogID strips a pasted profile URL down to the blog id.
func normalizeBlogID(raw string) string {
	id := strings.TrimSpace(raw)
	if idx := strings.Index(id, "blog.naver.com/"); idx >= 0 {
		id = id[idx+len("blog.naver.com/"):]
		id = strings.SplitN(id, "/", 2)[0]
		id = strings.SplitN(id, "?", 2)[0]
	}
	return id
}

func intQuery(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}
