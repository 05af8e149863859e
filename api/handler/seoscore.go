package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/models"
	"github.com/use-agent/blogdex/scoring"
)

// SeoScore returns a handler for GET /api/seo-score.
//
// Runs the analysis for the blog and aggregates the SEO report over the
// first 10 enriched posts.
func SeoScore(an Analyzer) gin.HandlerFunc {
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

		profile := an.Analyze(c.Request.Context(), blogID, 0, 0)
		if profile.Error != "" {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    models.ErrCodeUpstream,
					Message: profile.Error,
				},
			})
			return
		}

		c.JSON(http.StatusOK, scoring.SeoScore(profile.PostsWithIndex))
	}
}
