package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/models"
	"github.com/use-agent/blogdex/search"
)

// Competitor returns a handler for GET /api/competitor.
//
// Lists the top blog-vertical results for the keyword and flags whether,
// and where, the caller's own blog ranks among them.
func Competitor(checker *search.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := strings.TrimSpace(c.Query("keyword"))
		if keyword == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "keyword is required",
				},
			})
			return
		}
		myBlogID := normalizeBlogID(c.Query("blog_id"))

		competitors, err := checker.Competitors(c.Request.Context(), keyword, myBlogID)
		if err != nil {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    models.ErrCodeUpstream,
					Message: err.Error(),
				},
			})
			return
		}

		var myRank *int
		for _, comp := range competitors {
			if comp.IsMine {
				rank := comp.Rank
				myRank = &rank
				break
			}
		}

		c.JSON(http.StatusOK, models.CompetitorResponse{
			Keyword:          keyword,
			Competitors:      competitors,
			MyRank:           myRank,
			TotalCompetitors: len(competitors),
		})
	}
}
