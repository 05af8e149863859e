package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/cache"
	"github.com/use-agent/blogdex/models"
	"github.com/use-agent/blogdex/search"
)

// Suggest returns a handler for GET /api/suggest.
//
// Proxies the autocomplete endpoint with a short-lived cache in front.
// Upstream failures degrade to an empty suggestion list rather than an
// error status, so a typing UI keeps working.
func Suggest(sg *search.Suggester, cc *cache.Cache) gin.HandlerFunc {
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

		cacheKey := cache.Key(keyword)
		if cc != nil {
			if cached, hit := cc.Get(cacheKey); hit {
				c.JSON(http.StatusOK, models.SuggestResponse{
					Suggestions: cached,
					Source:      "cache",
				})
				return
			}
		}

		suggestions, err := sg.Suggest(c.Request.Context(), keyword)
		if err != nil {
			slog.Warn("suggest upstream failed", "keyword", keyword, "error", err)
			c.JSON(http.StatusOK, models.SuggestResponse{
				Suggestions: []string{},
				Error:       "검색 실패",
			})
			return
		}

		if cc != nil {
			cc.Set(cacheKey, suggestions)
		}
		c.JSON(http.StatusOK, models.SuggestResponse{
			Suggestions: suggestions,
			Source:      "naver",
		})
	}
}
