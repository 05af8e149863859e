package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

// Curated blogging-topic keywords served when no live trend source is
// available.
var defaultTrends = []models.TrendKeyword{
	{Keyword: "맛집 추천", Category: "맛집"},
	{Keyword: "여행 코스", Category: "여행"},
	{Keyword: "다이어트 식단", Category: "건강"},
	{Keyword: "주식 투자", Category: "재테크"},
	{Keyword: "인테리어 팁", Category: "라이프"},
	{Keyword: "육아 정보", Category: "육아"},
	{Keyword: "자기계발 책 추천", Category: "도서"},
	{Keyword: "운동 루틴", Category: "운동"},
	{Keyword: "카페 추천", Category: "카페"},
	{Keyword: "부업 방법", Category: "재테크"},
}

// Trends returns a handler for GET /api/trends.
func Trends(clock fetch.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.TrendsResponse{
			Trends:  defaultTrends,
			Updated: clock().Format(time.RFC3339),
		})
	}
}
