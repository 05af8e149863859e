package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/models"
)

// Auth validates requests against the configured API keys. A key may be
// sent either as `X-API-Key: <key>` or `Authorization: Bearer <key>`.
// With no keys configured the middleware passes everything through.
func Auth(apiKeys []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			allowed[k] = true
		}
	}
	if len(allowed) == 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := requestAPIKey(c)
		switch {
		case key == "":
			rejectUnauthorized(c, "missing API key: provide X-API-Key header or Authorization: Bearer <key>")
		case !allowed[key]:
			rejectUnauthorized(c, "invalid API key")
		default:
			// Downstream middleware keys rate limits off this.
			c.Set("api_key", key)
			c.Next()
		}
	}
}

func requestAPIKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	if bearer, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return bearer
	}
	return ""
}

func rejectUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    models.ErrCodeUnauthorized,
			Message: msg,
		},
	})
}
