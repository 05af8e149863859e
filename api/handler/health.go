package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health returns a handler for GET /api/health.
func Health(startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": "0.1.0",
		})
	}
}
