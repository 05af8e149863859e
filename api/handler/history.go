package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/blogdex/history"
	"github.com/use-agent/blogdex/models"
)

// History returns a handler for GET /api/history.
//
// Serves the blog's past analysis results, newest first. When no store is
// configured the response carries enabled=false and an empty list.
func History(store *history.Store) gin.HandlerFunc {
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

		entries, err := store.List(c.Request.Context(), blogID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    models.ErrCodeInternal,
					Message: err.Error(),
				},
			})
			return
		}

		c.JSON(http.StatusOK, models.HistoryResponse{
			BlogID:  blogID,
			Entries: entries,
			Enabled: store.Enabled(),
		})
	}
}
