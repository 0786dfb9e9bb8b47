package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/internal/pkg/httperror"
	"github.com/yourplaces/backend/internal/pkg/logger"
	"github.com/yourplaces/backend/internal/pkg/storage"
)

// ErrorHandler is the single place an error becomes an HTTP response. It
// maps the typed application error to its status and a {"message"} body, and
// if the failed request had stored an image that no record ended up owning,
// it deletes the orphan.
func ErrorHandler(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		if path := c.GetString("imagePath"); path != "" && !c.GetBool("imageCommitted") {
			if err := store.Remove(c.Request.Context(), path); err != nil {
				logger.Error("failed to remove orphaned upload %s: %v", path, err)
			}
		}

		if c.Writer.Written() {
			return
		}

		httpErr := httperror.From(c.Errors.Last().Err)
		c.JSON(httpErr.Code, gin.H{"message": httpErr.Message})
	}
}
