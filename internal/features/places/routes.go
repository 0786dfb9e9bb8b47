package places

import (
	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/internal/middleware"
	"github.com/yourplaces/backend/internal/pkg/storage"
	"github.com/yourplaces/backend/internal/pkg/token"
)

// RegisterRoutes mounts the place endpoints. Reads are public; every
// mutation sits behind the auth middleware, and create additionally runs the
// image intake middleware.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, tokens *token.Manager, store storage.Storage) {
	places := router.Group("/places")
	{
		places.GET("/:pid", handler.GetByID)
		places.GET("/user/:uid", handler.ListByUser)
	}

	protected := places.Group("")
	protected.Use(middleware.Auth(tokens))
	{
		protected.POST("", middleware.UploadImage(store, "image"), handler.Create)
		protected.PATCH("/:pid", handler.Update)
		protected.DELETE("/:pid", handler.Delete)
	}
}
