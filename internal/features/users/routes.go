package users

import (
	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/internal/middleware"
	"github.com/yourplaces/backend/internal/pkg/storage"
)

// RegisterRoutes mounts the user endpoints. All three are public; signup
// runs the image intake middleware before the handler.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, store storage.Storage) {
	users := router.Group("/users")
	{
		users.GET("", handler.List)
		users.POST("/signup", middleware.UploadImage(store, "image"), handler.Signup)
		users.POST("/login", handler.Login)
	}
}
