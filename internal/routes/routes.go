package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/internal/config"
	"github.com/yourplaces/backend/internal/features/places"
	"github.com/yourplaces/backend/internal/features/users"
	"github.com/yourplaces/backend/internal/pkg/database"
	"github.com/yourplaces/backend/internal/pkg/geocode"
	"github.com/yourplaces/backend/internal/pkg/storage"
	"github.com/yourplaces/backend/internal/pkg/token"
)

// SetupRoutes wires repositories, handlers and routes. The user repository
// doubles as the places feature's user directory and creator linker, so the
// two-document writes share its collection.
func SetupRoutes(router *gin.Engine, conn *database.Connection, cfg *config.Config, tokens *token.Manager, store storage.Storage) {
	api := router.Group("/api")

	usersRepo := users.NewRepository(conn.Database)
	placesRepo := places.NewRepository(conn, usersRepo)
	geocoder := geocode.NewClient(cfg.GeocodeAPIKey)

	users.RegisterRoutes(api, users.NewHandler(usersRepo, tokens), store)
	places.RegisterRoutes(api, places.NewHandler(placesRepo, usersRepo, geocoder, store), tokens, store)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Could not found this route."})
	})
}
