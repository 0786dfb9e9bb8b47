// @title YourPlaces API
// @version 1.0
// @description REST backend for the places sharing app: users, places, JWT auth, image upload
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/yourplaces/backend/docs"
	"github.com/yourplaces/backend/internal/config"
	"github.com/yourplaces/backend/internal/middleware"
	"github.com/yourplaces/backend/internal/pkg/database"
	"github.com/yourplaces/backend/internal/pkg/storage"
	"github.com/yourplaces/backend/internal/pkg/token"
	"github.com/yourplaces/backend/internal/routes"
)

func main() {
	cfg := config.Load()

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	conn, err := database.NewConnection(database.DefaultConfig(cfg.MongoURI, cfg.MongoDB))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer conn.Close()

	store, err := newStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize image storage:", err)
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTExpireHours)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))
	router.Use(middleware.ErrorHandler(store))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	// Stored images double as static assets when they live on local disk.
	if cfg.StorageDriver == "local" {
		router.Static("/uploads/images", cfg.UploadDir)
	}

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	routes.SetupRoutes(router, conn, cfg, tokens, store)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func newStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver == "cloudinary" {
		return storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "yourplaces")
	}
	return storage.NewLocal(cfg.UploadDir)
}
