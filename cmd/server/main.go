package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bigtools/multilang-service/internal/api"
	"github.com/bigtools/multilang-service/internal/catalog"
	"github.com/bigtools/multilang-service/internal/config"
	"github.com/bigtools/multilang-service/internal/logging"
	"github.com/bigtools/multilang-service/internal/service"
	"github.com/bigtools/multilang-service/internal/translate"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)
	log.Printf("Multilang Service starting (GIT_SHA=%s BUILD_TIME=%s)", os.Getenv("GIT_SHA"), os.Getenv("BUILD_TIME"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.GenAIAPIKey == "" || cfg.GenAIModelID == "" {
		log.Printf("[WARN] Generation backend not configured; generate-overrides will report missing_creds")
	}

	catalogClient := catalog.NewClient(cfg)
	backend := translate.NewBackend(cfg.GenAIAPIKey, cfg.GenAIModelID)
	localizer := service.NewLocalizer(catalogClient, catalogClient, backend, cfg.ChannelID)

	handler := api.NewHandler(localizer, catalogClient)
	router := setupRouter(handler)

	// Set up graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

func setupRouter(handler *api.Handler) *gin.Engine {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Parse JWT if present to expose role info for read endpoints
		v1.Use(api.OptionalAuthMiddleware())

		// Read endpoints (public)
		v1.GET("/locales", handler.GetLocales)
		v1.GET("/products", handler.GetProducts)
		v1.GET("/overrides", handler.GetOverrides)
		v1.GET("/products-with-overrides", handler.GetProductsWithOverrides)

		// Generation endpoint
		v1.POST("/generate-overrides", handler.GenerateOverrides)

		// Protected admin endpoints
		admin := v1.Group("")
		admin.Use(api.AuthMiddleware(), api.AdminMiddleware())
		{
			admin.POST("/update-basic-info", handler.UpdateBasicInfo)
			admin.DELETE("/overrides/:id", handler.DeleteOverrides)
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "multilang-service",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}
