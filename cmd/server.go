package cmd

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"cadenza/config"
	"cadenza/handlers"
	"cadenza/middleware"
	"cadenza/services"
)

// StartWebServer wires the services and serves the HTTP surface.
func StartWebServer(cfg *config.Config, logger *log.Logger) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize services
	runner := services.NewCommandRunner()
	downloader := services.NewDownloader(cfg, runner, logger)
	cleaner := services.NewCleaner(cfg.DownloadsDir, cfg.CleanupDelay, logger)
	fileService := services.NewFileService(logger)

	// Initialize handlers
	downloadHandler := handlers.NewDownloadHandler(downloader, cleaner, fileService, cfg.DownloadsDir, logger)
	infoHandler := handlers.NewInfoHandler(downloader, logger)
	healthHandler := handlers.NewHealthHandler(downloader)
	cleanupHandler := handlers.NewCleanupHandler(cleaner, cfg.SweepMaxAge, logger)

	// Setup router
	r := gin.New()

	// Apply middleware
	r.Use(middleware.Logging())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimit(cfg.DefaultRate))

	// Setup routes
	setupRoutes(r, cfg, downloadHandler, infoHandler, healthHandler, cleanupHandler)

	// Start server
	portStr := strconv.Itoa(cfg.Port)
	if serverPort := os.Getenv("SERVER_PORT"); serverPort != "" {
		portStr = serverPort
	}

	logger.Printf("cadenza web server starting on port %s", portStr)
	logger.Printf("output directory: %s", cfg.DownloadsDir)
	if err := r.Run(":" + portStr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

// setupRoutes configures all the HTTP routes. The download and info routes
// carry stricter per-route ceilings on top of the default one.
func setupRoutes(r *gin.Engine, cfg *config.Config, downloadHandler *handlers.DownloadHandler, infoHandler *handlers.InfoHandler, healthHandler *handlers.HealthHandler, cleanupHandler *handlers.CleanupHandler) {
	r.GET("/", downloadHandler.Index)
	r.POST("/", middleware.RateLimit(cfg.DownloadRate), downloadHandler.Download)
	r.POST("/info", middleware.RateLimit(cfg.InfoRate), infoHandler.TrackInfo)
	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/cleanup", cleanupHandler.Sweep)
}
