package main

import (
	"fmt"
	"log"
	"os"

	"growth-plot/internal/api/handlers"
	"growth-plot/internal/api/middleware"
	"growth-plot/internal/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfgPath := os.Getenv("CONFIG_FILE")
	var cfg *config.Config
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("load config %s: %v", cfgPath, err)
		}
		cfg = loaded
		log.Printf("Loaded config from %s (%d control series)", cfgPath, len(cfg.Controls))
	} else {
		cfg = config.Default()
		log.Printf("CONFIG_FILE not set, using defaults")
	}

	// The spreadsheet path can come from the environment or the config file.
	dataPath := os.Getenv("DATA_FILE")
	if dataPath == "" {
		dataPath = cfg.Device.File
	}
	if dataPath != "" {
		if _, err := os.Stat(dataPath); err != nil {
			log.Printf("Data file %s not readable yet: %v", dataPath, err)
		} else {
			log.Printf("Serving device series from %s", dataPath)
		}
	} else {
		log.Printf("No data file configured; chart will show control series only")
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	chartHandler := handlers.NewChartHandler(cfg, dataPath)
	seriesHandler := handlers.NewSeriesHandler(cfg, dataPath)
	normalizeHandler := handlers.NewNormalizeHandler(cfg.Chart.MaxHour)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/chart", chartHandler.RenderChart)
		api.GET("/stats", chartHandler.GetStats)
		api.GET("/series", seriesHandler.ListSeries)
		api.POST("/normalize", normalizeHandler.Normalize)
	}

	// Serve static files from web/dist (if it exists)
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./web/dist"
	}

	if _, err := os.Stat(staticDir); err == nil {
		router.Static("/assets", staticDir+"/assets")
		router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

		// Serve index.html for all non-API routes (SPA routing)
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if len(path) >= 4 && path[:4] == "/api" {
				c.JSON(404, gin.H{"error": "Not found"})
			} else {
				c.File(staticDir + "/index.html")
			}
		})
		log.Printf("Serving static files from %s", staticDir)
	} else {
		log.Printf("Static directory %s not found, skipping static file serving", staticDir)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
