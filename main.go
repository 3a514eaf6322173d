package main

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sirajbinsyed/menuzy/config"
	"github.com/sirajbinsyed/menuzy/routes"
	"github.com/sirajbinsyed/menuzy/seed"
)

func main() {
	settings := config.Load()
	gin.SetMode(settings.GinMode)

	// Initialize database
	config.InitDB(settings)

	// Optionally load the sample catalog through the loader
	if settings.SeedOnStart {
		if err := seed.Run(context.Background(), config.DB); err != nil {
			logrus.WithError(err).Fatal("Failed to seed catalog")
		}
	}

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Menuzy Catalog API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍽️ Welcome to the Menuzy Catalog API",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	logrus.WithField("port", settings.Port).Info("🚀 Server running")
	if err := r.Run(":" + settings.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
