package main

import (
	"log"
	"net/http"
	"os"

	"bookstore-api/auth"
	"bookstore-api/config"
	"bookstore-api/handlers"
	"bookstore-api/middleware"
	"bookstore-api/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load configuration and initialize database
	cfg := config.Load()
	config.InitDB(cfg)

	tokens := auth.NewTokenService(cfg.AccessSecret, cfg.RefreshSecret)
	handlers.Init(cfg, config.DB, tokens)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Gateway attaches identity (fail-open); the policy table makes the
	// allow/deny decision (fail-closed)
	r.Use(middleware.Authenticate(tokens))
	r.Use(middleware.Authorize(middleware.DefaultRules()))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Bookstore Order Fulfillment API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Bookstore Order Fulfillment API",
			"docs":    "/state-machine",
			"health":  "/health",
			"roles":   []string{"CUSTOMER", "ADMIN", "DELIVERY_AGENT"},
		})
	})

	// Book cover images
	r.Static("/uploads", cfg.UploadDir)

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
