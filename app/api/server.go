package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, version string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for the mobile client
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, version)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, version string) {
	// Session endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/google", handler.SignIn)
		auth.POST("/signout", handler.SignOut)
		auth.GET("/session", handler.GetSession)
	}

	// Reader endpoints
	readers := r.Group("/readers")
	{
		readers.POST("", handler.CreateReader)
		readers.GET("/:id", handler.GetReaderState)
		readers.POST("/:id/tema", handler.SelectTopic)
		readers.POST("/:id/favorito", handler.ToggleFavorite)
		readers.POST("/:id/menu", handler.SetMenu)
		readers.POST("/:id/reset", handler.ResetReader)
		readers.DELETE("/:id", handler.DeleteReader)
	}

	// Health and status endpoints
	r.GET("/health", handler.HealthCheck)
	r.GET("/stats", handler.GetStats)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Profeta Diário",
			"version":     version,
			"description": "News reader backend: topic search, favorites, and session sync",
			"endpoints": map[string]string{
				"sign_in":  "/auth/google (POST)",
				"sign_out": "/auth/signout (POST)",
				"session":  "/auth/session",
				"readers":  "/readers (POST), /readers/<id>",
				"health":   "/health",
				"stats":    "/stats",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
