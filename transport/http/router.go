package http

import (
	"github.com/gin-gonic/gin"
	"github.com/layer-3/keyring/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(manager *service.Manager) *gin.Engine {
	router := gin.Default()

	// Create handlers
	handlers := NewAuthHandlers(manager)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/refresh", handlers.Refresh)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/credential", handlers.Credential)
		auth.GET("/status", handlers.Status)
		auth.GET("/status/stream", handlers.StatusStream)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(RequireAuthenticated(manager))
	{
		api.GET("/token", handlers.Token)
	}

	return router
}
