package routes

import (
	"net/http"

	"iblaze_backend/internal/handlers"
	"iblaze_backend/internal/logger"
	"iblaze_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

const APIVersion = "1.0.0"

// RegisterRoutes mounts the banner, every /api route and the 404 fallback.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	limiter middleware.Limiter,
) {
	ginRouter.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "iBLAZE API is running",
			"version": APIVersion,
		})
	})

	api := ginRouter.Group("/api", middleware.RateLimitMiddleware(limiter))
	{
		appHandlers.HealthHandler.RegisterRoutes(api)
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.IdeaHandler.RegisterRoutes(api)
		appHandlers.JobHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}

	ginRouter.NoRoute(middleware.NotFoundHandler())
	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
