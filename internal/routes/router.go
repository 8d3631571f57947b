package routes

import (
	"context"

	"datacenter-inventory/internal/config"
	"datacenter-inventory/internal/delivery/http/handler"
	"datacenter-inventory/internal/logger"
	"datacenter-inventory/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes builds the engine. ctx bounds background work started by
// middleware.
func SetupRoutes(ctx context.Context, cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware(deps.Recorder))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(ctx, cfg.RateLimit))

	systemHandler := handler.NewSystemHandler(deps.Hub, deps.Recorder)
	systemHandler.RegisterRoutes(router)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	rackHandler := handler.NewRackHandler(deps.RackService)
	inventoryHandler := handler.NewInventoryHandler(deps.InventoryService)

	v1 := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg), middleware.AnyRole())
		{
			authHandler.RegisterProtectedRoutes(protected)
			rackHandler.RegisterRoutes(protected)
			inventoryHandler.RegisterRoutes(protected)
			systemHandler.RegisterStreamRoutes(protected)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				rackHandler.RegisterAdminRoutes(admin)
				inventoryHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
