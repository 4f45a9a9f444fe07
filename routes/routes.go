package routes

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/grantdesk-api/api/v1"
	"github.com/grantdesk-api/metrics"
)

// SetupRoutes mounts the public endpoints and the versioned API on router
func SetupRoutes(router *gin.Engine, deps v1.Dependencies) {
	// Public routes
	router.GET("/", v1.HealthCheck(deps.DB))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API routes
	v1.RegisterRoutes(router.Group("/api/v1"), deps)
}
