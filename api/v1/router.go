package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/ai"
	"github.com/grantdesk-api/middleware"
	"github.com/grantdesk-api/services"
)

// Dependencies are the services the v1 routes are served from
type Dependencies struct {
	Auth         *services.AuthService
	Users        *services.UserService
	Projects     *services.ProjectService
	Ideas        *services.IdeaService
	Applications *services.ApplicationService
	AIServices   ai.Services
	DB           Pinger
	CookieSecure bool
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	// Health check endpoint
	router.GET("/health", HealthCheck(deps.DB))

	requireAuth := middleware.AuthMiddleware(deps.Auth)

	// Auth endpoints
	NewAuthController(deps.Auth, deps.CookieSecure).RegisterRoutes(router, requireAuth)

	// Everything below is protected by AuthMiddleware
	authRouter := router.Group("")
	authRouter.Use(requireAuth)
	NewProjectController(deps.Projects).RegisterRoutes(authRouter)
	NewIdeaController(deps.Ideas).RegisterRoutes(authRouter)
	NewApplicationController(deps.Applications).RegisterRoutes(authRouter)
	NewAgentController(deps.Ideas, deps.Applications, deps.AIServices).RegisterRoutes(authRouter)

	// Admin endpoints - protected by AdminMiddleware
	adminGroup := authRouter.Group("/admin")
	adminGroup.Use(middleware.AdminMiddleware(deps.Users))
	NewAdminController(deps.Users).RegisterRoutes(adminGroup)
}
