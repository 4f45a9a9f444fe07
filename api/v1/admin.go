package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/services"
)

// AdminController handles platform administration endpoints
type AdminController struct {
	userService *services.UserService
}

// NewAdminController creates a new admin controller
func NewAdminController(userService *services.UserService) *AdminController {
	return &AdminController{userService: userService}
}

// RegisterRoutes registers admin routes. The group must already require the admin role.
func (a *AdminController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", a.ListUsers)
	router.PUT("/users/:id/role", a.UpdateUserRole)
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Param search query string false "Search term for name/email"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} dto.UserListResponse
// @Router /admin/users [get]
func (a *AdminController) ListUsers(c *gin.Context) {
	var filter dto.UserFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondInvalid(c, err)
		return
	}

	response, err := a.userService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, response)
}

// UpdateUserRole changes a user's platform role
func (a *AdminController) UpdateUserRole(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	user, err := a.userService.UpdateRole(c.Request.Context(), actor, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user)
}
