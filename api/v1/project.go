package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/services"
)

// ProjectController handles project and membership endpoints
type ProjectController struct {
	projectService *services.ProjectService
}

// NewProjectController creates a new project controller
func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// RegisterRoutes registers project routes
func (p *ProjectController) RegisterRoutes(router *gin.RouterGroup) {
	projectGroup := router.Group("/projects")
	{
		projectGroup.GET("", p.ListProjects)
		projectGroup.POST("", p.CreateProject)
		projectGroup.GET("/:id", p.GetProject)
		projectGroup.PUT("/:id", p.UpdateProject)
		projectGroup.DELETE("/:id", p.DeleteProject)

		projectGroup.POST("/:id/members", p.AddMember)
		projectGroup.PUT("/:id/members/:userId", p.UpdateMemberRole)
		projectGroup.DELETE("/:id/members/:userId", p.RemoveMember)
	}
}

// ListProjects godoc
// @Summary List projects with pagination and filtering
// @Description Get the projects the user owns or is a member of
// @Tags projects
// @Accept json
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Param search query string false "Search term for project name/description"
// @Param status query string false "Project status"
// @Param sortBy query string false "Field to sort by (created_at, updated_at, name, status)"
// @Param sortOrder query string false "Sort order (asc or desc)"
// @Success 200 {object} dto.ProjectListResponse
// @Router /projects [get]
func (p *ProjectController) ListProjects(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var filter dto.ProjectFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondInvalid(c, err)
		return
	}

	response, err := p.projectService.ListProjects(c.Request.Context(), actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, response)
}

// GetProject godoc
// @Summary Get a project by ID
// @Description Get a project with its owner and members
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project
// @Router /projects/{id} [get]
func (p *ProjectController) GetProject(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	project, err := p.projectService.GetProject(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, project)
}

// CreateProject godoc
// @Summary Create a new project
// @Description Create a new project owned by the authenticated user
// @Tags projects
// @Accept json
// @Produce json
// @Param project body dto.CreateProjectRequest true "Project Data"
// @Success 201 {object} models.Project
// @Router /projects [post]
func (p *ProjectController) CreateProject(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	project, err := p.projectService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body dto.UpdateProjectRequest true "Fields to change"
// @Success 200 {object} models.Project
// @Router /projects/{id} [put]
func (p *ProjectController) UpdateProject(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	project, err := p.projectService.UpdateProject(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Only the owner may delete a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 200
// @Router /projects/{id} [delete]
func (p *ProjectController) DeleteProject(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := p.projectService.DeleteProject(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Project deleted successfully",
	})
}

// AddMember adds an existing user to the project by email
func (p *ProjectController) AddMember(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	project, err := p.projectService.AddMember(c.Request.Context(), actor, c.Param("id"), req.Email, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, project)
}

// UpdateMemberRole changes a member's role
func (p *ProjectController) UpdateMemberRole(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	project, err := p.projectService.UpdateMemberRole(c.Request.Context(), actor, c.Param("id"), c.Param("userId"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, project)
}

// RemoveMember removes a member; members may remove themselves
func (p *ProjectController) RemoveMember(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	project, err := p.projectService.RemoveMember(c.Request.Context(), actor, c.Param("id"), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, project)
}
