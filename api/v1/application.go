package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/services"
)

// ApplicationController handles funding application endpoints
type ApplicationController struct {
	applicationService *services.ApplicationService
}

// NewApplicationController creates a new application controller
func NewApplicationController(applicationService *services.ApplicationService) *ApplicationController {
	return &ApplicationController{applicationService: applicationService}
}

// RegisterRoutes registers application routes
func (a *ApplicationController) RegisterRoutes(router *gin.RouterGroup) {
	applications := router.Group("/applications")
	{
		applications.GET("/:id", a.GetApplication)
		applications.PUT("/:id/sections", a.UpdateSections)
		applications.PUT("/:id/sections/order", a.ReorderSections)
		applications.PUT("/:id/metadata", a.UpdateMetaData)
		applications.POST("/:id/finalize", a.Finalize)
		applications.POST("/:id/submit", a.Submit)
	}

	projects := router.Group("/projects")
	{
		projects.GET("/:id/applications", a.ListProjectApplications)
	}
}

// ListProjectApplications lists a project's applications, optionally filtered by ?status=
func (a *ApplicationController) ListProjectApplications(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	apps, err := a.applicationService.ListByProject(c.Request.Context(), actor, c.Param("id"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, apps)
}

// GetApplication retrieves a specific application
func (a *ApplicationController) GetApplication(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	app, err := a.applicationService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}

// UpdateSections replaces the section list
func (a *ApplicationController) UpdateSections(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	app, err := a.applicationService.UpdateSections(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}

// ReorderSections sets the section order from a list of ids
func (a *ApplicationController) ReorderSections(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.ReorderSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	app, err := a.applicationService.ReorderSections(c.Request.Context(), actor, c.Param("id"), req.SectionIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}

// UpdateMetaData replaces the funding details
func (a *ApplicationController) UpdateMetaData(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var meta models.ApplicationMetaData
	if err := c.ShouldBindJSON(&meta); err != nil {
		respondInvalid(c, err)
		return
	}

	app, err := a.applicationService.UpdateMetaData(c.Request.Context(), actor, c.Param("id"), meta)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}

// Finalize freezes a reviewed application
func (a *ApplicationController) Finalize(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	app, err := a.applicationService.Finalize(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}

// Submit hands a finalized application in
func (a *ApplicationController) Submit(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	app, err := a.applicationService.Submit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, app)
}
