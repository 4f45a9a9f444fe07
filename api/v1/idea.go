package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/services"
)

// IdeaController handles idea endpoints
type IdeaController struct {
	ideaService *services.IdeaService
}

// NewIdeaController creates a new idea controller
func NewIdeaController(ideaService *services.IdeaService) *IdeaController {
	return &IdeaController{ideaService: ideaService}
}

// RegisterRoutes registers idea routes
func (i *IdeaController) RegisterRoutes(router *gin.RouterGroup) {
	ideas := router.Group("/ideas")
	{
		ideas.GET("/:id", i.GetIdea)
		ideas.PUT("/:id", i.UpdateIdea)
		ideas.DELETE("/:id", i.DeleteIdea)
		ideas.POST("/:id/submit", i.SubmitIdea)
		ideas.POST("/:id/decision", i.DecideIdea)
	}

	// Also add project-specific idea routes
	projects := router.Group("/projects")
	{
		projects.GET("/:id/ideas", i.ListProjectIdeas)
		projects.POST("/:id/ideas", i.CreateIdea)
	}
}

// ListProjectIdeas lists a project's ideas, optionally filtered by ?status=
func (i *IdeaController) ListProjectIdeas(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	ideas, err := i.ideaService.ListByProject(c.Request.Context(), actor, c.Param("id"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, ideas)
}

// CreateIdea stores a manually written idea
func (i *IdeaController) CreateIdea(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	idea, err := i.ideaService.Create(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, idea)
}

// GetIdea retrieves a specific idea
func (i *IdeaController) GetIdea(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	idea, err := i.ideaService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea)
}

// UpdateIdea edits idea content
func (i *IdeaController) UpdateIdea(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	idea, err := i.ideaService.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea)
}

// DeleteIdea removes an idea
func (i *IdeaController) DeleteIdea(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	if err := i.ideaService.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Idea deleted successfully",
	})
}

// SubmitIdea moves a draft idea to pending
func (i *IdeaController) SubmitIdea(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	idea, err := i.ideaService.Submit(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea)
}

// DecideIdea approves or rejects a reviewed idea
func (i *IdeaController) DecideIdea(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.IdeaDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	idea, err := i.ideaService.Decide(c.Request.Context(), actor, c.Param("id"), req.Decision)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, idea)
}
