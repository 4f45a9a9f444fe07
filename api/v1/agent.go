package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grantdesk-api/ai"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/services"
)

// AgentController exposes the four assistant agents
type AgentController struct {
	ideaService        *services.IdeaService
	applicationService *services.ApplicationService
	available          ai.Services
}

// NewAgentController creates a new agent controller
func NewAgentController(ideaService *services.IdeaService, applicationService *services.ApplicationService, available ai.Services) *AgentController {
	return &AgentController{
		ideaService:        ideaService,
		applicationService: applicationService,
		available:          available,
	}
}

// RegisterRoutes registers agent routes
func (a *AgentController) RegisterRoutes(router *gin.RouterGroup) {
	agents := router.Group("/agents")
	{
		agents.POST("/ideanikkari", a.Ideate)
		agents.POST("/arvioija", a.EvaluateIdea)
		agents.POST("/hakija", a.DraftApplication)
		agents.POST("/rahoittaja", a.ReviewApplication)
		agents.GET("/services", a.AvailableServices)
	}
}

// Ideate godoc
// @Summary Generate an idea with the ideation agent
// @Tags agents
// @Accept json
// @Produce json
// @Param request body dto.IdeateRequest true "Prompt and project"
// @Success 200 {object} dto.IdeaAgentResponse
// @Router /agents/ideanikkari [post]
func (a *AgentController) Ideate(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.IdeateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	response, err := a.ideaService.Ideate(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, response)
}

// EvaluateIdea godoc
// @Summary Review an idea with the evaluator agent
// @Tags agents
// @Accept json
// @Produce json
// @Param request body dto.EvaluateIdeaRequest true "Prompt and idea"
// @Success 200 {object} dto.IdeaAgentResponse
// @Router /agents/arvioija [post]
func (a *AgentController) EvaluateIdea(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.EvaluateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	response, err := a.ideaService.Evaluate(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, response)
}

// DraftApplication has the application agent draft from an idea
func (a *AgentController) DraftApplication(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.DraftApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	response, err := a.applicationService.CreateFromIdea(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, response)
}

// ReviewApplication has the funder agent review an application
func (a *AgentController) ReviewApplication(c *gin.Context) {
	actor, ok := actorFrom(c)
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	response, err := a.applicationService.Review(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, response)
}

// AvailableServices reports which AI providers are configured
func (a *AgentController) AvailableServices(c *gin.Context) {
	respondData(c, http.StatusOK, a.available)
}
