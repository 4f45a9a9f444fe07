package dto

import (
	"github.com/grantdesk-api/models"
)

// CreateIdeaRequest represents a manually written idea
type CreateIdeaRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// UpdateIdeaRequest edits idea content. Nil fields are left unchanged.
type UpdateIdeaRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=200"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Strengths   *[]string `json:"strengths"`
	Weaknesses  *[]string `json:"weaknesses"`
	Suggestions *[]string `json:"suggestions"`
}

// IdeateRequest asks the ideation agent for a new idea
type IdeateRequest struct {
	ProjectID string   `json:"projectId" binding:"required"`
	Message   string   `json:"message" binding:"required"`
	Domain    string   `json:"domain"`
	Interests []string `json:"interests"`
}

// EvaluateIdeaRequest asks the evaluator agent to review an idea
type EvaluateIdeaRequest struct {
	IdeaID  string `json:"ideaId" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// IdeaDecisionRequest approves or rejects a reviewed idea
type IdeaDecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// IdeaAgentResponse carries the agent reply with the touched idea
type IdeaAgentResponse struct {
	Response string       `json:"response"`
	Idea     *models.Idea `json:"idea"`
}
