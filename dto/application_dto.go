package dto

import (
	"github.com/grantdesk-api/models"
)

// DraftApplicationRequest asks the application agent to draft from an idea
type DraftApplicationRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
	IdeaID    string `json:"ideaId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// ReviewApplicationRequest asks the funder agent to review an application
type ReviewApplicationRequest struct {
	ApplicationID string `json:"applicationId" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

// SectionInput is one section in a full section list replacement
type SectionInput struct {
	ID      string `json:"id"`
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Order   *int   `json:"order" binding:"required"`
}

// UpdateSectionsRequest replaces the section list
type UpdateSectionsRequest struct {
	Sections []SectionInput `json:"sections" binding:"required,dive"`
}

// ReorderSectionsRequest lists every section id in the desired order
type ReorderSectionsRequest struct {
	SectionIDs []string `json:"sectionIds" binding:"required"`
}

// ApplicationAgentResponse carries the agent reply with the touched application
type ApplicationAgentResponse struct {
	Response    string              `json:"response"`
	Application *models.Application `json:"application"`
}
