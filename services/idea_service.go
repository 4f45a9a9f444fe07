package services

import (
	"context"
	"fmt"
	"time"

	"k8s.io/klog/v2"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/ai"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/utils"
)

const ideaTitlePrefixRunes = 50

// IdeaService drives ideas through draft, pending, reviewed and the final decision
type IdeaService struct {
	ideas     IdeaStore
	projects  ProjectStore
	completer ai.Completer
	scores    ScorePolicy
	lifecycle Lifecycle
	now       func() time.Time
}

// NewIdeaService creates a new idea service instance
func NewIdeaService(ideas IdeaStore, projects ProjectStore, completer ai.Completer, scores ScorePolicy, lifecycle Lifecycle) *IdeaService {
	return &IdeaService{
		ideas:     ideas,
		projects:  projects,
		completer: completer,
		scores:    scores,
		lifecycle: lifecycle,
		now:       time.Now,
	}
}

// loadIdea loads an idea and its project, then checks capability on the project
func (s *IdeaService) loadIdea(ctx context.Context, actor access.Actor, ideaID string, capability access.Capability) (*models.Idea, *models.Project, error) {
	idea, err := s.ideas.FindByID(ctx, ideaID)
	if err != nil {
		return nil, nil, err
	}
	project, err := loadAuthorized(ctx, s.projects, actor, idea.ProjectID, capability)
	if err != nil {
		return nil, nil, err
	}
	return idea, project, nil
}

// Create stores a hand-written idea in draft. Requires edit.
func (s *IdeaService) Create(ctx context.Context, actor access.Actor, projectID string, req dto.CreateIdeaRequest) (*models.Idea, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, projectID, access.CapEdit)
	if err != nil {
		return nil, err
	}

	idea := &models.Idea{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   project.ID,
		CreatorID:   actor.UserID,
		Status:      models.IdeaStatusDraft,
		Tags:        req.Tags,
		Strengths:   req.Strengths,
		Weaknesses:  req.Weaknesses,
		Suggestions: req.Suggestions,
	}
	if err := s.ideas.Create(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

// Ideate asks the ideation agent for an idea and stores it as an AI draft. Requires view.
func (s *IdeaService) Ideate(ctx context.Context, actor access.Actor, req dto.IdeateRequest) (*dto.IdeaAgentResponse, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, req.ProjectID, access.CapView)
	if err != nil {
		return nil, err
	}

	domain := req.Domain
	if domain == "" {
		domain = project.Domain
	}
	response, err := s.completer.Complete(ctx, models.AgentIdeanikkari, req.Message, ai.ContextFields{
		Domain:         domain,
		Interests:      req.Interests,
		ProjectDetails: fmt.Sprintf("Project name: %s\nDescription: %s", project.Name, project.Description),
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	idea := &models.Idea{
		Title:         "Idea: " + utils.Truncate(req.Message, ideaTitlePrefixRunes) + "...",
		Description:   response,
		ProjectID:     project.ID,
		CreatorID:     actor.UserID,
		Status:        models.IdeaStatusDraft,
		IsAIGenerated: true,
	}
	idea.AppendConversation(models.NewExchange(models.AgentIdeanikkari, req.Message, response, now)...)

	if err := s.ideas.Create(ctx, idea); err != nil {
		return nil, err
	}

	klog.InfoS("Idea generated", "idea", idea.ID, "project", project.ID, "by", actor.UserID)
	return &dto.IdeaAgentResponse{Response: response, Idea: idea}, nil
}

// Get returns one idea. Requires view.
func (s *IdeaService) Get(ctx context.Context, actor access.Actor, ideaID string) (*models.Idea, error) {
	idea, _, err := s.loadIdea(ctx, actor, ideaID, access.CapView)
	return idea, err
}

// ListByProject returns the project's ideas, optionally by status. Requires view.
func (s *IdeaService) ListByProject(ctx context.Context, actor access.Actor, projectID, rawStatus string) ([]models.Idea, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, projectID, access.CapView)
	if err != nil {
		return nil, err
	}

	var status models.IdeaStatus
	if rawStatus != "" {
		if status, err = models.ParseIdeaStatus(rawStatus); err != nil {
			return nil, apperr.InvalidArgument("%v", err)
		}
	}
	return s.ideas.ListByProject(ctx, project.ID, status)
}

// Update edits idea content. Requires edit. The project reference never changes.
func (s *IdeaService) Update(ctx context.Context, actor access.Actor, ideaID string, req dto.UpdateIdeaRequest) (*models.Idea, error) {
	idea, _, err := s.loadIdea(ctx, actor, ideaID, access.CapEdit)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		idea.Title = *req.Title
	}
	if req.Description != nil {
		idea.Description = *req.Description
	}
	if req.Tags != nil {
		idea.Tags = *req.Tags
	}
	if req.Strengths != nil {
		idea.Strengths = *req.Strengths
	}
	if req.Weaknesses != nil {
		idea.Weaknesses = *req.Weaknesses
	}
	if req.Suggestions != nil {
		idea.Suggestions = *req.Suggestions
	}

	if err := s.ideas.Update(ctx, idea); err != nil {
		return nil, err
	}
	return idea, nil
}

// Delete removes an idea. Requires edit.
func (s *IdeaService) Delete(ctx context.Context, actor access.Actor, ideaID string) error {
	idea, _, err := s.loadIdea(ctx, actor, ideaID, access.CapEdit)
	if err != nil {
		return err
	}
	return s.ideas.Delete(ctx, idea.ID)
}

// Submit moves a draft idea to pending. Requires edit.
func (s *IdeaService) Submit(ctx context.Context, actor access.Actor, ideaID string) (*models.Idea, error) {
	idea, _, err := s.loadIdea(ctx, actor, ideaID, access.CapEdit)
	if err != nil {
		return nil, err
	}
	if err := s.moveIdea(ctx, idea, models.IdeaStatusPending); err != nil {
		return nil, err
	}
	return idea, nil
}

// Evaluate has the evaluator agent review an idea. The idea becomes reviewed
// and gains one review and two conversation entries, user first. Requires view.
func (s *IdeaService) Evaluate(ctx context.Context, actor access.Actor, req dto.EvaluateIdeaRequest) (*dto.IdeaAgentResponse, error) {
	idea, project, err := s.loadIdea(ctx, actor, req.IdeaID, access.CapView)
	if err != nil {
		return nil, err
	}
	if err := s.lifecycle.requireIdea(idea.Status, models.IdeaStatusReviewed); err != nil {
		return nil, err
	}

	response, err := s.completer.Complete(ctx, models.AgentArvioija, req.Message, ai.ContextFields{
		IdeaDetails: fmt.Sprintf("Idea title: %s\nDescription: %s", idea.Title, idea.Description),
		ProjectDetails: fmt.Sprintf("Project name: %s\nDescription: %s\nDomain: %s",
			project.Name, project.Description, project.Domain),
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	idea.AppendConversation(models.NewExchange(models.AgentArvioija, req.Message, response, now)...)
	idea.AppendReview(models.IdeaReview{
		Reviewer:  models.ReviewerAI,
		Score:     s.scores.IdeaScore(response),
		Comment:   response,
		CreatedAt: now,
	})

	if err := s.moveIdea(ctx, idea, models.IdeaStatusReviewed); err != nil {
		return nil, err
	}
	return &dto.IdeaAgentResponse{Response: response, Idea: idea}, nil
}

// Decide approves or rejects a reviewed idea. Requires admin.
func (s *IdeaService) Decide(ctx context.Context, actor access.Actor, ideaID, decision string) (*models.Idea, error) {
	idea, _, err := s.loadIdea(ctx, actor, ideaID, access.CapAdmin)
	if err != nil {
		return nil, err
	}

	to, err := models.ParseIdeaStatus(decision)
	if err != nil || (to != models.IdeaStatusApproved && to != models.IdeaStatusRejected) {
		return nil, apperr.InvalidArgument("decision must be approved or rejected")
	}

	if err := s.moveIdea(ctx, idea, to); err != nil {
		return nil, err
	}
	return idea, nil
}

// moveIdea checks the transition, saves the idea and records it
func (s *IdeaService) moveIdea(ctx context.Context, idea *models.Idea, to models.IdeaStatus) error {
	if err := s.lifecycle.requireIdea(idea.Status, to); err != nil {
		return err
	}
	from := idea.Status
	idea.Status = to
	if err := s.ideas.Update(ctx, idea); err != nil {
		idea.Status = from
		return err
	}
	countTransition("idea", string(to))
	klog.InfoS("Idea status changed", "idea", idea.ID, "from", from, "to", to)
	return nil
}
