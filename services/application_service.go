package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/datatypes"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/ai"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/config"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/utils"
)

const (
	firstSectionTitle = "Project description"
	maxTitleRunes     = 200
)

// ApplicationService drives applications from draft to submission
type ApplicationService struct {
	apps      ApplicationStore
	ideas     IdeaStore
	projects  ProjectStore
	completer ai.Completer
	scores    ScorePolicy
	lifecycle Lifecycle
	review    config.ReviewDefaults
	now       func() time.Time
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	apps ApplicationStore,
	ideas IdeaStore,
	projects ProjectStore,
	completer ai.Completer,
	scores ScorePolicy,
	lifecycle Lifecycle,
	review config.ReviewDefaults,
) *ApplicationService {
	return &ApplicationService{
		apps:      apps,
		ideas:     ideas,
		projects:  projects,
		completer: completer,
		scores:    scores,
		lifecycle: lifecycle,
		review:    review,
		now:       time.Now,
	}
}

func (s *ApplicationService) loadApplication(ctx context.Context, actor access.Actor, appID string, capability access.Capability) (*models.Application, *models.Project, error) {
	app, err := s.apps.FindByID(ctx, appID)
	if err != nil {
		return nil, nil, err
	}
	project, err := loadAuthorized(ctx, s.projects, actor, app.ProjectID, capability)
	if err != nil {
		return nil, nil, err
	}
	return app, project, nil
}

// requireEditable rejects content changes once an application is finalized
func requireEditable(app *models.Application) error {
	if app.Status != models.ApplicationStatusDraft && app.Status != models.ApplicationStatusReview {
		return apperr.Conflict("application is %s and can no longer be edited", app.Status)
	}
	return nil
}

// CreateFromIdea has the application agent draft an application from an idea.
// Requires edit on the project; the idea must belong to it.
func (s *ApplicationService) CreateFromIdea(ctx context.Context, actor access.Actor, req dto.DraftApplicationRequest) (*dto.ApplicationAgentResponse, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, req.ProjectID, access.CapEdit)
	if err != nil {
		return nil, err
	}

	idea, err := s.ideas.FindByID(ctx, req.IdeaID)
	if err != nil {
		return nil, err
	}
	if idea.ProjectID != project.ID {
		return nil, apperr.InvalidArgument("idea does not belong to this project")
	}

	response, err := s.completer.Complete(ctx, models.AgentHakija, req.Message, ai.ContextFields{
		IdeaDetails: fmt.Sprintf("Idea title: %s\nDescription: %s", idea.Title, idea.Description),
		ProjectDetails: fmt.Sprintf("Project name: %s\nDescription: %s\nDomain: %s",
			project.Name, project.Description, project.Domain),
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	app := &models.Application{
		Title:      utils.Truncate("Application: "+idea.Title, maxTitleRunes),
		ProjectID:  project.ID,
		BaseIdeaID: &idea.ID,
		OwnerID:    actor.UserID,
		Status:     models.ApplicationStatusDraft,
		Sections: []models.Section{
			{Title: firstSectionTitle, Content: response, Order: 0},
		},
	}
	app.AppendConversation(models.NewExchange(models.AgentHakija, req.Message, response, now)...)

	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	klog.InfoS("Application drafted", "application", app.ID, "idea", idea.ID, "by", actor.UserID)
	return &dto.ApplicationAgentResponse{Response: response, Application: app}, nil
}

// Get returns one application. Requires view.
func (s *ApplicationService) Get(ctx context.Context, actor access.Actor, appID string) (*models.Application, error) {
	app, _, err := s.loadApplication(ctx, actor, appID, access.CapView)
	return app, err
}

// ListByProject returns the project's applications, optionally by status. Requires view.
func (s *ApplicationService) ListByProject(ctx context.Context, actor access.Actor, projectID, rawStatus string) ([]models.Application, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, projectID, access.CapView)
	if err != nil {
		return nil, err
	}

	var status models.ApplicationStatus
	if rawStatus != "" {
		if status, err = models.ParseApplicationStatus(rawStatus); err != nil {
			return nil, apperr.InvalidArgument("%v", err)
		}
	}
	return s.apps.ListByProject(ctx, project.ID, status)
}

// Review has the funder agent assess the application. Sections are presented
// by their order field. Requires view.
func (s *ApplicationService) Review(ctx context.Context, actor access.Actor, req dto.ReviewApplicationRequest) (*dto.ApplicationAgentResponse, error) {
	app, project, err := s.loadApplication(ctx, actor, req.ApplicationID, access.CapView)
	if err != nil {
		return nil, err
	}
	if err := s.lifecycle.requireApplication(app.Status, models.ApplicationStatusReview); err != nil {
		return nil, err
	}

	var content strings.Builder
	for _, section := range app.OrderedSections() {
		fmt.Fprintf(&content, "## %s\n%s\n\n", section.Title, section.Content)
	}

	response, err := s.completer.Complete(ctx, models.AgentRahoittaja, req.Message, ai.ContextFields{
		ApplicationDetails: fmt.Sprintf("Application title: %s\n\n%s", app.Title, content.String()),
		ProjectDetails: fmt.Sprintf("Project name: %s\nDescription: %s\nDomain: %s",
			project.Name, project.Description, project.Domain),
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	app.AppendConversation(models.NewExchange(models.AgentRahoittaja, req.Message, response, now)...)
	app.AppendReview(models.ApplicationReview{
		Reviewer:      models.ReviewerAI,
		OverallScore:  s.scores.ApplicationScore(response),
		SectionScores: []models.SectionScore{},
		Strengths:     slices.Clone(s.review.Strengths),
		Weaknesses:    slices.Clone(s.review.Weaknesses),
		Improvements:  slices.Clone(s.review.Improvements),
		CreatedAt:     now,
	})

	if err := s.moveApplication(ctx, app, models.ApplicationStatusReview); err != nil {
		return nil, err
	}
	return &dto.ApplicationAgentResponse{Response: response, Application: app}, nil
}

// UpdateSections replaces the section list. Orders must be unique and not
// negative, and a given section id may appear once. Requires edit while the
// application is draft or in review.
func (s *ApplicationService) UpdateSections(ctx context.Context, actor access.Actor, appID string, req dto.UpdateSectionsRequest) (*models.Application, error) {
	app, _, err := s.loadApplication(ctx, actor, appID, access.CapEdit)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(app); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(req.Sections))
	seenIDs := make(map[string]bool, len(req.Sections))
	sections := make([]models.Section, 0, len(req.Sections))
	for _, in := range req.Sections {
		if in.Order == nil || *in.Order < 0 {
			return nil, apperr.InvalidArgument("section %q needs an order of 0 or more", in.Title)
		}
		if seen[*in.Order] {
			return nil, apperr.InvalidArgument("duplicate section order %d", *in.Order)
		}
		seen[*in.Order] = true
		if in.ID != "" {
			if seenIDs[in.ID] {
				return nil, apperr.InvalidArgument("duplicate section id %q", in.ID)
			}
			seenIDs[in.ID] = true
		}
		sections = append(sections, models.Section{
			ID:      in.ID,
			Title:   in.Title,
			Content: in.Content,
			Order:   *in.Order,
		})
	}

	app.Sections = sections
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// ReorderSections rewrites each section's order to its index in sectionIDs,
// which must name every section exactly once. Requires edit.
func (s *ApplicationService) ReorderSections(ctx context.Context, actor access.Actor, appID string, sectionIDs []string) (*models.Application, error) {
	app, _, err := s.loadApplication(ctx, actor, appID, access.CapEdit)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(app); err != nil {
		return nil, err
	}

	if len(sectionIDs) != len(app.Sections) || len(lo.Uniq(sectionIDs)) != len(sectionIDs) {
		return nil, apperr.InvalidArgument("section ids must list every section exactly once")
	}
	existing := lo.SliceToMap([]models.Section(app.Sections), func(section models.Section) (string, bool) {
		return section.ID, true
	})
	if len(existing) != len(app.Sections) {
		return nil, apperr.Conflict("application has sections sharing an id")
	}
	position := make(map[string]int, len(sectionIDs))
	for i, id := range sectionIDs {
		if !existing[id] {
			return nil, apperr.InvalidArgument("unknown section %q", id)
		}
		position[id] = i
	}
	for i := range app.Sections {
		app.Sections[i].Order = position[app.Sections[i].ID]
	}

	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateMetaData replaces the funding details. Requires edit.
func (s *ApplicationService) UpdateMetaData(ctx context.Context, actor access.Actor, appID string, meta models.ApplicationMetaData) (*models.Application, error) {
	app, _, err := s.loadApplication(ctx, actor, appID, access.CapEdit)
	if err != nil {
		return nil, err
	}
	if err := requireEditable(app); err != nil {
		return nil, err
	}

	if meta.FundingAmount != nil && *meta.FundingAmount < 0 {
		return nil, apperr.InvalidArgument("funding amount cannot be negative")
	}
	if meta.StartDate != nil && meta.EndDate != nil && meta.EndDate.Before(*meta.StartDate) {
		return nil, apperr.InvalidArgument("end date is before start date")
	}

	app.MetaData = datatypes.NewJSONType(meta)
	if err := s.apps.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Finalize freezes a reviewed application and records a version. Requires edit.
func (s *ApplicationService) Finalize(ctx context.Context, actor access.Actor, appID string) (*models.Application, error) {
	app, _, err := s.loadApplication(ctx, actor, appID, access.CapEdit)
	if err != nil {
		return nil, err
	}
	if err := s.snapshotAndMove(ctx, actor, app, models.ApplicationStatusFinalized); err != nil {
		return nil, err
	}
	return app, nil
}

// Submit hands a finalized application in and records a version. Requires admin.
func (s *ApplicationService) Submit(ctx context.Context, actor access.Actor, appID string) (*models.Application, error) {
	app, _, err := s.loadApplication(ctx, actor, appID, access.CapAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.snapshotAndMove(ctx, actor, app, models.ApplicationStatusSubmitted); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) snapshotAndMove(ctx context.Context, actor access.Actor, app *models.Application, to models.ApplicationStatus) error {
	if err := s.lifecycle.requireApplication(app.Status, to); err != nil {
		return err
	}
	from := app.Status
	app.Status = to
	app.Snapshot(actor.UserID, s.now())
	if err := s.apps.Update(ctx, app); err != nil {
		app.Status = from
		app.Versions = app.Versions[:len(app.Versions)-1]
		return err
	}
	countTransition("application", string(to))
	klog.InfoS("Application status changed", "application", app.ID, "from", from, "to", to, "version", len(app.Versions))
	return nil
}

// moveApplication checks the transition, saves and records it
func (s *ApplicationService) moveApplication(ctx context.Context, app *models.Application, to models.ApplicationStatus) error {
	if err := s.lifecycle.requireApplication(app.Status, to); err != nil {
		return err
	}
	from := app.Status
	app.Status = to
	if err := s.apps.Update(ctx, app); err != nil {
		app.Status = from
		return err
	}
	countTransition("application", string(to))
	klog.InfoS("Application status changed", "application", app.ID, "from", from, "to", to)
	return nil
}
