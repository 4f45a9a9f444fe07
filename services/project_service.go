package services

import (
	"context"
	"errors"

	"k8s.io/klog/v2"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/repositories"
	"github.com/grantdesk-api/utils"
)

// ProjectService handles business logic for projects and their members
type ProjectService struct {
	projects ProjectStore
	users    UserStore
}

// NewProjectService creates a new project service instance
func NewProjectService(projects ProjectStore, users UserStore) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
	}
}

// loadAuthorized loads a project and checks capability. A missing project is
// reported before any access decision.
func loadAuthorized(ctx context.Context, projects ProjectStore, actor access.Actor, projectID string, capability access.Capability) (*models.Project, error) {
	project, err := projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := access.Require(actor, project, capability); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves the projects the actor owns or is a member of, with
// pagination, filtering and sorting
func (s *ProjectService) ListProjects(ctx context.Context, actor access.Actor, filter dto.ProjectFilter) (dto.ProjectListResponse, error) {
	var response dto.ProjectListResponse

	page := repositories.Page{Page: filter.Page, PageSize: filter.PageSize}.Normalize()

	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}

	// Validate sort order
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		filter.SortOrder = "desc"
	}

	// Valid sort columns (whitelist approach for security)
	validSortColumns := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"name":       true,
		"status":     true,
	}
	if !validSortColumns[filter.SortBy] {
		filter.SortBy = "created_at"
	}

	var status models.ProjectStatus
	if filter.Status != "" {
		parsed, err := models.ParseProjectStatus(filter.Status)
		if err != nil {
			return response, apperr.InvalidArgument("%v", err)
		}
		status = parsed
	}

	projects, totalCount, err := s.projects.FindForUser(ctx, actor.UserID, repositories.ProjectFilter{
		Page:      page,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
		Search:    filter.Search,
		Status:    status,
	})
	if err != nil {
		return response, err
	}

	response = dto.ProjectListResponse{
		Projects:   projects,
		TotalCount: totalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: utils.TotalPages(totalCount, page.PageSize),
	}
	return response, nil
}

// GetProject retrieves a project with owner and members. Requires view.
func (s *ProjectService) GetProject(ctx context.Context, actor access.Actor, projectID string) (*models.Project, error) {
	return loadAuthorized(ctx, s.projects, actor, projectID, access.CapView)
}

// CreateProject creates a project owned by the actor
func (s *ProjectService) CreateProject(ctx context.Context, actor access.Actor, req dto.CreateProjectRequest) (*models.Project, error) {
	if actor.UserID == "" {
		return nil, apperr.Unauthorized("not authenticated")
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Domain:      req.Domain,
		Status:      models.ProjectStatusDraft,
		OwnerID:     actor.UserID,
		Tags:        req.Tags,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	klog.InfoS("Project created", "project", project.ID, "owner", actor.UserID)
	return s.projects.FindByID(ctx, project.ID)
}

// UpdateProject updates project fields. Requires edit; the owner never changes.
func (s *ProjectService) UpdateProject(ctx context.Context, actor access.Actor, projectID string, req dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, projectID, access.CapEdit)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status, err := models.ParseProjectStatus(*req.Status)
		if err != nil {
			return nil, apperr.InvalidArgument("%v", err)
		}
		project.Status = status
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Domain != nil {
		project.Domain = *req.Domain
	}
	if req.Tags != nil {
		project.Tags = *req.Tags
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project. Only the owner may do this.
func (s *ProjectService) DeleteProject(ctx context.Context, actor access.Actor, projectID string) error {
	if _, err := loadAuthorized(ctx, s.projects, actor, projectID, access.CapDelete); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	klog.InfoS("Project deleted", "project", projectID, "by", actor.UserID)
	return nil
}

// AddMember attaches an existing user, found by email, with the given role
func (s *ProjectService) AddMember(ctx context.Context, actor access.Actor, projectID, email, rawRole string) (*models.Project, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, projectID, access.CapAdmin)
	if err != nil {
		return nil, err
	}

	role, err := models.ParseMemberRole(rawRole)
	if err != nil {
		return nil, apperr.InvalidArgument("%v", err)
	}

	target, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("no user with email %s", email)
		}
		return nil, err
	}

	if project.OwnerID == target.ID {
		return nil, apperr.Conflict("user is the project owner")
	}
	if _, isMember := access.MemberRole(access.Actor{UserID: target.ID}, project); isMember {
		return nil, apperr.Conflict("user is already a member")
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    target.ID,
		Role:      role,
	}
	if err := s.projects.AddMember(ctx, member); err != nil {
		return nil, err
	}

	klog.InfoS("Member added", "project", project.ID, "user", target.ID, "role", role, "by", actor.UserID)
	return s.projects.FindByID(ctx, project.ID)
}

// RemoveMember detaches a member. Members may always remove themselves;
// removing a non-member succeeds without change.
func (s *ProjectService) RemoveMember(ctx context.Context, actor access.Actor, projectID, targetUserID string) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !access.CanRemoveMember(actor, project, targetUserID) {
		return nil, access.Require(actor, project, access.CapAdmin)
	}

	removed, err := s.projects.RemoveMember(ctx, project.ID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return project, nil
	}

	klog.InfoS("Member removed", "project", project.ID, "user", targetUserID, "by", actor.UserID)
	return s.projects.FindByID(ctx, project.ID)
}

// UpdateMemberRole changes the role of an existing member. Requires admin.
func (s *ProjectService) UpdateMemberRole(ctx context.Context, actor access.Actor, projectID, targetUserID, rawRole string) (*models.Project, error) {
	project, err := loadAuthorized(ctx, s.projects, actor, projectID, access.CapAdmin)
	if err != nil {
		return nil, err
	}

	role, err := models.ParseMemberRole(rawRole)
	if err != nil {
		return nil, apperr.InvalidArgument("%v", err)
	}

	if err := s.projects.UpdateMemberRole(ctx, project.ID, targetUserID, role); err != nil {
		return nil, err
	}

	klog.InfoS("Member role changed", "project", project.ID, "user", targetUserID, "role", role, "by", actor.UserID)
	return s.projects.FindByID(ctx, project.ID)
}
