package dto

import (
	"github.com/grantdesk-api/models"
)

// ProjectFilter represents filter criteria for projects
type ProjectFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

// ProjectListResponse represents paginated project list response
type ProjectListResponse struct {
	Projects   []models.Project `json:"projects"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
}

// CreateProjectRequest represents the request payload for creating a new project
type CreateProjectRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description" binding:"required,max=1000"`
	Domain      string   `json:"domain" binding:"required"`
	Tags        []string `json:"tags"`
}

// UpdateProjectRequest represents the request payload for updating an
// existing project. Nil fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=100"`
	Description *string   `json:"description" binding:"omitempty,max=1000"`
	Domain      *string   `json:"domain"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
}

// AddMemberRequest invites an existing user by email
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

// UpdateMemberRoleRequest changes a member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
