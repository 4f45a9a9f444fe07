package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/models"
)

// ProjectFilter narrows and orders a project listing. SortBy must already be
// a whitelisted column.
type ProjectFilter struct {
	Page
	SortBy    string
	SortOrder string
	Search    string
	Status    models.ProjectStatus
}

// ProjectRepository handles database operations for projects and their members
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository instance
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindByID retrieves a project with its owner and members in join order
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Members.User").
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "project")
	}
	return &project, nil
}

// FindForUser retrieves the projects a user owns or is a member of, with
// pagination, filtering and sorting
func (r *ProjectRepository) FindForUser(ctx context.Context, userID string, filter ProjectFilter) ([]models.Project, int64, error) {
	filter.Page = filter.Page.Normalize()

	var projects []models.Project
	var totalCount int64

	memberOf := r.db.WithContext(ctx).Model(&models.ProjectMember{}).
		Select("project_id").
		Where("user_id = ?", userID)
	db := r.db.WithContext(ctx).Model(&models.Project{}).
		Where("owner_id = ? OR id IN (?)", userID, memberOf)

	if strings.TrimSpace(filter.Search) != "" {
		pattern := likePattern(filter.Search)
		db = db.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	// Count total records (with the same filters)
	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, translate(err, "project")
	}

	err := db.Preload("Members", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	}).
		Order(filter.SortBy + " " + filter.SortOrder).
		Limit(filter.PageSize).
		Offset(filter.Offset()).
		Find(&projects).Error
	if err != nil {
		return nil, 0, translate(err, "project")
	}

	return projects, totalCount, nil
}

// Create inserts a new project without touching associations
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
	return translate(err, "project")
}

// Update saves the project columns. Members are changed only through the
// membership methods.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
	return translate(err, "project")
}

// Delete soft-deletes a project with its ideas and applications and drops its memberships
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Idea{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err, "project")
}

// AddMember appends a member after the current last position. A second row
// for the same user is a Conflict.
func (r *ProjectRepository) AddMember(ctx context.Context, member *models.ProjectMember) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ?", member.ProjectID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error
		if err != nil {
			return err
		}
		member.Position = last + 1
		return tx.Omit(clause.Associations).Create(member).Error
	})
	return translate(err, "member")
}

// RemoveMember deletes the membership row and reports whether one existed
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		return false, translate(result.Error, "member")
	}
	return result.RowsAffected > 0, nil
}

// UpdateMemberRole changes the role of an existing member
func (r *ProjectRepository) UpdateMemberRole(ctx context.Context, projectID, userID string, role models.MemberRole) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Update("role", role)
	if result.Error != nil {
		return translate(result.Error, "member")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("member not found")
	}
	return nil
}
