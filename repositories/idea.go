package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/grantdesk-api/models"
)

// IdeaRepository handles database operations for ideas
type IdeaRepository struct {
	db *gorm.DB
}

// NewIdeaRepository creates a new idea repository instance
func NewIdeaRepository(db *gorm.DB) *IdeaRepository {
	return &IdeaRepository{db: db}
}

// FindByID retrieves an idea by its ID
func (r *IdeaRepository) FindByID(ctx context.Context, id string) (*models.Idea, error) {
	var idea models.Idea
	if err := r.db.WithContext(ctx).First(&idea, "id = ?", id).Error; err != nil {
		return nil, translate(err, "idea")
	}
	return &idea, nil
}

// ListByProject retrieves a project's ideas, newest first. An empty status lists all.
func (r *IdeaRepository) ListByProject(ctx context.Context, projectID string, status models.IdeaStatus) ([]models.Idea, error) {
	ideas := []models.Idea{}
	db := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("created_at desc").Find(&ideas).Error; err != nil {
		return nil, translate(err, "idea")
	}
	return ideas, nil
}

// Create inserts a new idea
func (r *IdeaRepository) Create(ctx context.Context, idea *models.Idea) error {
	return translate(r.db.WithContext(ctx).Create(idea).Error, "idea")
}

// Update saves the whole idea row
func (r *IdeaRepository) Update(ctx context.Context, idea *models.Idea) error {
	return translate(r.db.WithContext(ctx).Save(idea).Error, "idea")
}

// Delete soft-deletes an idea
func (r *IdeaRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Idea{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, "idea")
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "idea")
	}
	return nil
}
