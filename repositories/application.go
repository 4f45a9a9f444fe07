package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/grantdesk-api/models"
)

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository instance
func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// FindByID retrieves an application by its ID
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, translate(err, "application")
	}
	return &app, nil
}

// ListByProject retrieves a project's applications, newest first. An empty status lists all.
func (r *ApplicationRepository) ListByProject(ctx context.Context, projectID string, status models.ApplicationStatus) ([]models.Application, error) {
	apps := []models.Application{}
	db := r.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if err := db.Order("created_at desc").Find(&apps).Error; err != nil {
		return nil, translate(err, "application")
	}
	return apps, nil
}

// Create inserts a new application
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	return translate(r.db.WithContext(ctx).Create(app).Error, "application")
}

// Update saves the whole application row
func (r *ApplicationRepository) Update(ctx context.Context, app *models.Application) error {
	return translate(r.db.WithContext(ctx).Save(app).Error, "application")
}
