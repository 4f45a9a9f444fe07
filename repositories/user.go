package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/grantdesk-api/models"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by its ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// FindByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", NormalizeEmail(email)).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// Create inserts a new user. A taken email is a Conflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	return translate(r.db.WithContext(ctx).Create(user).Error, "user")
}

// Update saves every column of user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	return translate(r.db.WithContext(ctx).Save(user).Error, "user")
}

// FindByResetToken finds the user holding an unexpired reset token hash
func (r *UserRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expire > ?", tokenHash, now).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "reset token")
	}
	return &user, nil
}

// ClearExpiredResetTokens drops reset tokens that expired before now and
// returns how many users were touched
func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("reset_password_token IS NOT NULL AND reset_password_expire <= ?", now).
		Updates(map[string]interface{}{
			"reset_password_token":  nil,
			"reset_password_expire": nil,
		})
	if result.Error != nil {
		return 0, translate(result.Error, "user")
	}
	return result.RowsAffected, nil
}

// List retrieves users with pagination and an optional name/email search
func (r *UserRepository) List(ctx context.Context, page Page, search string) ([]models.User, int64, error) {
	page = page.Normalize()

	var users []models.User
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&models.User{})
	if strings.TrimSpace(search) != "" {
		pattern := likePattern(search)
		db = db.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, translate(err, "user")
	}

	err := db.Order("created_at asc").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, translate(err, "user")
	}

	return users, totalCount, nil
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
