package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user in the system
type User struct {
	ID                  string         `json:"id" gorm:"primaryKey;type:uuid"`
	Name                string         `json:"name" gorm:"type:varchar(50);not null"`
	Email               string         `json:"email" gorm:"uniqueIndex;not null"`
	Password            string         `json:"-" gorm:"not null"`                           // bcrypt hash, never exposed
	Role                Role           `json:"role" gorm:"type:varchar(10);default:'user'"`
	ResetPasswordToken  *string        `json:"-" gorm:"index;default:null"`
	ResetPasswordExpire *time.Time     `json:"-" gorm:"default:null"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `json:"-" gorm:"index"`
}
