package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project is the shared workspace that owns members, ideas and applications
type Project struct {
	ID          string                      `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string                      `json:"name" gorm:"type:varchar(100);not null"`
	Description string                      `json:"description" gorm:"type:varchar(1000);not null"`
	Domain      string                      `json:"domain" gorm:"not null"`
	Status      ProjectStatus               `json:"status" gorm:"type:varchar(20);default:'draft'"`
	OwnerID     string                      `json:"ownerId" gorm:"type:uuid;not null;index"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt              `json:"-" gorm:"index"`

	// Relations
	Owner        User            `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Members      []ProjectMember `json:"members" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Ideas        []Idea          `json:"ideas,omitempty" gorm:"foreignKey:ProjectID"`
	Applications []Application   `json:"applications,omitempty" gorm:"foreignKey:ProjectID"`
}

// ProjectMember attaches a non-owner user to a project with an explicit role.
// Position keeps the members list in insertion order.
type ProjectMember struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid"`
	ProjectID string     `json:"projectId" gorm:"type:uuid;not null;uniqueIndex:idx_project_member"`
	UserID    string     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_project_member;index"`
	Role      MemberRole `json:"role" gorm:"type:varchar(10);not null;default:'viewer'"`
	Position  int        `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time  `json:"joinedAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
