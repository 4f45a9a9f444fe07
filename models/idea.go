package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IdeaReview is a scored assessment of an idea (score 0-10)
type IdeaReview struct {
	Reviewer  ReviewerKind `json:"reviewer"`
	Score     int          `json:"score"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Idea is a funding idea generated inside a project.
// ProjectID is fixed at creation.
type Idea struct {
	ID            string                                 `json:"id" gorm:"primaryKey;type:uuid"`
	Title         string                                 `json:"title" gorm:"type:varchar(200);not null"`
	Description   string                                 `json:"description" gorm:"not null"`
	ProjectID     string                                 `json:"projectId" gorm:"type:uuid;not null;index"`
	CreatorID     string                                 `json:"creatorId" gorm:"type:uuid;index"`
	Status        IdeaStatus                             `json:"status" gorm:"type:varchar(10);default:'draft'"`
	Strengths     datatypes.JSONSlice[string]            `json:"strengths"`
	Weaknesses    datatypes.JSONSlice[string]            `json:"weaknesses"`
	Suggestions   datatypes.JSONSlice[string]            `json:"suggestions"`
	Tags          datatypes.JSONSlice[string]            `json:"tags"`
	IsAIGenerated bool                                   `json:"isAIGenerated" gorm:"default:false"`
	Reviews       datatypes.JSONSlice[IdeaReview]        `json:"reviews"`
	Conversations datatypes.JSONSlice[ConversationEntry] `json:"conversations"`
	CreatedAt     time.Time                              `json:"createdAt"`
	UpdatedAt     time.Time                              `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt                         `json:"-" gorm:"index"`
}

// AppendReview adds a review; prior reviews are never rewritten
func (i *Idea) AppendReview(r IdeaReview) {
	i.Reviews = append(i.Reviews, r)
}

// AppendConversation adds entries after the existing history
func (i *Idea) AppendConversation(entries ...ConversationEntry) {
	i.Conversations = append(i.Conversations, entries...)
}
