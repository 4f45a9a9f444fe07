package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section is one ordered part of an application. Order is authoritative,
// not the position in the slice.
type Section struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// SectionScore scores a single section 0-10
type SectionScore struct {
	Section  string `json:"section"`
	Score    int    `json:"score"`
	Comments string `json:"comments"`
}

// ApplicationReview is a funder-style assessment (overall score 0-100)
type ApplicationReview struct {
	Reviewer      ReviewerKind   `json:"reviewer"`
	OverallScore  int            `json:"overallScore"`
	SectionScores []SectionScore `json:"sectionScores"`
	Strengths     []string       `json:"strengths"`
	Weaknesses    []string       `json:"weaknesses"`
	Improvements  []string       `json:"improvements"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// Partner is a consortium partner listed in the metadata
type Partner struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// ApplicationMetaData holds funding details
type ApplicationMetaData struct {
	FundingAmount           *float64   `json:"fundingAmount,omitempty"`
	Duration                string     `json:"duration,omitempty"`
	StartDate               *time.Time `json:"startDate,omitempty"`
	EndDate                 *time.Time `json:"endDate,omitempty"`
	Partners                []Partner  `json:"partners,omitempty"`
	TargetProgramPriorities []string   `json:"targetProgramPriorities,omitempty"`
}

// ApplicationSnapshot is the content frozen into a version
type ApplicationSnapshot struct {
	Title    string              `json:"title"`
	Status   ApplicationStatus   `json:"status"`
	Sections []Section           `json:"sections"`
	MetaData ApplicationMetaData `json:"metaData"`
}

// ApplicationVersion is one entry of the version history
type ApplicationVersion struct {
	Version   int                 `json:"version"`
	CreatedAt time.Time           `json:"createdAt"`
	CreatedBy string              `json:"createdBy"`
	Snapshot  ApplicationSnapshot `json:"snapshot"`
}

// Application is a funding application drafted from an idea
type Application struct {
	ID            string                                  `json:"id" gorm:"primaryKey;type:uuid"`
	Title         string                                  `json:"title" gorm:"type:varchar(200);not null"`
	ProjectID     string                                  `json:"projectId" gorm:"type:uuid;not null;index"`
	BaseIdeaID    *string                                 `json:"baseIdeaId" gorm:"type:uuid;default:null"`
	OwnerID       string                                  `json:"ownerId" gorm:"type:uuid;not null;index"`
	Status        ApplicationStatus                       `json:"status" gorm:"type:varchar(10);default:'draft'"`
	Sections      datatypes.JSONSlice[Section]            `json:"sections"`
	Reviews       datatypes.JSONSlice[ApplicationReview]  `json:"reviews"`
	Conversations datatypes.JSONSlice[ConversationEntry]  `json:"conversations"`
	MetaData      datatypes.JSONType[ApplicationMetaData] `json:"metaData"`
	Versions      datatypes.JSONSlice[ApplicationVersion] `json:"versions"`
	CreatedAt     time.Time                               `json:"createdAt"`
	UpdatedAt     time.Time                               `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt                          `json:"-" gorm:"index"`
}

// OrderedSections returns a copy of the sections sorted by their Order field
func (a *Application) OrderedSections() []Section {
	out := slices.Clone([]Section(a.Sections))
	slices.SortStableFunc(out, func(x, y Section) int { return x.Order - y.Order })
	return out
}

// AppendReview adds a review; prior reviews are never rewritten
func (a *Application) AppendReview(r ApplicationReview) {
	a.Reviews = append(a.Reviews, r)
}

// AppendConversation adds entries after the existing history
func (a *Application) AppendConversation(entries ...ConversationEntry) {
	a.Conversations = append(a.Conversations, entries...)
}

// Snapshot appends a new version capturing the current content
func (a *Application) Snapshot(createdBy string, at time.Time) ApplicationVersion {
	v := ApplicationVersion{
		Version:   len(a.Versions) + 1,
		CreatedAt: at,
		CreatedBy: createdBy,
		Snapshot: ApplicationSnapshot{
			Title:    a.Title,
			Status:   a.Status,
			Sections: a.OrderedSections(),
			MetaData: a.MetaData.Data(),
		},
	}
	a.Versions = append(a.Versions, v)
	return v
}
