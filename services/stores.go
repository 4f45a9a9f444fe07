package services

import (
	"context"
	"time"

	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/repositories"
)

// UserStore is the identity store used by the services
type UserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	List(ctx context.Context, page repositories.Page, search string) ([]models.User, int64, error)
}

// ProjectStore persists projects and their memberships
type ProjectStore interface {
	FindByID(ctx context.Context, id string) (*models.Project, error)
	FindForUser(ctx context.Context, userID string, filter repositories.ProjectFilter) ([]models.Project, int64, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, member *models.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID string) (bool, error)
	UpdateMemberRole(ctx context.Context, projectID, userID string, role models.MemberRole) error
}

// IdeaStore persists ideas
type IdeaStore interface {
	FindByID(ctx context.Context, id string) (*models.Idea, error)
	ListByProject(ctx context.Context, projectID string, status models.IdeaStatus) ([]models.Idea, error)
	Create(ctx context.Context, idea *models.Idea) error
	Update(ctx context.Context, idea *models.Idea) error
	Delete(ctx context.Context, id string) error
}

// ApplicationStore persists applications
type ApplicationStore interface {
	FindByID(ctx context.Context, id string) (*models.Application, error)
	ListByProject(ctx context.Context, projectID string, status models.ApplicationStatus) ([]models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	Update(ctx context.Context, app *models.Application) error
}

var (
	_ UserStore        = (*repositories.UserRepository)(nil)
	_ ProjectStore     = (*repositories.ProjectRepository)(nil)
	_ IdeaStore        = (*repositories.IdeaRepository)(nil)
	_ ApplicationStore = (*repositories.ApplicationRepository)(nil)
)
