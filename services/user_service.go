package services

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/repositories"
	"github.com/grantdesk-api/utils"
)

// UserService is the platform admin view of users
type UserService struct {
	users UserStore
}

// NewUserService creates a new user service instance
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// List returns a page of users
func (s *UserService) List(ctx context.Context, filter dto.UserFilter) (dto.UserListResponse, error) {
	page := repositories.Page{Page: filter.Page, PageSize: filter.PageSize}.Normalize()

	users, total, err := s.users.List(ctx, page, filter.Search)
	if err != nil {
		return dto.UserListResponse{}, err
	}

	return dto.UserListResponse{
		Users:      users,
		TotalCount: total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: utils.TotalPages(total, page.PageSize),
	}, nil
}

// UpdateRole changes a user's platform role. Admins cannot demote themselves.
func (s *UserService) UpdateRole(ctx context.Context, actor access.Actor, userID, rawRole string) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("admin access required")
	}
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return nil, apperr.InvalidArgument("%v", err)
	}
	if userID == actor.UserID && role != models.RoleAdmin {
		return nil, apperr.Conflict("admins cannot remove their own admin role")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	klog.InfoS("User role changed", "user", userID, "role", role, "by", actor.UserID)
	return user, nil
}

// CurrentRole returns the stored platform role of a user
func (s *UserService) CurrentRole(ctx context.Context, userID string) (models.Role, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
