package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grantdesk-api/models"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse represents the response after authentication
type AuthResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// UpdateDetailsRequest changes profile fields; empty fields are left alone
type UpdateDetailsRequest struct {
	Name  string `json:"name" binding:"omitempty,max=50"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdatePasswordRequest changes the password of the current user
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ForgotPasswordRequest starts the reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPasswordResponse is returned by the forgot password flow. ResetToken
// is only filled when no mailer is configured.
type ForgotPasswordResponse struct {
	Message    string    `json:"message"`
	ResetToken string    `json:"resetToken,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// ResetPasswordRequest sets a new password with a reset token
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// UserFilter represents admin user list criteria
type UserFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

// UserListResponse represents paginated user list response
type UserListResponse struct {
	Users      []models.User `json:"users"`
	TotalCount int64         `json:"totalCount"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// UpdateUserRoleRequest changes a user's platform role
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
