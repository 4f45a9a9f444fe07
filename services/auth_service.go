package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"k8s.io/klog/v2"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/mailer"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/utils"
)

// AuthService handles registration, login and password management
type AuthService struct {
	users    UserStore
	tokens   *TokenIssuer
	mailer   mailer.Mailer
	resetTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new auth service. A nil mailer makes the forgot
// password flow return the reset token in its response.
func NewAuthService(users UserStore, tokens *TokenIssuer, m mailer.Mailer, resetTTL time.Duration) *AuthService {
	if resetTTL <= 0 {
		resetTTL = 10 * time.Minute
	}
	return &AuthService{
		users:    users,
		tokens:   tokens,
		mailer:   m,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// Register creates a new user account and signs it in
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	// Check if email already exists
	_, err := s.users.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, apperr.Conflict("email already registered")
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	klog.InfoS("User registered", "user", user.ID)
	return s.authResponse(user)
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	klog.InfoS("User logged in", "user", user.ID)
	return s.authResponse(user)
}

// Me returns the current user
func (s *AuthService) Me(ctx context.Context, actor access.Actor) (*models.User, error) {
	return s.users.FindByID(ctx, actor.UserID)
}

// UpdateDetails changes the name and email of the current user
func (s *AuthService) UpdateDetails(ctx context.Context, actor access.Actor, req dto.UpdateDetailsRequest) (*models.User, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the password after checking the current one and
// returns a fresh token
func (s *AuthService) UpdatePassword(ctx context.Context, actor access.Actor, req dto.UpdatePasswordRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return nil, apperr.Unauthorized("current password is incorrect")
	}

	if user.Password, err = hashPassword(req.NewPassword); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

// ForgotPassword stores a hashed reset token and mails the raw one. Without a
// mailer the raw token is returned instead.
func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (*dto.ForgotPasswordResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	raw, hash, err := utils.GenerateResetToken()
	if err != nil {
		return nil, apperr.Service(err, "failed to create reset token")
	}
	expiresAt := s.now().Add(s.resetTTL)
	user.ResetPasswordToken = &hash
	user.ResetPasswordExpire = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer == nil {
		return &dto.ForgotPasswordResponse{
			Message:    "reset token created",
			ResetToken: raw,
			ExpiresAt:  expiresAt,
		}, nil
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Name, raw); err != nil {
		user.ResetPasswordToken = nil
		user.ResetPasswordExpire = nil
		if clearErr := s.users.Update(ctx, user); clearErr != nil {
			klog.ErrorS(clearErr, "Failed to clear reset token after mail failure", "user", user.ID)
		}
		return nil, err
	}

	return &dto.ForgotPasswordResponse{
		Message:   "reset mail sent",
		ExpiresAt: expiresAt,
	}, nil
}

// ResetPassword sets a new password using an unexpired reset token
func (s *AuthService) ResetPassword(ctx context.Context, rawToken string, req dto.ResetPasswordRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByResetToken(ctx, utils.HashResetToken(rawToken), s.now())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.InvalidArgument("invalid or expired reset token")
		}
		return nil, err
	}

	if user.Password, err = hashPassword(req.Password); err != nil {
		return nil, err
	}
	user.ResetPasswordToken = nil
	user.ResetPasswordExpire = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	klog.InfoS("Password reset", "user", user.ID)
	return s.authResponse(user)
}

// VerifyToken resolves a bearer token into an actor
func (s *AuthService) VerifyToken(token string) (access.Actor, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.InvalidArgument("password cannot be used: %v", err)
	}
	return string(hashed), nil
}
