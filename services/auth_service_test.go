package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grantdesk-api/access"
	"github.com/grantdesk-api/apperr"
	"github.com/grantdesk-api/database/dbtest"
	"github.com/grantdesk-api/dto"
	"github.com/grantdesk-api/models"
	"github.com/grantdesk-api/repositories"
)

type sentMail struct {
	to, name, token string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, name, token string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, name: name, token: token})
	return nil
}

var authNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newAuthService(t *testing.T, m *fakeMailer) (*AuthService, *repositories.UserRepository) {
	t.Helper()
	users := repositories.NewUserRepository(dbtest.Open(t))
	tokens, err := NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	tokens.now = fixedClock(authNow)

	var svc *AuthService
	if m == nil {
		svc = NewAuthService(users, tokens, nil, 10*time.Minute)
	} else {
		svc = NewAuthService(users, tokens, m, 10*time.Minute)
	}
	svc.now = fixedClock(authNow)
	return svc, users
}

func register(t *testing.T, svc *AuthService, name string) *dto.AuthResponse {
	t.Helper()
	res, err := svc.Register(context.Background(), dto.RegisterRequest{
		Name:     name,
		Email:    name + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()

	registered := register(t, svc, "alice")
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, models.RoleUser, registered.User.Role)
	assert.Equal(t, authNow.Add(time.Hour), registered.ExpiresAt)
	assert.NotEqual(t, "secret123", registered.User.Password)

	_, err := svc.Register(ctx, dto.RegisterRequest{Name: "dup", Email: "ALICE@example.com", Password: "secret123"})
	assert.Equal(t, apperr.KindConflict, errKind(err))

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindUnauthorized, errKind(err))
	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, apperr.KindUnauthorized, errKind(err))

	actor, err := svc.VerifyToken(loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, access.Actor{UserID: registered.User.ID, Role: models.RoleUser}, actor)
}

func TestVerifyTokenRejectsBadTokens(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	res := register(t, svc, "alice")

	_, err := svc.VerifyToken("not-a-token")
	assert.Equal(t, apperr.KindUnauthorized, errKind(err))

	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.Issue(&res.User)
	require.NoError(t, err)
	_, err = svc.VerifyToken(foreign)
	assert.Equal(t, apperr.KindUnauthorized, errKind(err))

	svc.tokens.now = fixedClock(authNow.Add(2 * time.Hour))
	_, err = svc.VerifyToken(res.Token)
	assert.Equal(t, apperr.KindUnauthorized, errKind(err), "expired token")
}

func TestNewTokenIssuerNeedsSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestUpdateDetailsAndPassword(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	res := register(t, svc, "alice")
	actor := access.Actor{UserID: res.User.ID, Role: res.User.Role}

	updated, err := svc.UpdateDetails(ctx, actor, dto.UpdateDetailsRequest{Name: "Alice B"})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = svc.UpdatePassword(ctx, actor, dto.UpdatePasswordRequest{CurrentPassword: "nope", NewPassword: "another1"})
	assert.Equal(t, apperr.KindUnauthorized, errKind(err))

	_, err = svc.UpdatePassword(ctx, actor, dto.UpdatePasswordRequest{CurrentPassword: "secret123", NewPassword: "another1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "another1"})
	assert.NoError(t, err)

	me, err := svc.Me(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", me.Name)
}

func TestForgotAndResetPasswordWithoutMailer(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	register(t, svc, "alice")

	_, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "ghost@example.com"})
	assert.Equal(t, apperr.KindNotFound, errKind(err))

	forgot, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, forgot.ResetToken)
	assert.Equal(t, authNow.Add(10*time.Minute), forgot.ExpiresAt)

	_, err = svc.ResetPassword(ctx, "wrong-token", dto.ResetPasswordRequest{Password: "newpass1"})
	assert.Equal(t, apperr.KindInvalidArgument, errKind(err))

	reset, err := svc.ResetPassword(ctx, forgot.ResetToken, dto.ResetPasswordRequest{Password: "newpass1"})
	require.NoError(t, err)
	assert.NotEmpty(t, reset.Token)

	// tokens are single use
	_, err = svc.ResetPassword(ctx, forgot.ResetToken, dto.ResetPasswordRequest{Password: "newpass2"})
	assert.Equal(t, apperr.KindInvalidArgument, errKind(err))

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "newpass1"})
	assert.NoError(t, err)
}

func TestResetTokenExpires(t *testing.T) {
	svc, _ := newAuthService(t, nil)
	ctx := context.Background()
	register(t, svc, "alice")

	forgot, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)

	svc.now = fixedClock(authNow.Add(11 * time.Minute))
	_, err = svc.ResetPassword(ctx, forgot.ResetToken, dto.ResetPasswordRequest{Password: "newpass1"})
	assert.Equal(t, apperr.KindInvalidArgument, errKind(err))
}

func TestForgotPasswordSendsMail(t *testing.T) {
	m := &fakeMailer{}
	svc, users := newAuthService(t, m)
	ctx := context.Background()
	register(t, svc, "alice")

	forgot, err := svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Empty(t, forgot.ResetToken)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "alice@example.com", m.sent[0].to)

	_, err = svc.ResetPassword(ctx, m.sent[0].token, dto.ResetPasswordRequest{Password: "newpass1"})
	require.NoError(t, err)

	m.err = errProvider
	_, err = svc.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: "alice@example.com"})
	assert.ErrorIs(t, err, errProvider)

	user, err := users.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, user.ResetPasswordToken)
}

func TestUpdateUserRole(t *testing.T) {
	svc, users := newAuthService(t, nil)
	ctx := context.Background()
	userSvc := NewUserService(users)
	alice := register(t, svc, "alice")
	bob := register(t, svc, "bob")
	admin := access.Actor{UserID: alice.User.ID, Role: models.RoleAdmin}

	_, err := userSvc.UpdateRole(ctx, access.Actor{UserID: bob.User.ID, Role: models.RoleUser}, alice.User.ID, "admin")
	assert.Equal(t, apperr.KindForbidden, errKind(err))

	_, err = userSvc.UpdateRole(ctx, admin, bob.User.ID, "root")
	assert.Equal(t, apperr.KindInvalidArgument, errKind(err))

	_, err = userSvc.UpdateRole(ctx, admin, alice.User.ID, "user")
	assert.Equal(t, apperr.KindConflict, errKind(err))

	updated, err := userSvc.UpdateRole(ctx, admin, bob.User.ID, "member")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, updated.Role)

	list, err := userSvc.List(ctx, dto.UserFilter{Search: "BOB"})
	require.NoError(t, err)
	require.Len(t, list.Users, 1)
	assert.Equal(t, models.RoleMember, list.Users[0].Role)

	role, err := userSvc.CurrentRole(ctx, bob.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, role)

	_, err = userSvc.CurrentRole(ctx, "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, apperr.KindNotFound, errKind(err))
}
