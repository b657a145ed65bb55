package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

func (e *testEnv) createInvite(t *testing.T, inviteEmail string, expiresAt time.Time, used bool) *models.Invite {
	t.Helper()
	invite := &models.Invite{
		Email:          inviteEmail,
		Token:          uuid.NewString(),
		CreatedByEmail: "admin@corp.test",
		ExpiresAt:      expiresAt,
		Used:           used,
	}
	require.NoError(t, e.db.Create(invite).Error)
	return invite
}

func TestInviteSignupCreatesActiveAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	invite := env.createInvite(t, "new.hr@corp.test", time.Now().Add(48*time.Hour), false)

	user, err := env.sc.Auth.Signup(ctx, dto.SignupRequest{
		Token:     invite.Token,
		FirstName: "New",
		LastName:  "Hire",
		Password:  "passw0rd1",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.hr@corp.test", user.Email)
	assert.Equal(t, models.UserRoleHR, user.Role)

	// The invitation already proved the address: the account is active and
	// no verification mail goes out.
	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 0, env.mail.count())

	// Login works straight away.
	resp, err := env.sc.Auth.Login(ctx, dto.LoginRequest{Email: "new.hr@corp.test", Password: "passw0rd1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsActive)

	// The invite is consumed.
	var storedInvite models.Invite
	require.NoError(t, env.db.First(&storedInvite, "id = ?", invite.ID).Error)
	assert.True(t, storedInvite.Used)
	_, err = env.sc.Auth.Signup(ctx, dto.SignupRequest{
		Token: invite.Token, FirstName: "A", LastName: "B", Password: "passw0rd1",
	})
	require.Error(t, err)
}

func TestRegisterCreatesActiveAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.sc.Auth.Register(ctx, dto.RegisterRequest{
		Email:     "  Self.Serve@Corp.Test ",
		FirstName: "Self",
		LastName:  "Serve",
		Password:  "passw0rd1",
	})
	require.NoError(t, err)
	assert.Equal(t, "self.serve@corp.test", user.Email)
	assert.Equal(t, models.UserRoleHR, user.Role)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.True(t, stored.IsActive)

	// The confirmation mail goes out but never gates login.
	require.Equal(t, 1, env.mail.count())
	assert.Equal(t, "self.serve@corp.test", env.mail.last().ToEmail)

	resp, err := env.sc.Auth.Login(ctx, dto.LoginRequest{Email: "self.serve@corp.test", Password: "passw0rd1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	// The persisted confirmation token is single-use.
	var vt models.EmailVerificationToken
	require.NoError(t, env.db.First(&vt, "user_id = ?", user.ID).Error)
	require.NoError(t, env.sc.Auth.VerifyEmail(ctx, vt.Token))
	assert.Error(t, env.sc.Auth.VerifyEmail(ctx, vt.Token))
}

func TestRegisterRejectsDuplicateAndWeakPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "taken@corp.test", models.UserRoleHR)
	ctx := context.Background()

	_, err := env.sc.Auth.Register(ctx, dto.RegisterRequest{
		Email: "Taken@corp.test", FirstName: "A", LastName: "B", Password: "passw0rd1",
	})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeEmailAlreadyExists, appErr.Code)

	_, err = env.sc.Auth.Register(ctx, dto.RegisterRequest{
		Email: "fresh@corp.test", FirstName: "A", LastName: "B", Password: "short",
	})
	require.Error(t, err)
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeWeakPassword, appErr.Code)

	assert.Equal(t, 0, env.mail.count())
}

func TestLoginInactiveAccountAlwaysAsksForVerification(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "suspended@corp.test", models.UserRoleHR)
	require.NoError(t, env.db.Model(user).Update("is_active", false).Error)
	ctx := context.Background()

	// Right or wrong password, an inactive account gets the same answer.
	for _, password := range []string{"passw0rd1", "wrong-pass1"} {
		_, err := env.sc.Auth.Login(ctx, dto.LoginRequest{Email: "suspended@corp.test", Password: password})
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, "Please verify your email before login", appErr.Message)
	}
}

func TestSignupRejectsUsedAndExpiredInvites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	used := env.createInvite(t, "used@corp.test", time.Now().Add(time.Hour), true)
	expired := env.createInvite(t, "late@corp.test", time.Now().Add(-time.Hour), false)

	for _, token := range []string{used.Token, expired.Token, "not-a-token"} {
		_, err := env.sc.Auth.Signup(ctx, dto.SignupRequest{
			Token: token, FirstName: "A", LastName: "B", Password: "passw0rd1",
		})
		require.Error(t, err, "token %q", token)
	}

	// No accounts were created, no mail sent.
	var count int64
	env.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 0, env.mail.count())
}

func TestSignupWeakPasswordRejected(t *testing.T) {
	env := newTestEnv(t)
	invite := env.createInvite(t, "weak@corp.test", time.Now().Add(time.Hour), false)

	_, err := env.sc.Auth.Signup(context.Background(), dto.SignupRequest{
		Token: invite.Token, FirstName: "A", LastName: "B", Password: "short",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeWeakPassword, appErr.Code)
}

func TestLoginGenericMessageForBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "hr@corp.test", models.UserRoleHR)
	ctx := context.Background()

	// Wrong password and unknown account produce the same message.
	for _, req := range []dto.LoginRequest{
		{Email: "hr@corp.test", Password: "wrong-pass1"},
		{Email: "ghost@corp.test", Password: "passw0rd1"},
	} {
		_, err := env.sc.Auth.Login(ctx, req)
		require.Error(t, err)
		var appErr *apperrors.AppError
		require.True(t, apperrors.As(err, &appErr))
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	ctx := context.Background()

	require.NoError(t, env.sc.Auth.ForgotPassword(ctx,
		dto.ForgotPasswordRequest{Email: "hr@corp.test"}, "10.0.0.1", "test-agent"))
	require.Equal(t, 1, env.mail.count())

	var reset models.PasswordReset
	require.NoError(t, env.db.First(&reset, "user_id = ?", user.ID).Error)
	assert.Equal(t, "10.0.0.1", reset.RequestIP)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), reset.ExpiresAt, time.Minute)

	require.NoError(t, env.sc.Auth.ResetPassword(ctx, dto.ResetPasswordRequest{
		Token: reset.Token, Password: "newpassw0rd",
	}))

	// Old password is out, new one works.
	_, err := env.sc.Auth.Login(ctx, dto.LoginRequest{Email: "hr@corp.test", Password: "passw0rd1"})
	assert.Error(t, err)
	_, err = env.sc.Auth.Login(ctx, dto.LoginRequest{Email: "hr@corp.test", Password: "newpassw0rd"})
	assert.NoError(t, err)

	// The token is single-use.
	err = env.sc.Auth.ResetPassword(ctx, dto.ResetPasswordRequest{Token: reset.Token, Password: "anotherp4ss"})
	assert.Error(t, err)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	env := newTestEnv(t)

	err := env.sc.Auth.ForgotPassword(context.Background(),
		dto.ForgotPasswordRequest{Email: "nobody@corp.test"}, "10.0.0.1", "test-agent")
	assert.NoError(t, err)
	assert.Equal(t, 0, env.mail.count())
}

func TestExpiredResetTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "hr@corp.test", models.UserRoleHR)

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, env.db.Create(reset).Error)

	err := env.sc.Auth.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Token: reset.Token, Password: "newpassw0rd",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidToken, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "hr@corp.test", models.UserRoleHR)

	resp, err := env.sc.Auth.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{
		FirstName: "Priya", LastName: "Sharma",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya", resp.FirstName)
	assert.Equal(t, "Sharma", resp.LastName)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "Priya", stored.FirstName)
}
