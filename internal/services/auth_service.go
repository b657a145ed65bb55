package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/email"
	"github.com/kunalaswar/HireFlow/internal/logger"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

const (
	inviteTTL = 48 * time.Hour
	resetTTL  = 15 * time.Minute
)

type AuthService struct {
	db             *gorm.DB
	userRepo       repositories.UserRepository
	tokenRepo      repositories.TokenRepository
	mailer         *email.Mailer
	passwordPolicy auth.PasswordPolicy
}

func NewAuthService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	mailer *email.Mailer,
) *AuthService {
	return &AuthService{
		db:             db,
		userRepo:       userRepo,
		tokenRepo:      tokenRepo,
		mailer:         mailer,
		passwordPolicy: auth.DefaultPasswordPolicy,
	}
}

// Login authenticates by email and password. Unknown email and wrong
// password share one generic message. The active flag is checked before
// the password: an inactive account always answers "verify your email",
// wrong password or not.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserNotVerified
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user logged in", "user_id", user.ID, "role", user.Role)
	return &dto.LoginResponse{Token: token, User: dto.NewUserResponse(user)}, nil
}

// Signup completes an HR invitation: the invite must be unused and inside
// its 48 hour window. The invitation email already proved the address, so
// the account is created active and no verification link is sent; the user
// and the consumed invite move together in one transaction.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.UserResponse, error) {
	invite, err := s.tokenRepo.FindInviteByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInviteInvalid
		}
		return nil, apperrors.InternalError(err)
	}
	if invite.Used || invite.IsExpired(time.Now()) {
		return nil, apperrors.ErrInviteInvalid
	}

	if _, err := s.userRepo.FindByEmail(ctx, invite.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := s.passwordPolicy(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword.WithDetails(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        invite.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRoleHR,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateTx(tx, user); err != nil {
			return err
		}
		return s.tokenRepo.MarkInviteUsedTx(tx, invite)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "invite redeemed", "user_id", user.ID, "email", user.Email)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Register is open self-registration: anyone can create an HR account with
// no invite. The account is active immediately; the verification email only
// confirms the address, it does not gate login.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	regEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindByEmail(ctx, regEmail); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := s.passwordPolicy(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword.WithDetails(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        regEmail,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.UserRoleHR,
		IsActive:     true,
	}
	verification := &models.EmailVerificationToken{Token: uuid.NewString()}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.CreateTx(tx, user); err != nil {
			return err
		}
		verification.UserID = user.ID
		return s.tokenRepo.CreateVerificationTokenTx(tx, verification)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Delivery failure is not fatal: the account exists and support can
	// re-send the link.
	if err := s.mailer.SendVerification(ctx, user.Email, user.FirstName, verification.Token); err != nil {
		logger.CtxWithError(ctx, "failed to send verification email", err, "user_id", user.ID)
	}

	logger.CtxInfo(ctx, "account registered", "user_id", user.ID, "email", user.Email)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// VerifyEmail activates the account behind a verification token. Tokens are
// single-use but never expire.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	vt, err := s.tokenRepo.FindVerificationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}
	if vt.IsUsed {
		return apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, vt.UserID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.MarkVerificationUsedTx(tx, vt); err != nil {
			return err
		}
		user.IsActive = true
		return tx.Save(user).Error
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "email verified", "user_id", user.ID)
	return nil
}

// ForgotPassword issues a 15 minute reset token. It always reports success
// so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest, requestIP, userAgent string) error {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	reset := &models.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTTL),
		RequestIP: requestIP,
		UserAgent: userAgent,
	}
	if err := s.tokenRepo.CreatePasswordReset(ctx, reset); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, reset.Token); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err, "user_id", user.ID)
	}
	return nil
}

// ResetPassword consumes a reset token and rewrites the password hash in
// one transaction.
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	reset, err := s.tokenRepo.FindResetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.InternalError(err)
	}
	if reset.Used || reset.IsExpired(time.Now()) {
		return apperrors.ErrInvalidToken
	}

	if err := s.passwordPolicy(req.Password); err != nil {
		return apperrors.ErrWeakPassword.WithDetails(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user, err := s.userRepo.FindByID(ctx, reset.UserID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.PasswordHash = hash
		user.MustChangePassword = false
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return s.tokenRepo.ConsumeResetTx(tx, reset)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "password reset completed", "user_id", user.ID)
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}
