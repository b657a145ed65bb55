package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/models"
)

// TokenRepository covers the three one-time-token tables: HR invites,
// password resets and email verification tokens.
type TokenRepository interface {
	CreateInvite(ctx context.Context, invite *models.Invite) error
	FindInviteByToken(ctx context.Context, token string) (*models.Invite, error)
	FindPendingInviteByEmail(ctx context.Context, email string) (*models.Invite, error)
	ListPendingInvites(ctx context.Context) ([]models.Invite, error)
	MarkInviteUsedTx(tx *gorm.DB, invite *models.Invite) error

	CreatePasswordReset(ctx context.Context, reset *models.PasswordReset) error
	FindResetByToken(ctx context.Context, token string) (*models.PasswordReset, error)
	ConsumeResetTx(tx *gorm.DB, reset *models.PasswordReset) error

	CreateVerificationTokenTx(tx *gorm.DB, token *models.EmailVerificationToken) error
	FindVerificationByToken(ctx context.Context, token string) (*models.EmailVerificationToken, error)
	MarkVerificationUsedTx(tx *gorm.DB, token *models.EmailVerificationToken) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) CreateInvite(ctx context.Context, invite *models.Invite) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *tokenRepository) FindInviteByToken(ctx context.Context, token string) (*models.Invite, error) {
	var invite models.Invite
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// FindPendingInviteByEmail returns an unused, unexpired invite for the email
// if one exists.
func (r *tokenRepository) FindPendingInviteByEmail(ctx context.Context, email string) (*models.Invite, error) {
	var invite models.Invite
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ? AND used = ? AND expires_at > ?",
			strings.ToLower(email), false, time.Now()).
		First(&invite).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

func (r *tokenRepository) ListPendingInvites(ctx context.Context) ([]models.Invite, error) {
	var invites []models.Invite
	err := r.db.WithContext(ctx).
		Where("used = ? AND expires_at > ?", false, time.Now()).
		Order("created_at DESC").
		Find(&invites).Error
	return invites, err
}

func (r *tokenRepository) MarkInviteUsedTx(tx *gorm.DB, invite *models.Invite) error {
	invite.Used = true
	return tx.Save(invite).Error
}

func (r *tokenRepository) CreatePasswordReset(ctx context.Context, reset *models.PasswordReset) error {
	return r.db.WithContext(ctx).Create(reset).Error
}

func (r *tokenRepository) FindResetByToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	var reset models.PasswordReset
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&reset).Error; err != nil {
		return nil, err
	}
	return &reset, nil
}

// ConsumeResetTx marks the reset used and stamps the consumption time, as
// part of the same transaction that rewrites the password hash.
func (r *tokenRepository) ConsumeResetTx(tx *gorm.DB, reset *models.PasswordReset) error {
	now := time.Now()
	reset.Used = true
	reset.ConsumedAt = &now
	return tx.Save(reset).Error
}

func (r *tokenRepository) CreateVerificationTokenTx(tx *gorm.DB, token *models.EmailVerificationToken) error {
	return tx.Create(token).Error
}

func (r *tokenRepository) FindVerificationByToken(ctx context.Context, token string) (*models.EmailVerificationToken, error) {
	var vt models.EmailVerificationToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&vt).Error; err != nil {
		return nil, err
	}
	return &vt, nil
}

func (r *tokenRepository) MarkVerificationUsedTx(tx *gorm.DB, token *models.EmailVerificationToken) error {
	token.IsUsed = true
	return tx.Save(token).Error
}
