package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/email"
	"github.com/kunalaswar/HireFlow/internal/logger"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

const hrPageSize = 10

type AdminService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.TokenRepository
	jobRepo   repositories.JobRepository
	appRepo   repositories.ApplicationRepository
	mailer    *email.Mailer
}

func NewAdminService(
	userRepo repositories.UserRepository,
	tokenRepo repositories.TokenRepository,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	mailer *email.Mailer,
) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jobRepo:   jobRepo,
		appRepo:   appRepo,
		mailer:    mailer,
	}
}

// Dashboard aggregates the admin overview: live job and application
// counts, the pipeline breakdown and outstanding invites.
func (s *AdminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalJobs, err := s.jobRepo.CountVisible(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalApps, err := s.appRepo.CountAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	statusCounts, err := s.appRepo.StatusCounts(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	hrCount, err := s.userRepo.CountByRole(ctx, models.UserRoleHR)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	invites, err := s.tokenRepo.ListPendingInvites(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.DashboardResponse{
		TotalJobs:         totalJobs,
		TotalApplications: totalApps,
		StatusCounts:      statusCounts,
		HRCount:           hrCount,
		PendingInvites:    make([]dto.InviteResponse, 0, len(invites)),
	}
	for i := range invites {
		resp.PendingInvites = append(resp.PendingInvites, dto.NewInviteResponse(&invites[i]))
	}
	return resp, nil
}

func (s *AdminService) ListHR(ctx context.Context, query dto.HRListQuery) (*dto.HRListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	users, total, err := s.userRepo.ListHR(ctx, repositories.HRListFilter{
		Search:  query.Search,
		Page:    page,
		PerPage: hrPageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.HRListResponse{
		Users:   make([]dto.UserResponse, 0, len(users)),
		Total:   total,
		Page:    page,
		PerPage: hrPageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, dto.NewUserResponse(&users[i]))
	}
	return resp, nil
}

// SetActive suspends or reactivates an HR account. Admin accounts cannot
// be toggled through this path.
func (s *AdminService) SetActive(ctx context.Context, targetID string, active bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleHR {
		return nil, apperrors.NewForbiddenError("Only HR accounts can be suspended or activated")
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "hr account toggled", "user_id", user.ID, "active", active)
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// Invite sends an HR invitation. The email goes out first; the invite row
// is only written once delivery succeeded, so a pending invite always
// corresponds to a mail that actually left.
func (s *AdminService) Invite(ctx context.Context, inviter *models.User, req dto.InviteRequest) (*dto.InviteResponse, error) {
	inviteEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.FindByEmail(ctx, inviteEmail); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.tokenRepo.FindPendingInviteByEmail(ctx, inviteEmail); err == nil {
		return nil, apperrors.ErrInvitePending
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	token := uuid.NewString()
	if err := s.mailer.SendInvite(ctx, inviteEmail, inviter.Email, token); err != nil {
		logger.CtxWithError(ctx, "failed to send invite email", err, "email", inviteEmail)
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "invite",
			"Could not send the invitation email. Please try again.", 502)
	}

	invite := &models.Invite{
		Email:          inviteEmail,
		Token:          token,
		CreatedByID:    &inviter.ID,
		CreatedByEmail: inviter.Email,
		ExpiresAt:      time.Now().Add(inviteTTL),
	}
	if err := s.tokenRepo.CreateInvite(ctx, invite); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "hr invite sent", "email", inviteEmail, "invited_by", inviter.ID)
	resp := dto.NewInviteResponse(invite)
	return &resp, nil
}
