package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
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
	"github.com/kunalaswar/HireFlow/internal/storage"
	"github.com/kunalaswar/HireFlow/internal/validator"
)

const resumeLinkTTL = 15 * time.Minute

// ResumeUpload describes the candidate's resume file before it is checked
// and stored.
type ResumeUpload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

type ApplicationService struct {
	appRepo       repositories.ApplicationRepository
	jobRepo       repositories.JobRepository
	store         storage.Storage
	mailer        *email.Mailer
	maxResumeSize int64
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	store storage.Storage,
	mailer *email.Mailer,
	maxResumeSize int64,
) *ApplicationService {
	return &ApplicationService{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		store:         store,
		mailer:        mailer,
		maxResumeSize: maxResumeSize,
	}
}

// Apply submits a candidate application to the job behind the slug. The
// order matters: duplicate and file checks run before the upload, and the
// tracking code is allocated only once the row is actually inserted.
func (s *ApplicationService) Apply(ctx context.Context, slug string, req dto.ApplyRequest, resume ResumeUpload) (*dto.ApplyResponse, error) {
	job, err := s.jobRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	phone, ok := validator.NormalizePhone(req.Phone)
	if !ok {
		return nil, apperrors.ValidationError(map[string]string{"phone": "Enter a valid phone number"})
	}

	exists, err := s.appRepo.ExistsForJobEmail(ctx, job.ID, req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	if err := s.validateResume(resume); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%s.pdf", job.Slug, uuid.NewString())
	if err := s.store.Save(ctx, path, resume.Reader, "application/pdf"); err != nil {
		return nil, apperrors.ErrStorageFailed(err)
	}

	resumeURL, err := s.store.GetURL(ctx, path)
	if err != nil {
		resumeURL = path
	}

	app := &models.Application{
		JobID:     job.ID,
		FullName:  strings.TrimSpace(req.FullName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     phone,
		ResumeURL: resumeURL,
		Status:    models.ApplicationStatusScreening,
	}
	if err := s.appRepo.CreateWithTrackingCode(ctx, app); err != nil {
		// The uploaded file is orphaned; remove it so storage does not
		// accumulate resumes with no application row.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.CtxWithError(ctx, "failed to clean up orphaned resume", delErr, "path", path)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application submitted",
		"application_id", app.ID, "job_id", job.ID, "tracking_code", app.TrackingCode)

	// Best effort: the application stands even if the confirmation mail
	// never leaves.
	if err := s.mailer.SendApplicationReceived(ctx, app.Email, app.FullName, job.Title, app.TrackingCode); err != nil {
		logger.CtxWithError(ctx, "failed to send application confirmation", err, "application_id", app.ID)
	}

	return &dto.ApplyResponse{TrackingCode: app.TrackingCode, JobTitle: job.Title}, nil
}

func (s *ApplicationService) validateResume(resume ResumeUpload) error {
	if resume.Reader == nil || resume.Size == 0 {
		return apperrors.ValidationError(map[string]string{"resume": "Resume is required"})
	}
	if !strings.EqualFold(filepath.Ext(resume.Filename), ".pdf") {
		return apperrors.ValidationError(map[string]string{"resume": "Resume must be a PDF file"})
	}
	if resume.Size > s.maxResumeSize {
		return apperrors.ValidationError(map[string]string{
			"resume": fmt.Sprintf("Resume must be at most %dMB", s.maxResumeSize/(1024*1024)),
		})
	}
	return nil
}

// UpdateStatus moves an application through the pipeline. Setting the
// status it already has is a no-op: nothing is written and no email goes
// out.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *models.User, appID string, req dto.UpdateStatusRequest) (*dto.ApplicationResponse, error) {
	status := models.ApplicationStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.ErrInvalidAppStatus
	}

	app, err := s.findOwned(ctx, actor, appID)
	if err != nil {
		return nil, err
	}

	if app.Status == status {
		resp := dto.NewApplicationResponse(app)
		return &resp, nil
	}

	app.Status = status
	if err := s.appRepo.UpdateStatus(ctx, app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "application status updated",
		"application_id", app.ID, "status", status)

	if err := s.mailer.SendStatusChanged(ctx, app.Email, app.FullName, app.Job.Title, app.TrackingCode, string(status)); err != nil {
		logger.CtxWithError(ctx, "failed to send status change email", err, "application_id", app.ID)
	}

	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// List returns the HR user's pipeline with per-status counts for the
// filter tabs.
func (s *ApplicationService) List(ctx context.Context, actor *models.User, query dto.ApplicationListQuery) (*dto.ApplicationListResponse, error) {
	apps, err := s.appRepo.ListForCreator(ctx, repositories.ApplicationFilter{
		CreatorID: actor.ID,
		JobID:     query.JobID,
		Search:    query.Search,
		Status:    query.Status,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	counts, err := s.appRepo.StatusCountsForCreator(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ApplicationListResponse{
		Applications: make([]dto.ApplicationResponse, 0, len(apps)),
		StatusCounts: counts,
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, dto.NewApplicationResponse(&apps[i]))
	}
	return resp, nil
}

func (s *ApplicationService) Get(ctx context.Context, actor *models.User, appID string) (*dto.ApplicationResponse, error) {
	app, err := s.findOwned(ctx, actor, appID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewApplicationResponse(app)
	return &resp, nil
}

// ResumeLink returns a short-lived signed URL for the stored resume.
func (s *ApplicationService) ResumeLink(ctx context.Context, actor *models.User, appID string) (string, error) {
	app, err := s.findOwned(ctx, actor, appID)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("%s/%s", app.Job.Slug, filepath.Base(app.ResumeURL))
	url, err := s.store.GetSignedURL(ctx, path, resumeLinkTTL)
	if err != nil {
		return "", apperrors.ErrStorageFailed(err)
	}
	return url, nil
}

// Track is the public, unauthenticated lookup by tracking code.
func (s *ApplicationService) Track(ctx context.Context, code string) (*dto.TrackResponse, error) {
	app, err := s.appRepo.FindByTrackingCode(ctx, strings.TrimSpace(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.TrackResponse{
		TrackingCode: app.TrackingCode,
		FullName:     app.FullName,
		Status:       app.Status,
		AppliedAt:    app.AppliedAt,
	}
	if app.Job != nil {
		resp.JobTitle = app.Job.Title
	}
	return resp, nil
}

// findOwned loads the application and checks the caller owns the posting
// it belongs to.
func (s *ApplicationService) findOwned(ctx context.Context, actor *models.User, appID string) (*models.Application, error) {
	app, err := s.appRepo.FindByID(ctx, appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if app.Job == nil || app.Job.IsDeleted {
		return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound)
	}
	if !auth.Allowed(actor.Role, auth.OpAppRead) {
		return nil, apperrors.NewForbiddenError("Not allowed to view applications")
	}
	if app.Job.CreatedByID == nil || *app.Job.CreatedByID != actor.ID {
		return nil, apperrors.ErrJobForbidden
	}
	return app, nil
}
