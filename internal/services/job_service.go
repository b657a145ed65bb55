package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/logger"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
	"github.com/kunalaswar/HireFlow/internal/utils"
)

// Yearly salaries are entered in lakhs per annum and stored as absolute
// figures. Anything under this threshold on the way in gets multiplied up.
const (
	lakh               = 100000.0
	lakhInputThreshold = 1000.0
	maxYearlyLakhs     = 100.0
)

type JobService struct {
	jobRepo repositories.JobRepository
}

func NewJobService(jobRepo repositories.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

func toStoredSalary(st models.SalaryType, v *float64) *float64 {
	if v == nil || st != models.SalaryYearly {
		return v
	}
	if *v < lakhInputThreshold {
		abs := *v * lakh
		return &abs
	}
	return v
}

func toDisplaySalary(st models.SalaryType, v *float64) *float64 {
	if v == nil || st != models.SalaryYearly {
		return v
	}
	display := *v / lakh
	return &display
}

func validateYearlySalaryInput(st models.SalaryType, min, max *float64) error {
	if st != models.SalaryYearly {
		return nil
	}
	for _, v := range []*float64{min, max} {
		if v != nil && (*v < 0 || *v > maxYearlyLakhs) {
			return apperrors.ValidationError(map[string]string{
				"salary": fmt.Sprintf("Yearly salary must be between 0 and %.0f lakhs per annum", maxYearlyLakhs),
			})
		}
	}
	return nil
}

func validateRanges(minSalary, maxSalary, minExp, maxExp *float64) error {
	if minSalary != nil && maxSalary != nil && *minSalary > *maxSalary {
		return apperrors.ValidationError(map[string]string{
			"salary": "Minimum salary cannot exceed maximum salary",
		})
	}
	if minExp != nil && maxExp != nil && *minExp > *maxExp {
		return apperrors.ValidationError(map[string]string{
			"experience": "Minimum experience cannot exceed maximum experience",
		})
	}
	return nil
}

// uniqueSlug slugifies the title and appends -2, -3, ... until the slug is
// free. Deleted jobs keep their slugs reserved.
func (s *JobService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := utils.Slugify(title)
	if base == "" {
		base = "job"
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.jobRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Create publishes a new posting owned by the calling HR user. Admin
// accounts are read-only on jobs.
func (s *JobService) Create(ctx context.Context, actor *models.User, req dto.CreateJobRequest) (*dto.JobResponse, error) {
	if !auth.Allowed(actor.Role, auth.OpJobCreate) {
		return nil, apperrors.ErrAdminReadOnly
	}

	salaryType := models.SalaryType(req.SalaryType)
	if err := validateYearlySalaryInput(salaryType, req.MinSalary, req.MaxSalary); err != nil {
		return nil, err
	}
	if err := validateRanges(req.MinSalary, req.MaxSalary, req.MinExperience, req.MaxExperience); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	vacancies := req.Vacancies
	if vacancies == 0 {
		vacancies = 1
	}

	job := &models.Job{
		Title:             req.Title,
		Slug:              slug,
		Description:       req.Description,
		MinExperience:     req.MinExperience,
		MaxExperience:     req.MaxExperience,
		SalaryType:        salaryType,
		MinSalary:         toStoredSalary(salaryType, req.MinSalary),
		MaxSalary:         toStoredSalary(salaryType, req.MaxSalary),
		Location:          req.Location,
		WorkMode:          models.WorkMode(req.WorkMode),
		EmploymentType:    models.EmploymentType(req.EmploymentType),
		RequiredEducation: req.RequiredEducation,
		Vacancies:         vacancies,
		Deadline:          req.Deadline,
		CreatedByID:       &actor.ID,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job created", "job_id", job.ID, "slug", job.Slug)
	resp := s.toResponse(job)
	return &resp, nil
}

// Update applies a partial edit. Only the posting's owner may touch it.
func (s *JobService) Update(ctx context.Context, actor *models.User, jobID string, req dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findOwned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != job.Title {
		job.Title = *req.Title
		// The slug stays stable across edits: tracking links and applied
		// bookmarks must keep resolving.
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.MinExperience != nil {
		job.MinExperience = req.MinExperience
	}
	if req.MaxExperience != nil {
		job.MaxExperience = req.MaxExperience
	}
	if req.SalaryType != nil {
		job.SalaryType = models.SalaryType(*req.SalaryType)
	}
	if req.MinSalary != nil || req.MaxSalary != nil {
		if err := validateYearlySalaryInput(job.SalaryType, req.MinSalary, req.MaxSalary); err != nil {
			return nil, err
		}
		if req.MinSalary != nil {
			job.MinSalary = toStoredSalary(job.SalaryType, req.MinSalary)
		}
		if req.MaxSalary != nil {
			job.MaxSalary = toStoredSalary(job.SalaryType, req.MaxSalary)
		}
	}
	if err := validateRanges(job.MinSalary, job.MaxSalary, job.MinExperience, job.MaxExperience); err != nil {
		return nil, err
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.WorkMode != nil {
		job.WorkMode = models.WorkMode(*req.WorkMode)
	}
	if req.EmploymentType != nil {
		job.EmploymentType = models.EmploymentType(*req.EmploymentType)
	}
	if req.RequiredEducation != nil {
		job.RequiredEducation = *req.RequiredEducation
	}
	if req.Vacancies != nil {
		job.Vacancies = *req.Vacancies
	}
	if req.Deadline != nil {
		job.Deadline = req.Deadline
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job updated", "job_id", job.ID)
	resp := s.toResponse(job)
	return &resp, nil
}

// Delete soft-deletes the posting; applications and the slug survive.
func (s *JobService) Delete(ctx context.Context, actor *models.User, jobID string) error {
	job, err := s.findOwned(ctx, actor, jobID)
	if err != nil {
		return err
	}
	if err := s.jobRepo.SoftDelete(ctx, job.ID); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "job deleted", "job_id", job.ID)
	return nil
}

func (s *JobService) findOwned(ctx context.Context, actor *models.User, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if auth.IsAdmin(actor.Role) {
		return nil, apperrors.ErrAdminReadOnly
	}
	if job.CreatedByID == nil || *job.CreatedByID != actor.ID {
		return nil, apperrors.ErrJobForbidden
	}
	return job, nil
}

// GetForEdit loads an owned posting with salaries converted back to the
// entry scale, for pre-filling the edit form.
func (s *JobService) GetForEdit(ctx context.Context, actor *models.User, jobID string) (*dto.JobResponse, error) {
	job, err := s.findOwned(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(job)
	return &resp, nil
}

// PublicList serves the job board: filters, sort and the global salary
// bounds for the filter UI.
func (s *JobService) PublicList(ctx context.Context, query dto.JobListQuery) (*dto.JobListResponse, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 20
	}

	jobs, total, err := s.jobRepo.PublicList(ctx, repositories.PublicJobFilter{
		Search:         query.Search,
		Location:       query.Location,
		WorkMode:       query.WorkMode,
		EmploymentType: query.EmploymentType,
		SalaryMin:      query.SalaryMin,
		SalaryMax:      query.SalaryMax,
		Sort:           query.Sort,
		Page:           page,
		PerPage:        perPage,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	bounds, err := s.jobRepo.GlobalSalaryBounds(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.JobListResponse{
		Jobs:      make([]dto.JobResponse, 0, len(jobs)),
		Total:     total,
		Page:      page,
		PerPage:   perPage,
		SalaryMin: bounds.Min,
		SalaryMax: bounds.Max,
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, s.toResponse(&jobs[i]))
	}
	return resp, nil
}

func (s *JobService) GetBySlug(ctx context.Context, slug string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := s.toResponse(job)
	return &resp, nil
}

// ListMine returns the HR user's own postings with application counts.
func (s *JobService) ListMine(ctx context.Context, actor *models.User, query dto.MyJobsQuery) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListByCreator(ctx, actor.ID, repositories.CreatorJobFilter{
		Search:   query.Search,
		Location: query.Location,
		WorkMode: query.WorkMode,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, s.toResponse(&jobs[i]))
	}
	return out, nil
}

// ListAll is the admin view: every visible posting, whoever owns it. Admins
// read, they never edit.
func (s *JobService) ListAll(ctx context.Context, actor *models.User, query dto.AdminJobsQuery) (*dto.JobListResponse, error) {
	if !auth.Allowed(actor.Role, auth.OpAdminView) {
		return nil, apperrors.NewForbiddenError("Admin access required")
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 20
	}

	jobs, total, err := s.jobRepo.ListAll(ctx, query.Search, page, perPage)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.JobListResponse{
		Jobs:    make([]dto.JobResponse, 0, len(jobs)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, s.toResponse(&jobs[i]))
	}
	return resp, nil
}

// GetForAdmin loads any visible posting for the admin detail page.
func (s *JobService) GetForAdmin(ctx context.Context, actor *models.User, jobID string) (*dto.JobResponse, error) {
	if !auth.Allowed(actor.Role, auth.OpAdminView) {
		return nil, apperrors.NewForbiddenError("Admin access required")
	}

	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := s.toResponse(job)
	return &resp, nil
}

func (s *JobService) toResponse(job *models.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:                job.ID,
		Title:             job.Title,
		Slug:              job.Slug,
		Description:       job.Description,
		MinExperience:     job.MinExperience,
		MaxExperience:     job.MaxExperience,
		SalaryType:        job.SalaryType,
		MinSalary:         toDisplaySalary(job.SalaryType, job.MinSalary),
		MaxSalary:         toDisplaySalary(job.SalaryType, job.MaxSalary),
		Location:          job.Location,
		WorkMode:          job.WorkMode,
		EmploymentType:    job.EmploymentType,
		RequiredEducation: job.RequiredEducation,
		Vacancies:         job.Vacancies,
		Deadline:          job.Deadline,
		ApplicationsCount: job.ApplicationsCount,
		CreatedAt:         job.CreatedAt,
	}
}
