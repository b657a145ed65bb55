package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/models"
)

// PublicJobFilter narrows the public job board listing.
type PublicJobFilter struct {
	Search         string
	Location       string
	WorkMode       string
	EmploymentType string
	SalaryMin      *float64
	SalaryMax      *float64
	Sort           string // salary_low, salary_high, newest (default)
	Page           int
	PerPage        int
}

// SalaryBounds is the global min/max over all visible postings, used to
// seed the board's salary slider. Nil when no posting discloses a salary.
type SalaryBounds struct {
	Min *float64
	Max *float64
}

// CreatorJobFilter narrows an HR user's own postings list.
type CreatorJobFilter struct {
	Search   string
	Location string
	WorkMode string
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	SoftDelete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Job, error)
	FindBySlug(ctx context.Context, slug string) (*models.Job, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	PublicList(ctx context.Context, filter PublicJobFilter) ([]models.Job, int64, error)
	ListByCreator(ctx context.Context, creatorID string, filter CreatorJobFilter) ([]models.Job, error)
	ListAll(ctx context.Context, search string, page, perPage int) ([]models.Job, int64, error)
	GlobalSalaryBounds(ctx context.Context) (SalaryBounds, error)
	CountVisible(ctx context.Context) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// visible is the single place the soft-delete filter is applied. Every read
// path goes through it; a job with is_deleted set is invisible everywhere.
func (r *jobRepository) visible(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Job{}).Where("is_deleted = ?", false)
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) SoftDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.visible(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) FindBySlug(ctx context.Context, slug string) (*models.Job, error) {
	var job models.Job
	if err := r.visible(ctx).Where("slug = ?", slug).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// SlugExists considers deleted jobs too: their slugs stay reserved so a
// tracking link never flips to a different posting.
func (r *jobRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *jobRepository) PublicList(ctx context.Context, filter PublicJobFilter) ([]models.Job, int64, error) {
	query := r.visible(ctx)

	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if l := strings.TrimSpace(filter.Location); l != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(l)+"%")
	}
	if filter.WorkMode != "" {
		query = query.Where("work_mode = ?", filter.WorkMode)
	}
	if filter.EmploymentType != "" {
		query = query.Where("employment_type = ?", filter.EmploymentType)
	}
	// Salary bounds skip postings that do not disclose a range.
	if filter.SalaryMin != nil {
		query = query.Where("max_salary IS NOT NULL AND max_salary >= ?", *filter.SalaryMin)
	}
	if filter.SalaryMax != nil {
		query = query.Where("min_salary IS NOT NULL AND min_salary <= ?", *filter.SalaryMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case "salary_low":
		query = query.Order("min_salary IS NULL, min_salary ASC")
	case "salary_high":
		query = query.Order("max_salary IS NULL, max_salary DESC")
	default:
		query = query.Order("created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	var jobs []models.Job
	err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// ListByCreator returns an HR user's own postings, newest first, with
// per-job application counts filled in.
func (r *jobRepository) ListByCreator(ctx context.Context, creatorID string, filter CreatorJobFilter) ([]models.Job, error) {
	query := r.visible(ctx).Where("created_by_id = ?", creatorID)
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if l := strings.TrimSpace(filter.Location); l != "" {
		query = query.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(l)+"%")
	}
	if filter.WorkMode != "" {
		query = query.Where("work_mode = ?", filter.WorkMode)
	}

	var jobs []models.Job
	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	if err := r.fillApplicationCounts(ctx, jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListAll is the admin view over every visible posting, regardless of owner.
func (r *jobRepository) ListAll(ctx context.Context, search string, page, perPage int) ([]models.Job, int64, error) {
	query := r.visible(ctx)
	if s := strings.TrimSpace(search); s != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var jobs []models.Job
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	if err := r.fillApplicationCounts(ctx, jobs); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepository) fillApplicationCounts(ctx context.Context, jobs []models.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}

	type jobCount struct {
		JobID string
		Count int64
	}
	var counts []jobCount
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id IN ?", ids).
		Group("job_id").
		Scan(&counts).Error
	if err != nil {
		return err
	}

	byJob := make(map[string]int64, len(counts))
	for _, c := range counts {
		byJob[c.JobID] = c.Count
	}
	for i := range jobs {
		jobs[i].ApplicationsCount = byJob[jobs[i].ID]
	}
	return nil
}

func (r *jobRepository) GlobalSalaryBounds(ctx context.Context) (SalaryBounds, error) {
	var bounds SalaryBounds
	err := r.visible(ctx).
		Select("MIN(min_salary) AS min, MAX(max_salary) AS max").
		Scan(&bounds).Error
	return bounds, err
}

func (r *jobRepository) CountVisible(ctx context.Context) (int64, error) {
	var count int64
	err := r.visible(ctx).Count(&count).Error
	return count, err
}
