package repositories

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/models"
)

// ApplicationFilter narrows the HR application pipeline view. CreatorID is
// mandatory: HR users only ever see applications to their own postings.
type ApplicationFilter struct {
	CreatorID string
	JobID     string
	Search    string
	Status    string
}

type ApplicationRepository interface {
	CreateWithTrackingCode(ctx context.Context, app *models.Application) error
	ExistsForJobEmail(ctx context.Context, jobID, email string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Application, error)
	FindByTrackingCode(ctx context.Context, code string) (*models.Application, error)
	ListForCreator(ctx context.Context, filter ApplicationFilter) ([]models.Application, error)
	StatusCountsForCreator(ctx context.Context, creatorID string) (map[models.ApplicationStatus]int64, error)
	UpdateStatus(ctx context.Context, app *models.Application) error
	CountAll(ctx context.Context) (int64, error)
	StatusCounts(ctx context.Context) (map[models.ApplicationStatus]int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// CreateWithTrackingCode allocates the next tracking code and inserts the
// application in one transaction. The counter row is incremented first, so
// concurrent submissions serialize on it and every code comes out unique
// and strictly increasing.
func (r *applicationRepository) CreateWithTrackingCode(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.TrackingSequence{}).
			Where("name = ?", models.ApplicationSequence).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("tracking sequence %q not seeded", models.ApplicationSequence)
		}

		var seq models.TrackingSequence
		if err := tx.Where("name = ?", models.ApplicationSequence).First(&seq).Error; err != nil {
			return err
		}

		app.TrackingCode = fmt.Sprintf("HF-%04d", seq.Value)
		return tx.Create(app).Error
	})
}

func (r *applicationRepository) ExistsForJobEmail(ctx context.Context, jobID, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND LOWER(email) = ?", jobID, strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Preload("Job").First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) FindByTrackingCode(ctx context.Context, code string) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).Preload("Job").
		Where("tracking_code = ?", code).
		First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// forCreator scopes applications to jobs owned by the HR user, skipping
// soft-deleted postings.
func (r *applicationRepository) forCreator(ctx context.Context, creatorID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.created_by_id = ? AND jobs.is_deleted = ?", creatorID, false)
}

func (r *applicationRepository) ListForCreator(ctx context.Context, filter ApplicationFilter) ([]models.Application, error) {
	query := r.forCreator(ctx, filter.CreatorID)

	if filter.JobID != "" {
		query = query.Where("applications.job_id = ?", filter.JobID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(applications.full_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}

	var apps []models.Application
	err := query.Preload("Job").
		Order("applications.applied_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *applicationRepository) StatusCountsForCreator(ctx context.Context, creatorID string) (map[models.ApplicationStatus]int64, error) {
	return scanStatusCounts(r.forCreator(ctx, creatorID))
}

// UpdateStatus persists only the status column.
func (r *applicationRepository) UpdateStatus(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Model(app).Update("status", app.Status).Error
}

func (r *applicationRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.is_deleted = ?", false).
		Count(&count).Error
	return count, err
}

// StatusCounts aggregates the pipeline across all non-deleted jobs, for the
// admin dashboard.
func (r *applicationRepository) StatusCounts(ctx context.Context) (map[models.ApplicationStatus]int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.is_deleted = ?", false)
	return scanStatusCounts(query)
}

func scanStatusCounts(query *gorm.DB) (map[models.ApplicationStatus]int64, error) {
	type statusCount struct {
		Status models.ApplicationStatus
		Count  int64
	}
	var rows []statusCount
	err := query.
		Select("applications.status AS status, COUNT(*) AS count").
		Group("applications.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ApplicationStatus]int64, len(models.ApplicationStatuses))
	for _, s := range models.ApplicationStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
