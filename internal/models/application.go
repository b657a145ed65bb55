package models

import "time"

// Application is a candidate submission for one job. The (job, email) pair
// is unique: a candidate applies to a job at most once. Applications are
// hard-deleted together with their job.
type Application struct {
	BaseModel
	JobID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_email" json:"job_id"`
	Job   *Job   `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`

	// TrackingCode is the human-facing identifier (HF-0001, HF-0002, ...)
	// mailed to the candidate for unauthenticated status lookup.
	TrackingCode string `gorm:"size:20;uniqueIndex" json:"tracking_code"`

	FullName  string `gorm:"size:255;not null" json:"full_name"`
	Email     string `gorm:"size:255;not null;uniqueIndex:idx_applications_job_email" json:"email"`
	Phone     string `gorm:"size:20;not null" json:"phone"`
	ResumeURL string `gorm:"size:500" json:"resume_url"`

	Status ApplicationStatus `gorm:"type:varchar(20);not null;default:'screening'" json:"status"`

	AppliedAt time.Time `gorm:"autoCreateTime" json:"applied_at"`
}

// TrackingSequence is the single-row counter behind tracking codes. It is
// incremented inside a transaction so concurrent submissions serialize on
// the row instead of racing a max()+1 read.
type TrackingSequence struct {
	Name  string `gorm:"primaryKey;size:50"`
	Value int64  `gorm:"not null"`
}

const ApplicationSequence = "applications"
