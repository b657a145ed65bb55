package models

import "time"

// Job is a posting owned by an HR user. Deleting the owner nulls CreatedByID
// and the job survives; deleting the job cascades to its applications. Soft
// delete hides the row from every query path but keeps it for history.
type Job struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`

	MinExperience *float64 `json:"min_experience"`
	MaxExperience *float64 `json:"max_experience"`

	// Salaries are stored as absolute yearly figures. Yearly salaries are
	// entered in lakhs (1 lakh = 100,000) and converted on save.
	SalaryType SalaryType `gorm:"type:varchar(20);not null;default:'yearly'" json:"salary_type"`
	MinSalary  *float64   `json:"min_salary"`
	MaxSalary  *float64   `json:"max_salary"`

	Location          string         `gorm:"size:255;not null" json:"location"`
	WorkMode          WorkMode       `gorm:"type:varchar(20);not null" json:"work_mode"`
	EmploymentType    EmploymentType `gorm:"type:varchar(20);not null;default:'full_time'" json:"employment_type"`
	RequiredEducation string         `gorm:"size:255" json:"required_education,omitempty"`
	Vacancies         uint           `gorm:"default:1" json:"vacancies"`
	Deadline          *time.Time     `json:"deadline"`

	CreatedByID *string `gorm:"type:uuid;index" json:"-"`
	CreatedBy   *User   `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`

	IsDeleted bool `gorm:"default:false;index" json:"-"`

	Applications []Application `gorm:"foreignKey:JobID" json:"-"`

	// Populated by list queries, not a column.
	ApplicationsCount int64 `gorm:"-" json:"applications_count,omitempty"`
}
