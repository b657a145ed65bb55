package dto

import (
	"time"

	"github.com/kunalaswar/HireFlow/internal/models"
)

type CreateJobRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=3,max=255"`
	Description string `json:"description" form:"description" validate:"required"`

	MinExperience *float64 `json:"min_experience" form:"min_experience" validate:"omitempty,gte=0"`
	MaxExperience *float64 `json:"max_experience" form:"max_experience" validate:"omitempty,gte=0"`

	// Yearly salaries are entered in lakhs (0-100) and converted to absolute
	// figures on save.
	SalaryType string   `json:"salary_type" form:"salary_type" validate:"required,oneof=yearly monthly negotiable not_disclosed"`
	MinSalary  *float64 `json:"min_salary" form:"min_salary" validate:"omitempty,gte=0"`
	MaxSalary  *float64 `json:"max_salary" form:"max_salary" validate:"omitempty,gte=0"`

	Location          string     `json:"location" form:"location" validate:"required,max=255"`
	WorkMode          string     `json:"work_mode" form:"work_mode" validate:"required,oneof=onsite remote hybrid"`
	EmploymentType    string     `json:"employment_type" form:"employment_type" validate:"required,oneof=full_time part_time contract internship"`
	RequiredEducation string     `json:"required_education" form:"required_education" validate:"omitempty,max=255"`
	Vacancies         uint       `json:"vacancies" form:"vacancies" validate:"omitempty,gte=1"`
	Deadline          *time.Time `json:"deadline" form:"deadline"`
}

// UpdateJobRequest carries partial updates; nil fields stay untouched.
type UpdateJobRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=3,max=255"`
	Description *string `json:"description" form:"description"`

	MinExperience *float64 `json:"min_experience" form:"min_experience" validate:"omitempty,gte=0"`
	MaxExperience *float64 `json:"max_experience" form:"max_experience" validate:"omitempty,gte=0"`

	SalaryType *string  `json:"salary_type" form:"salary_type" validate:"omitempty,oneof=yearly monthly negotiable not_disclosed"`
	MinSalary  *float64 `json:"min_salary" form:"min_salary" validate:"omitempty,gte=0"`
	MaxSalary  *float64 `json:"max_salary" form:"max_salary" validate:"omitempty,gte=0"`

	Location          *string    `json:"location" form:"location" validate:"omitempty,max=255"`
	WorkMode          *string    `json:"work_mode" form:"work_mode" validate:"omitempty,oneof=onsite remote hybrid"`
	EmploymentType    *string    `json:"employment_type" form:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	RequiredEducation *string    `json:"required_education" form:"required_education" validate:"omitempty,max=255"`
	Vacancies         *uint      `json:"vacancies" form:"vacancies" validate:"omitempty,gte=1"`
	Deadline          *time.Time `json:"deadline" form:"deadline"`
}

// MyJobsQuery narrows the HR "my postings" list.
type MyJobsQuery struct {
	Search   string `form:"search"`
	Location string `form:"location"`
	WorkMode string `form:"work_mode" validate:"omitempty,oneof=onsite remote hybrid"`
}

// AdminJobsQuery pages through every posting, for the admin view.
type AdminJobsQuery struct {
	Search  string `form:"search"`
	Page    int    `form:"page" validate:"omitempty,gte=1"`
	PerPage int    `form:"per_page" validate:"omitempty,gte=1,lte=100"`
}

type JobListQuery struct {
	Search         string   `form:"search"`
	Location       string   `form:"location"`
	WorkMode       string   `form:"work_mode" validate:"omitempty,oneof=onsite remote hybrid"`
	EmploymentType string   `form:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	SalaryMin      *float64 `form:"salary_min" validate:"omitempty,gte=0"`
	SalaryMax      *float64 `form:"salary_max" validate:"omitempty,gte=0"`
	Sort           string   `form:"sort" validate:"omitempty,oneof=salary_low salary_high newest"`
	Page           int      `form:"page" validate:"omitempty,gte=1"`
	PerPage        int      `form:"per_page" validate:"omitempty,gte=1,lte=100"`
}

// JobResponse is the API/web view of a posting. Yearly salaries come back
// in lakhs, matching how they were entered.
type JobResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`

	MinExperience *float64 `json:"min_experience,omitempty"`
	MaxExperience *float64 `json:"max_experience,omitempty"`

	SalaryType models.SalaryType `json:"salary_type"`
	MinSalary  *float64          `json:"min_salary,omitempty"`
	MaxSalary  *float64          `json:"max_salary,omitempty"`

	Location          string                `json:"location"`
	WorkMode          models.WorkMode       `json:"work_mode"`
	EmploymentType    models.EmploymentType `json:"employment_type"`
	RequiredEducation string                `json:"required_education,omitempty"`
	Vacancies         uint                  `json:"vacancies"`
	Deadline          *time.Time            `json:"deadline,omitempty"`

	ApplicationsCount int64     `json:"applications_count,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type JobListResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	Total     int64         `json:"total"`
	Page      int           `json:"page"`
	PerPage   int           `json:"per_page"`
	SalaryMin *float64      `json:"salary_min,omitempty"`
	SalaryMax *float64      `json:"salary_max,omitempty"`
}
