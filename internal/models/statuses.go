package models

type UserRole string
type ApplicationStatus string
type WorkMode string
type EmploymentType string
type SalaryType string

const (
	UserRoleSuperuser UserRole = "SUPERUSER"
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleHR        UserRole = "HR"

	ApplicationStatusScreening ApplicationStatus = "screening"
	ApplicationStatusReview    ApplicationStatus = "review"
	ApplicationStatusInterview ApplicationStatus = "interview"
	ApplicationStatusHired     ApplicationStatus = "hired"
	ApplicationStatusRejected  ApplicationStatus = "rejected"

	WorkModeOnsite WorkMode = "onsite"
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"

	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"

	SalaryYearly       SalaryType = "yearly"
	SalaryMonthly      SalaryType = "monthly"
	SalaryNegotiable   SalaryType = "negotiable"
	SalaryNotDisclosed SalaryType = "not_disclosed"
)

// ApplicationStatuses lists every status in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusScreening,
	ApplicationStatusReview,
	ApplicationStatusInterview,
	ApplicationStatusHired,
	ApplicationStatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleSuperuser, UserRoleAdmin, UserRoleHR:
		return true
	}
	return false
}

func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeOnsite, WorkModeRemote, WorkModeHybrid:
		return true
	}
	return false
}

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

func (t SalaryType) Valid() bool {
	switch t {
	case SalaryYearly, SalaryMonthly, SalaryNegotiable, SalaryNotDisclosed:
		return true
	}
	return false
}
