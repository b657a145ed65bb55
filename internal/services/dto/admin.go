package dto

import (
	"time"

	"github.com/kunalaswar/HireFlow/internal/models"
)

type InviteRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type InviteResponse struct {
	Email          string    `json:"email"`
	CreatedByEmail string    `json:"created_by_email"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewInviteResponse(i *models.Invite) InviteResponse {
	return InviteResponse{
		Email:          i.Email,
		CreatedByEmail: i.CreatedByEmail,
		ExpiresAt:      i.ExpiresAt,
		CreatedAt:      i.CreatedAt,
	}
}

type HRListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page" validate:"omitempty,gte=1"`
}

type HRListResponse struct {
	Users   []UserResponse `json:"users"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// DashboardResponse aggregates the admin overview metrics.
type DashboardResponse struct {
	TotalJobs         int64                              `json:"total_jobs"`
	TotalApplications int64                              `json:"total_applications"`
	StatusCounts      map[models.ApplicationStatus]int64 `json:"status_counts"`
	HRCount           int64                              `json:"hr_count"`
	PendingInvites    []InviteResponse                   `json:"pending_invites"`
}
