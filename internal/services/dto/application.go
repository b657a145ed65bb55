package dto

import (
	"time"

	"github.com/kunalaswar/HireFlow/internal/models"
)

// ApplyRequest is the candidate form. The resume file arrives separately as
// multipart content and is validated by the service.
type ApplyRequest struct {
	FullName string `json:"full_name" form:"full_name" validate:"required,candidate_name"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone" validate:"required,phone"`
}

type ApplyResponse struct {
	TrackingCode string `json:"tracking_code"`
	JobTitle     string `json:"job_title"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,app_status"`
}

type ApplicationListQuery struct {
	JobID  string `form:"job_id"`
	Search string `form:"search"`
	Status string `form:"status" validate:"omitempty,app_status"`
}

type ApplicationResponse struct {
	ID           string                   `json:"id"`
	TrackingCode string                   `json:"tracking_code"`
	FullName     string                   `json:"full_name"`
	Email        string                   `json:"email"`
	Phone        string                   `json:"phone"`
	ResumeURL    string                   `json:"resume_url,omitempty"`
	Status       models.ApplicationStatus `json:"status"`
	JobID        string                   `json:"job_id"`
	JobTitle     string                   `json:"job_title,omitempty"`
	JobSlug      string                   `json:"job_slug,omitempty"`
	AppliedAt    time.Time                `json:"applied_at"`
}

func NewApplicationResponse(a *models.Application) ApplicationResponse {
	resp := ApplicationResponse{
		ID:           a.ID,
		TrackingCode: a.TrackingCode,
		FullName:     a.FullName,
		Email:        a.Email,
		Phone:        a.Phone,
		ResumeURL:    a.ResumeURL,
		Status:       a.Status,
		JobID:        a.JobID,
		AppliedAt:    a.AppliedAt,
	}
	if a.Job != nil {
		resp.JobTitle = a.Job.Title
		resp.JobSlug = a.Job.Slug
	}
	return resp
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse              `json:"applications"`
	StatusCounts map[models.ApplicationStatus]int64 `json:"status_counts"`
}

// TrackResponse is the public, unauthenticated view of an application.
// It deliberately omits contact details and the resume.
type TrackResponse struct {
	TrackingCode string                   `json:"tracking_code"`
	FullName     string                   `json:"full_name"`
	JobTitle     string                   `json:"job_title"`
	Status       models.ApplicationStatus `json:"status"`
	AppliedAt    time.Time                `json:"applied_at"`
}
