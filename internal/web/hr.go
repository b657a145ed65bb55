package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

func parseFloatPtr(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseDatePtr(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

func parseUint(raw string, fallback uint) uint {
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || v == 0 {
		return fallback
	}
	return uint(v)
}

func jobRequestFromForm(c *gin.Context) dto.CreateJobRequest {
	return dto.CreateJobRequest{
		Title:             strings.TrimSpace(c.PostForm("title")),
		Description:       strings.TrimSpace(c.PostForm("description")),
		MinExperience:     parseFloatPtr(c.PostForm("min_experience")),
		MaxExperience:     parseFloatPtr(c.PostForm("max_experience")),
		SalaryType:        c.PostForm("salary_type"),
		MinSalary:         parseFloatPtr(c.PostForm("min_salary")),
		MaxSalary:         parseFloatPtr(c.PostForm("max_salary")),
		Location:          strings.TrimSpace(c.PostForm("location")),
		WorkMode:          c.PostForm("work_mode"),
		EmploymentType:    c.PostForm("employment_type"),
		RequiredEducation: strings.TrimSpace(c.PostForm("required_education")),
		Vacancies:         parseUint(c.PostForm("vacancies"), 1),
		Deadline:          parseDatePtr(c.PostForm("deadline")),
	}
}

// HRJobs lists the HR user's own postings with application counts.
func (w *Web) HRJobs(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}

	query := dto.MyJobsQuery{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		WorkMode: c.Query("work_mode"),
	}

	jobs, err := w.services.Job.ListMine(c.Request.Context(), user, query)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "hr_jobs.html", w.page(c, gin.H{
		"Title":    "My postings",
		"Jobs":     jobs,
		"Search":   query.Search,
		"Location": query.Location,
		"WorkMode": query.WorkMode,
	}))
}

func (w *Web) HRJobForm(c *gin.Context) {
	if _, ok := w.requireRole(c, models.UserRoleHR); !ok {
		return
	}
	c.HTML(http.StatusOK, "hr_job_form.html", w.page(c, gin.H{"Title": "New posting"}))
}

func (w *Web) HRJobCreate(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}

	req := jobRequestFromForm(c)
	if err := w.validator.Validate(&req); err != nil {
		c.HTML(http.StatusBadRequest, "hr_job_form.html", w.page(c, gin.H{
			"Title": "New posting",
			"Error": "Please check the form and try again.",
			"Form":  req,
		}))
		return
	}

	if _, err := w.services.Job.Create(c.Request.Context(), user, req); err != nil {
		c.HTML(http.StatusBadRequest, "hr_job_form.html", w.page(c, gin.H{
			"Title": "New posting",
			"Error": errorMessage(err),
			"Form":  req,
		}))
		return
	}
	c.Redirect(http.StatusFound, "/hr/jobs")
}

func (w *Web) HRJobEditForm(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}

	job, err := w.services.Job.GetForEdit(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", w.page(c, gin.H{
			"Title": "Not found", "Message": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "hr_job_form.html", w.page(c, gin.H{
		"Title": "Edit posting",
		"Job":   job,
	}))
}

func (w *Web) HRJobUpdate(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}

	form := jobRequestFromForm(c)
	req := dto.UpdateJobRequest{
		Title:             &form.Title,
		Description:       &form.Description,
		MinExperience:     form.MinExperience,
		MaxExperience:     form.MaxExperience,
		SalaryType:        &form.SalaryType,
		MinSalary:         form.MinSalary,
		MaxSalary:         form.MaxSalary,
		Location:          &form.Location,
		WorkMode:          &form.WorkMode,
		EmploymentType:    &form.EmploymentType,
		RequiredEducation: &form.RequiredEducation,
		Vacancies:         &form.Vacancies,
		Deadline:          form.Deadline,
	}

	if _, err := w.services.Job.Update(c.Request.Context(), user, c.Param("id"), req); err != nil {
		c.HTML(http.StatusBadRequest, "hr_job_form.html", w.page(c, gin.H{
			"Title": "Edit posting",
			"Error": errorMessage(err),
			"Form":  form,
		}))
		return
	}
	c.Redirect(http.StatusFound, "/hr/jobs")
}

func (w *Web) HRJobDelete(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}
	if err := w.services.Job.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}
	c.Redirect(http.StatusFound, "/hr/jobs")
}

// HRApplications shows the pipeline across the user's postings with
// name search and status tabs.
func (w *Web) HRApplications(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}

	query := dto.ApplicationListQuery{
		JobID:  c.Query("job_id"),
		Search: c.Query("search"),
		Status: c.Query("status"),
	}

	list, err := w.services.Application.List(c.Request.Context(), user, query)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "hr_applications.html", w.page(c, gin.H{
		"Title":    "Applications",
		"List":     list,
		"Query":    query,
		"Statuses": models.ApplicationStatuses,
	}))
}

func (w *Web) HRApplicationDetail(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}

	app, err := w.services.Application.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", w.page(c, gin.H{
			"Title": "Not found", "Message": errorMessage(err),
		}))
		return
	}

	// Resume links are signed and short-lived; failure to sign just drops
	// the link from the page.
	resumeURL, _ := w.services.Application.ResumeLink(c.Request.Context(), user, app.ID)

	c.HTML(http.StatusOK, "hr_application_detail.html", w.page(c, gin.H{
		"Title":       "Application " + app.TrackingCode,
		"Application": app,
		"ResumeURL":   resumeURL,
		"Statuses":    models.ApplicationStatuses,
	}))
}

func (w *Web) HRApplicationStatus(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleHR)
	if !ok {
		return
	}

	req := dto.UpdateStatusRequest{Status: c.PostForm("status")}
	if _, err := w.services.Application.UpdateStatus(c.Request.Context(), user, c.Param("id"), req); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}
	c.Redirect(http.StatusFound, "/hr/applications/"+c.Param("id"))
}
