package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/services"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
	"github.com/kunalaswar/HireFlow/internal/validator"
)

// Home renders the public job board with search, filters and sorting.
func (w *Web) Home(c *gin.Context) {
	var query dto.JobListQuery
	_ = c.ShouldBindQuery(&query)

	list, err := w.services.Job.PublicList(c.Request.Context(), query)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "home.html", w.page(c, gin.H{
		"Title": "Open positions",
		"List":  list,
		"Query": query,
	}))
}

func (w *Web) JobDetail(c *gin.Context) {
	job, err := w.services.Job.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", w.page(c, gin.H{
			"Title": "Not found", "Message": "This job posting does not exist or has been removed.",
		}))
		return
	}

	c.HTML(http.StatusOK, "job_detail.html", w.page(c, gin.H{
		"Title": job.Title,
		"Job":   job,
	}))
}

func (w *Web) ApplyForm(c *gin.Context) {
	job, err := w.services.Job.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", w.page(c, gin.H{
			"Title": "Not found", "Message": "This job posting does not exist or has been removed.",
		}))
		return
	}

	c.HTML(http.StatusOK, "apply.html", w.page(c, gin.H{
		"Title": "Apply: " + job.Title,
		"Job":   job,
	}))
}

func (w *Web) ApplySubmit(c *gin.Context) {
	slug := c.Param("slug")

	job, err := w.services.Job.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", w.page(c, gin.H{
			"Title": "Not found", "Message": "This job posting does not exist or has been removed.",
		}))
		return
	}

	renderForm := func(status int, errMsg string) {
		c.HTML(status, "apply.html", w.page(c, gin.H{
			"Title": "Apply: " + job.Title,
			"Job":   job,
			"Error": errMsg,
			"Form": gin.H{
				"FullName": c.PostForm("full_name"),
				"Email":    c.PostForm("email"),
				"Phone":    c.PostForm("phone"),
			},
		}))
	}

	var req dto.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		renderForm(http.StatusBadRequest, "Please fill in all required fields.")
		return
	}
	if err := w.validator.Validate(&req); err != nil {
		var ve *validator.ValidationError
		msg := "Please check the form and try again."
		if ok := asValidationError(err, &ve); ok {
			msg = joinMessages(ve.Errors)
		}
		renderForm(http.StatusBadRequest, msg)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		renderForm(http.StatusBadRequest, "Please attach your resume as a PDF.")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		renderForm(http.StatusInternalServerError, "Could not read the uploaded file.")
		return
	}
	defer file.Close()

	resp, err := w.services.Application.Apply(c.Request.Context(), slug, req, services.ResumeUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		renderForm(http.StatusBadRequest, errorMessage(err))
		return
	}

	c.HTML(http.StatusOK, "apply_success.html", w.page(c, gin.H{
		"Title":        "Application submitted",
		"TrackingCode": resp.TrackingCode,
		"JobTitle":     resp.JobTitle,
	}))
}

func (w *Web) TrackForm(c *gin.Context) {
	if code := c.Query("code"); code != "" {
		c.Redirect(http.StatusFound, "/track/"+code)
		return
	}
	c.HTML(http.StatusOK, "track.html", w.page(c, gin.H{"Title": "Track your application"}))
}

func (w *Web) TrackResult(c *gin.Context) {
	result, err := w.services.Application.Track(c.Request.Context(), c.Param("code"))
	if err != nil {
		c.HTML(http.StatusNotFound, "track.html", w.page(c, gin.H{
			"Title": "Track your application",
			"Error": "No application found for that tracking code.",
		}))
		return
	}

	c.HTML(http.StatusOK, "track.html", w.page(c, gin.H{
		"Title":  "Track your application",
		"Result": result,
	}))
}
