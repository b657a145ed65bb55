package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

// AdminDashboard shows platform metrics, the pipeline breakdown and
// pending invitations.
func (w *Web) AdminDashboard(c *gin.Context) {
	if _, ok := w.requireRole(c, models.UserRoleAdmin, models.UserRoleSuperuser); !ok {
		return
	}

	dash, err := w.services.Admin.Dashboard(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", w.page(c, gin.H{
		"Title":     "Admin dashboard",
		"Dashboard": dash,
		"Statuses":  models.ApplicationStatuses,
		"Error":     c.Query("error"),
		"Success":   c.Query("success"),
	}))
}

// AdminHRList is the paginated HR roster with search.
func (w *Web) AdminHRList(c *gin.Context) {
	if _, ok := w.requireRole(c, models.UserRoleAdmin, models.UserRoleSuperuser); !ok {
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	query := dto.HRListQuery{Search: c.Query("search"), Page: page}

	list, err := w.services.Admin.ListHR(c.Request.Context(), query)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}

	totalPages := int((list.Total + int64(list.PerPage) - 1) / int64(list.PerPage))

	c.HTML(http.StatusOK, "admin_hr.html", w.page(c, gin.H{
		"Title":      "HR accounts",
		"List":       list,
		"Search":     query.Search,
		"TotalPages": totalPages,
		"PrevPage":   list.Page - 1,
		"NextPage":   list.Page + 1,
		"Error":      c.Query("error"),
		"Success":    c.Query("success"),
	}))
}

// AdminJobs lists every live posting across all HR users, read-only.
func (w *Web) AdminJobs(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleAdmin, models.UserRoleSuperuser)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	query := dto.AdminJobsQuery{Search: c.Query("search"), Page: page}

	list, err := w.services.Job.ListAll(c.Request.Context(), user, query)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "error.html", w.page(c, gin.H{
			"Title": "Error", "Message": errorMessage(err),
		}))
		return
	}

	totalPages := int((list.Total + int64(list.PerPage) - 1) / int64(list.PerPage))

	c.HTML(http.StatusOK, "admin_jobs.html", w.page(c, gin.H{
		"Title":      "All postings",
		"List":       list,
		"Search":     query.Search,
		"TotalPages": totalPages,
		"PrevPage":   list.Page - 1,
		"NextPage":   list.Page + 1,
	}))
}

func (w *Web) AdminJobDetail(c *gin.Context) {
	user, ok := w.requireRole(c, models.UserRoleAdmin, models.UserRoleSuperuser)
	if !ok {
		return
	}

	job, err := w.services.Job.GetForAdmin(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "error.html", w.page(c, gin.H{
			"Title": "Not found", "Message": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "admin_job_detail.html", w.page(c, gin.H{
		"Title": job.Title,
		"Job":   job,
	}))
}

func (w *Web) AdminSuspend(c *gin.Context) {
	w.adminSetActive(c, false)
}

func (w *Web) AdminActivate(c *gin.Context) {
	w.adminSetActive(c, true)
}

func (w *Web) adminSetActive(c *gin.Context, active bool) {
	if _, ok := w.requireRole(c, models.UserRoleAdmin, models.UserRoleSuperuser); !ok {
		return
	}

	if _, err := w.services.Admin.SetActive(c.Request.Context(), c.Param("id"), active); err != nil {
		c.Redirect(http.StatusFound, "/dashboard/admin/hr?error="+flash(errorMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/dashboard/admin/hr?success=Account+updated")
}

func (w *Web) AdminInvite(c *gin.Context) {
	admin, ok := w.requireRole(c, models.UserRoleAdmin, models.UserRoleSuperuser)
	if !ok {
		return
	}

	req := dto.InviteRequest{Email: strings.TrimSpace(c.PostForm("email"))}
	if err := w.validator.Validate(&req); err != nil {
		c.Redirect(http.StatusFound, "/dashboard/admin?error=Enter+a+valid+email+address")
		return
	}

	if _, err := w.services.Admin.Invite(c.Request.Context(), admin, req); err != nil {
		c.Redirect(http.StatusFound, "/dashboard/admin?error="+flash(errorMessage(err)))
		return
	}
	c.Redirect(http.StatusFound, "/dashboard/admin?success=Invitation+sent")
}

func flash(msg string) string {
	return url.QueryEscape(msg)
}
