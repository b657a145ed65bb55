package web

import (
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/middleware"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/services"
	"github.com/kunalaswar/HireFlow/internal/validator"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Web serves the server-rendered pages: the public job board, the HR
// console and the admin area. It reuses the same service layer as the API.
type Web struct {
	services  *services.ServiceContainer
	userRepo  repositories.UserRepository
	validator *validator.Validator
	jwtTTL    int // minutes, drives the session cookie lifetime
}

func New(sc *services.ServiceContainer, userRepo repositories.UserRepository, v *validator.Validator, jwtTTLMinutes int) *Web {
	return &Web{services: sc, userRepo: userRepo, validator: v, jwtTTL: jwtTTLMinutes}
}

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"title": func(s string) string {
			s = strings.ReplaceAll(s, "_", " ")
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}

// RegisterRoutes mounts the page routes on the engine root.
func (w *Web) RegisterRoutes(r *gin.Engine) {
	public := r.Group("", middleware.OptionalWebAuth(w.userRepo))
	{
		public.GET("/", w.Home)
		public.GET("/jobs/:slug", w.JobDetail)
		public.GET("/apply/:slug", w.ApplyForm)
		public.POST("/apply/:slug", w.ApplySubmit)
		public.GET("/track", w.TrackForm)
		public.GET("/track/:code", w.TrackResult)

		public.GET("/login", w.LoginForm)
		public.POST("/login", w.LoginSubmit)
		public.GET("/logout", w.Logout)
		public.GET("/signup", w.SignupForm)
		public.POST("/signup", w.SignupSubmit)
		public.GET("/verify-email", w.VerifyEmail)
		public.GET("/forgot-password", w.ForgotPasswordForm)
		public.POST("/forgot-password", w.ForgotPasswordSubmit)
		public.GET("/reset-password", w.ResetPasswordForm)
		public.POST("/reset-password", w.ResetPasswordSubmit)
	}

	authed := r.Group("", middleware.RequireWebAuth(w.userRepo))
	{
		authed.GET("/profile", w.Profile)
		authed.POST("/profile", w.ProfileSubmit)

		hr := authed.Group("/hr")
		{
			hr.GET("/jobs", w.HRJobs)
			hr.GET("/jobs/new", w.HRJobForm)
			hr.POST("/jobs/new", w.HRJobCreate)
			hr.GET("/jobs/:id/edit", w.HRJobEditForm)
			hr.POST("/jobs/:id/edit", w.HRJobUpdate)
			hr.POST("/jobs/:id/delete", w.HRJobDelete)
			hr.GET("/applications", w.HRApplications)
			hr.GET("/applications/:id", w.HRApplicationDetail)
			hr.POST("/applications/:id/status", w.HRApplicationStatus)
		}

		admin := authed.Group("/dashboard/admin")
		{
			admin.GET("", w.AdminDashboard)
			admin.GET("/jobs", w.AdminJobs)
			admin.GET("/jobs/:id", w.AdminJobDetail)
			admin.GET("/hr", w.AdminHRList)
			admin.POST("/hr/:id/suspend", w.AdminSuspend)
			admin.POST("/hr/:id/activate", w.AdminActivate)
			admin.POST("/invites", w.AdminInvite)
		}
	}
}

// page builds the common template context: the current user (if any) plus
// per-page data.
func (w *Web) page(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	return data
}

// renderError maps a service error onto the page's error banner.
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if details, ok := appErr.Details.(map[string]string); ok && len(details) > 0 {
			parts := make([]string, 0, len(details))
			for _, msg := range details {
				parts = append(parts, msg)
			}
			return strings.Join(parts, " ")
		}
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

func asValidationError(err error, target **validator.ValidationError) bool {
	return apperrors.As(err, target)
}

func joinMessages(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, msg := range m {
		parts = append(parts, msg)
	}
	return strings.Join(parts, " ")
}

func (w *Web) setSession(c *gin.Context, token string) {
	c.SetCookie(middleware.SessionCookie, token, w.jwtTTL*60, "/", "", false, true)
}

func (w *Web) clearSession(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
}

// requireRole renders a 403 page unless the current user has one of the
// roles. Used by HR and admin page handlers on top of RequireWebAuth.
func (w *Web) requireRole(c *gin.Context, roles ...models.UserRole) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return nil, false
	}
	for _, role := range roles {
		if user.Role == role {
			return user, true
		}
	}
	c.HTML(http.StatusForbidden, "error.html", w.page(c, gin.H{
		"Title":   "Forbidden",
		"Message": "You do not have access to this page.",
	}))
	c.Abort()
	return nil, false
}
