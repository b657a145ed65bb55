package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/middleware"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/services"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

type ApplicationHandler struct {
	BaseHandler
	appService *services.ApplicationService
	userRepo   repositories.UserRepository
}

func NewApplicationHandler(base BaseHandler, appService *services.ApplicationService, userRepo repositories.UserRepository) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, appService: appService, userRepo: userRepo}
}

func (h *ApplicationHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/apply/:slug", h.Apply)
	api.GET("/track/:code", h.Track)

	apps := api.Group("/applications", middleware.RequireAuth(h.userRepo), middleware.RequireOperation(auth.OpAppRead))
	{
		apps.GET("", h.List)
		apps.GET("/:id", h.Get)
		apps.GET("/:id/resume", middleware.RequireOperation(auth.OpAppResume), h.ResumeLink)
		apps.PATCH("/:id/status", middleware.RequireOperation(auth.OpAppStatus), h.UpdateStatus)
	}
}

// Apply accepts the public multipart application form: candidate fields
// plus a "resume" PDF part.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{"resume": "Resume is required"}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	resp, err := h.appService.Apply(c.Request.Context(), c.Param("slug"), req, services.ResumeUpload{
		Reader:      file,
		Size:        fileHeader.Size,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *ApplicationHandler) Track(c *gin.Context) {
	resp, err := h.appService.Track(c.Request.Context(), c.Param("code"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var query dto.ApplicationListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.appService.List(c.Request.Context(), user, query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	resp, err := h.appService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *ApplicationHandler) ResumeLink(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	url, err := h.appService.ResumeLink(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"url": url})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.appService.UpdateStatus(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
