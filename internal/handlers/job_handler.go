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

type JobHandler struct {
	BaseHandler
	jobService *services.JobService
	userRepo   repositories.UserRepository
}

func NewJobHandler(base BaseHandler, jobService *services.JobService, userRepo repositories.UserRepository) *JobHandler {
	return &JobHandler{BaseHandler: base, jobService: jobService, userRepo: userRepo}
}

func (h *JobHandler) RegisterRoutes(api *gin.RouterGroup) {
	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.PublicList)

		authed := jobs.Group("", middleware.RequireAuth(h.userRepo))
		{
			authed.GET("/mine", middleware.RequireOperation(auth.OpJobRead), h.ListMine)
			authed.POST("/create", middleware.RequireOperation(auth.OpJobCreate), h.Create)
			authed.PATCH("/:id/update", middleware.RequireOperation(auth.OpJobUpdate), h.Update)
			authed.DELETE("/:id/delete", middleware.RequireOperation(auth.OpJobDelete), h.Delete)
		}

		// The wildcard name is shared with the mutation routes above; on
		// this route it carries the public slug.
		jobs.GET("/:id", h.GetBySlug)
	}
}

func (h *JobHandler) PublicList(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.jobService.PublicList(c.Request.Context(), query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *JobHandler) GetBySlug(c *gin.Context) {
	resp, err := h.jobService.GetBySlug(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var query dto.MyJobsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.jobService.ListMine(c.Request.Context(), user, query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *JobHandler) Create(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.Create(c.Request.Context(), user, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *JobHandler) Update(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.jobService.Update(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *JobHandler) Delete(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	if err := h.jobService.Delete(c.Request.Context(), user, c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
