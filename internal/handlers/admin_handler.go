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

type AdminHandler struct {
	BaseHandler
	adminService *services.AdminService
	userRepo     repositories.UserRepository
}

func NewAdminHandler(base BaseHandler, adminService *services.AdminService, userRepo repositories.UserRepository) *AdminHandler {
	return &AdminHandler{BaseHandler: base, adminService: adminService, userRepo: userRepo}
}

func (h *AdminHandler) RegisterRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", middleware.RequireAuth(h.userRepo), middleware.RequireOperation(auth.OpAdminView))
	{
		admin.GET("/dashboard", h.Dashboard)
		admin.GET("/hr", middleware.RequireOperation(auth.OpHRManage), h.ListHR)
		admin.PATCH("/hr/:id/suspend", middleware.RequireOperation(auth.OpHRManage), h.Suspend)
		admin.PATCH("/hr/:id/activate", middleware.RequireOperation(auth.OpHRManage), h.Activate)
		admin.POST("/invites", middleware.RequireOperation(auth.OpInviteSend), h.Invite)
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	resp, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AdminHandler) ListHR(c *gin.Context) {
	var query dto.HRListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.adminService.ListHR(c.Request.Context(), query)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AdminHandler) Suspend(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AdminHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AdminHandler) setActive(c *gin.Context, active bool) {
	resp, err := h.adminService.SetActive(c.Request.Context(), c.Param("id"), active)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AdminHandler) Invite(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.InviteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.adminService.Invite(c.Request.Context(), user, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
