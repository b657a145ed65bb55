package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/middleware"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/services"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

type AuthHandler struct {
	BaseHandler
	authService *services.AuthService
	userRepo    repositories.UserRepository
	rateLimiter gin.HandlerFunc
}

func NewAuthHandler(base BaseHandler, authService *services.AuthService, userRepo repositories.UserRepository, rateLimiter gin.HandlerFunc) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		userRepo:    userRepo,
		rateLimiter: rateLimiter,
	}
}

func (h *AuthHandler) RegisterRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.rateLimiter, h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/verify-email", h.VerifyEmail)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password", h.ResetPassword)

		authGroup.GET("/me", middleware.RequireAuth(h.userRepo), h.Me)
		authGroup.PATCH("/profile", middleware.RequireAuth(h.userRepo), h.UpdateProfile)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// Logout is stateless on the API side; it clears the web session cookie
// for clients that carry one.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	h.NoContent(c)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Register is open self-registration; Signup above is the invite path.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var body struct {
			Token string `json:"token"`
		}
		_ = c.ShouldBindJSON(&body)
		token = body.Token
	}
	if token == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Verification token is required"))
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Email verified. You can now log in."})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	err := h.authService.ForgotPassword(c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"message": "If the email is registered, a reset link has been sent.",
	}})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"message": "Password updated. Please log in."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	resp, err := h.authService.Me(c.Request.Context(), user.ID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := h.MustCurrentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
