package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/middleware"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

func (w *Web) LoginForm(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, w.homeFor(c))
		return
	}
	c.HTML(http.StatusOK, "login.html", w.page(c, gin.H{"Title": "Log in"}))
}

func (w *Web) LoginSubmit(c *gin.Context) {
	req := dto.LoginRequest{
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}

	resp, err := w.services.Auth.Login(c.Request.Context(), req)
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", w.page(c, gin.H{
			"Title": "Log in",
			"Error": errorMessage(err),
			"Email": req.Email,
		}))
		return
	}

	w.setSession(c, resp.Token)

	next := c.Query("next")
	if next == "" || !strings.HasPrefix(next, "/") {
		next = w.homeForRole(resp.User.Role)
	}
	c.Redirect(http.StatusFound, next)
}

func (w *Web) Logout(c *gin.Context) {
	w.clearSession(c)
	c.Redirect(http.StatusFound, "/")
}

func (w *Web) homeFor(c *gin.Context) string {
	if user, ok := middleware.CurrentUser(c); ok {
		return w.homeForRole(user.Role)
	}
	return "/"
}

func (w *Web) homeForRole(role models.UserRole) string {
	if auth.IsAdmin(role) {
		return "/dashboard/admin"
	}
	return "/hr/jobs"
}

// SignupForm serves two flavours of the same page: with an invite token the
// email comes from the invite, without one it is open self-registration.
func (w *Web) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", w.page(c, gin.H{
		"Title": "Create your account",
		"Token": c.Query("token"),
	}))
}

func (w *Web) SignupSubmit(c *gin.Context) {
	token := c.PostForm("token")
	if token == "" {
		w.registerSubmit(c)
		return
	}

	req := dto.SignupRequest{
		Token:     token,
		FirstName: strings.TrimSpace(c.PostForm("first_name")),
		LastName:  strings.TrimSpace(c.PostForm("last_name")),
		Password:  c.PostForm("password"),
	}

	if err := w.validator.Validate(&req); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", w.page(c, gin.H{
			"Title": "Create your account",
			"Token": req.Token,
			"Error": "Please fill in all required fields.",
			"Form":  gin.H{"FirstName": req.FirstName, "LastName": req.LastName},
		}))
		return
	}

	if _, err := w.services.Auth.Signup(c.Request.Context(), req); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", w.page(c, gin.H{
			"Title": "Create your account",
			"Token": req.Token,
			"Error": errorMessage(err),
			"Form":  gin.H{"FirstName": req.FirstName, "LastName": req.LastName},
		}))
		return
	}

	c.HTML(http.StatusOK, "message.html", w.page(c, gin.H{
		"Title":   "Account created",
		"Heading": "You're all set",
		"Message": "Your account is ready. Log in to start posting jobs.",
		"Link":    "/login",
	}))
}

func (w *Web) registerSubmit(c *gin.Context) {
	req := dto.RegisterRequest{
		Email:     strings.TrimSpace(c.PostForm("email")),
		FirstName: strings.TrimSpace(c.PostForm("first_name")),
		LastName:  strings.TrimSpace(c.PostForm("last_name")),
		Password:  c.PostForm("password"),
	}

	form := gin.H{"Email": req.Email, "FirstName": req.FirstName, "LastName": req.LastName}

	if err := w.validator.Validate(&req); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", w.page(c, gin.H{
			"Title": "Create your account",
			"Error": "Please fill in all required fields.",
			"Form":  form,
		}))
		return
	}

	if _, err := w.services.Auth.Register(c.Request.Context(), req); err != nil {
		c.HTML(http.StatusBadRequest, "signup.html", w.page(c, gin.H{
			"Title": "Create your account",
			"Error": errorMessage(err),
			"Form":  form,
		}))
		return
	}

	c.HTML(http.StatusOK, "message.html", w.page(c, gin.H{
		"Title":   "Account created",
		"Heading": "You're all set",
		"Message": "Your account is ready. Log in to start posting jobs. We've also sent a link to confirm your email address.",
		"Link":    "/login",
	}))
}

func (w *Web) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.HTML(http.StatusBadRequest, "error.html", w.page(c, gin.H{
			"Title": "Invalid link", "Message": "The verification link is malformed.",
		}))
		return
	}

	if err := w.services.Auth.VerifyEmail(c.Request.Context(), token); err != nil {
		c.HTML(http.StatusBadRequest, "error.html", w.page(c, gin.H{
			"Title": "Verification failed", "Message": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "message.html", w.page(c, gin.H{
		"Title":   "Email verified",
		"Heading": "You're all set",
		"Message": "Your email has been verified. You can now log in.",
		"Link":    "/login",
	}))
}

func (w *Web) ForgotPasswordForm(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot_password.html", w.page(c, gin.H{"Title": "Forgot password"}))
}

func (w *Web) ForgotPasswordSubmit(c *gin.Context) {
	req := dto.ForgotPasswordRequest{Email: strings.TrimSpace(c.PostForm("email"))}

	_ = w.services.Auth.ForgotPassword(c.Request.Context(), req, c.ClientIP(), c.Request.UserAgent())

	// Same response whether or not the account exists.
	c.HTML(http.StatusOK, "message.html", w.page(c, gin.H{
		"Title":   "Check your inbox",
		"Heading": "Check your inbox",
		"Message": "If the email is registered, a reset link has been sent. It expires in 15 minutes.",
	}))
}

func (w *Web) ResetPasswordForm(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.HTML(http.StatusBadRequest, "error.html", w.page(c, gin.H{
			"Title": "Invalid link", "Message": "The reset link is malformed.",
		}))
		return
	}
	c.HTML(http.StatusOK, "reset_password.html", w.page(c, gin.H{"Title": "Reset password", "Token": token}))
}

func (w *Web) ResetPasswordSubmit(c *gin.Context) {
	req := dto.ResetPasswordRequest{
		Token:    c.PostForm("token"),
		Password: c.PostForm("password"),
	}

	if err := w.services.Auth.ResetPassword(c.Request.Context(), req); err != nil {
		c.HTML(http.StatusBadRequest, "reset_password.html", w.page(c, gin.H{
			"Title": "Reset password",
			"Token": req.Token,
			"Error": errorMessage(err),
		}))
		return
	}

	c.HTML(http.StatusOK, "message.html", w.page(c, gin.H{
		"Title":   "Password updated",
		"Heading": "Password updated",
		"Message": "Your password has been changed. Please log in with the new one.",
		"Link":    "/login",
	}))
}

func (w *Web) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, "profile.html", w.page(c, gin.H{"Title": "Your profile", "User": user}))
}

func (w *Web) ProfileSubmit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	req := dto.UpdateProfileRequest{
		FirstName: strings.TrimSpace(c.PostForm("first_name")),
		LastName:  strings.TrimSpace(c.PostForm("last_name")),
	}

	updated, err := w.services.Auth.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		c.HTML(http.StatusBadRequest, "profile.html", w.page(c, gin.H{
			"Title": "Your profile", "User": user, "Error": errorMessage(err),
		}))
		return
	}

	user.FirstName = updated.FirstName
	user.LastName = updated.LastName
	c.HTML(http.StatusOK, "profile.html", w.page(c, gin.H{
		"Title": "Your profile", "User": user, "Success": "Profile updated.",
	}))
}
