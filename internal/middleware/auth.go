package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/logger"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/repositories"
)

// SessionCookie is the web session cookie; the API uses a Bearer header.
const SessionCookie = "hf_session"

const currentUserKey = "current_user"

func extractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// resolveUser parses the token and loads the account. Suspended accounts
// are cut off here, so a revoked HR user loses access before their token
// expires.
func resolveUser(c *gin.Context, userRepo repositories.UserRepository) (*models.User, error) {
	tokenStr := extractToken(c)
	if tokenStr == "" {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}

	claims, err := auth.ParseToken(tokenStr)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid or expired session")
	}

	user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUnauthorizedError("Invalid or expired session")
		}
		return nil, apperrors.InternalError(err)
	}
	if !user.IsActive {
		return nil, apperrors.NewUnauthorizedError("Account is suspended")
	}
	return user, nil
}

// RequireAuth authenticates API requests and stores the account on the
// context.
func RequireAuth(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, userRepo)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireOperation gates a route on the role/operation policy table. Must
// run after RequireAuth.
func RequireOperation(op auth.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}
		if !auth.Allowed(user.Role, op) {
			apperrors.HandleError(c, apperrors.NewForbiddenError("You do not have permission to do that"))
			return
		}
		c.Next()
	}
}

// RequireWebAuth is the page variant: unauthenticated browsers get a
// redirect to the login form instead of a JSON error.
func RequireWebAuth(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, userRepo)
		if err != nil {
			c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		ctx := logger.WithUserID(c.Request.Context(), user.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// OptionalWebAuth populates the current user when a valid session cookie
// is present but never blocks: public pages adapt their navigation to it.
func OptionalWebAuth(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(c, userRepo); err == nil {
			c.Set(currentUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated account set by the auth
// middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
