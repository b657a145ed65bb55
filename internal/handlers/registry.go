package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/services"
	"github.com/kunalaswar/HireFlow/internal/validator"
)

// AppHandlers groups every API handler for route registration.
type AppHandlers struct {
	Auth        *AuthHandler
	Job         *JobHandler
	Application *ApplicationHandler
	Admin       *AdminHandler
}

func NewAppHandlers(
	sc *services.ServiceContainer,
	userRepo repositories.UserRepository,
	v *validator.Validator,
	loginRateLimiter gin.HandlerFunc,
) *AppHandlers {
	base := NewBaseHandler(v)
	return &AppHandlers{
		Auth:        NewAuthHandler(base, sc.Auth, userRepo, loginRateLimiter),
		Job:         NewJobHandler(base, sc.Job, userRepo),
		Application: NewApplicationHandler(base, sc.Application, userRepo),
		Admin:       NewAdminHandler(base, sc.Admin, userRepo),
	}
}

// RegisterRoutes mounts all API handlers on the group.
func (h *AppHandlers) RegisterRoutes(api *gin.RouterGroup) {
	h.Auth.RegisterRoutes(api)
	h.Job.RegisterRoutes(api)
	h.Application.RegisterRoutes(api)
	h.Admin.RegisterRoutes(api)
}
