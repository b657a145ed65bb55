package services

import (
	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/email"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/storage"
)

// ServiceContainer wires repositories, storage and mail into the service
// layer. Handlers only ever see this container.
type ServiceContainer struct {
	Auth        *AuthService
	Job         *JobService
	Application *ApplicationService
	Admin       *AdminService
}

func NewServiceContainer(db *gorm.DB, store storage.Storage, mailer *email.Mailer, maxResumeSize int64) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)

	return &ServiceContainer{
		Auth:        NewAuthService(db, userRepo, tokenRepo, mailer),
		Job:         NewJobService(jobRepo),
		Application: NewApplicationService(appRepo, jobRepo, store, mailer, maxResumeSize),
		Admin:       NewAdminService(userRepo, tokenRepo, jobRepo, appRepo, mailer),
	}
}
