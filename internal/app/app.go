package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/database"
	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/config"
	"github.com/kunalaswar/HireFlow/internal/email"
	"github.com/kunalaswar/HireFlow/internal/handlers"
	"github.com/kunalaswar/HireFlow/internal/logger"
	"github.com/kunalaswar/HireFlow/internal/middleware"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/repositories"
	"github.com/kunalaswar/HireFlow/internal/routes"
	"github.com/kunalaswar/HireFlow/internal/services"
	"github.com/kunalaswar/HireFlow/internal/storage"
	"github.com/kunalaswar/HireFlow/internal/validator"
	"github.com/kunalaswar/HireFlow/internal/web"
)

// Run boots the whole application: config, database, storage, mail, the
// service container and the HTTP server.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	auth.InitJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := seedSuperuser(db, cfg); err != nil {
		return fmt.Errorf("failed to seed superuser: %w", err)
	}

	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	mailer := email.NewMailer(cfg)

	router := SetupRouter(cfg, db, store, mailer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the gin engine with all middleware and routes. Split
// out of Run so tests can stand up the full HTTP surface against their own
// database, storage and mailer.
func SetupRouter(cfg *config.Config, db *gorm.DB, store storage.Storage, mailer *email.Mailer) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	r.SetHTMLTemplate(web.Templates())

	v := validator.New()
	sc := services.NewServiceContainer(db, store, mailer, cfg.Upload.MaxResumeSize)
	userRepo := repositories.NewUserRepository(db)

	loginLimiter := middleware.LoginRateLimiter(cfg.Security.LoginRatePerMinute)
	apiHandlers := handlers.NewAppHandlers(sc, userRepo, v, loginLimiter)
	pages := web.New(sc, userRepo, v, cfg.JWT.TTL)

	routes.RegisterRoutes(r, apiHandlers, pages)
	return r
}

// seedSuperuser bootstraps the first superuser account from config. It is
// a no-op when the credentials are unset or the account already exists,
// and runs in a transaction so two replicas cannot both insert it.
func seedSuperuser(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Bootstrap.SuperuserEmail
	password := cfg.Bootstrap.SuperuserPassword
	if adminEmail == "" || password == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("email = ?", adminEmail).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		user := &models.User{
			Email:              adminEmail,
			PasswordHash:       hash,
			Role:               models.UserRoleSuperuser,
			IsActive:           true,
			MustChangePassword: true,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		logger.Info("superuser seeded", "email", adminEmail)
		return nil
	})
}
