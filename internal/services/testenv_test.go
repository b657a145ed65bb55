package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kunalaswar/HireFlow/database"
	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/config"
	"github.com/kunalaswar/HireFlow/internal/email"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
	"github.com/kunalaswar/HireFlow/internal/storage"
)

// fakeProvider records outbound mail instead of sending it.
type fakeProvider struct {
	mu   sync.Mutex
	sent []email.Message
	fail bool
}

func (f *fakeProvider) Send(_ context.Context, msg email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("provider down")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeProvider) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeProvider) last() email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}

type testEnv struct {
	db    *gorm.DB
	sc    *ServiceContainer
	mail  *fakeProvider
	store storage.Storage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	auth.InitJWT("test-secret", 60)

	store, err := storage.NewLocalStorage(config.StorageConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	mail := &fakeProvider{}
	mailer := email.NewMailerWithProvider(mail, "http://localhost:4000")

	return &testEnv{
		db:    db,
		sc:    NewServiceContainer(db, store, mailer, 5*1024*1024),
		mail:  mail,
		store: store,
	}
}

func (e *testEnv) createUser(t *testing.T, userEmail string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("passw0rd1")
	require.NoError(t, err)

	user := &models.User{
		Email:        userEmail,
		PasswordHash: hash,
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createJob(t *testing.T, owner *models.User, title string) *dto.JobResponse {
	t.Helper()

	job, err := e.sc.Job.Create(context.Background(), owner, dto.CreateJobRequest{
		Title:          title,
		Description:    "We are hiring.",
		SalaryType:     "not_disclosed",
		Location:       "Bangalore",
		WorkMode:       "remote",
		EmploymentType: "full_time",
	})
	require.NoError(t, err)
	return job
}
