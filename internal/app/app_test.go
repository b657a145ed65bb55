package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kunalaswar/HireFlow/database"
	"github.com/kunalaswar/HireFlow/internal/auth"
	"github.com/kunalaswar/HireFlow/internal/config"
	"github.com/kunalaswar/HireFlow/internal/email"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/storage"
)

type nullProvider struct{}

func (nullProvider) Send(context.Context, email.Message) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	auth.InitJWT("test-secret", 60)

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Upload.MaxResumeSize = 5 * 1024 * 1024
	cfg.JWT.TTL = 60
	// High enough that the login tests never trip the limiter.
	cfg.Security.LoginRatePerMinute = 1000
	cfg.Storage = config.StorageConfig{BasePath: t.TempDir()}

	store, err := storage.NewLocalStorage(cfg.Storage)
	require.NoError(t, err)

	mailer := email.NewMailerWithProvider(nullProvider{}, "http://localhost:4000")

	return SetupRouter(cfg, db, store, mailer), db
}

func seedUser(t *testing.T, db *gorm.DB, userEmail string, role models.UserRole) *models.User {
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
	require.NoError(t, db.Create(user).Error)
	return user
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, userEmail string) string {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": userEmail, "password": "passw0rd1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestLoginEndpoint(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db, "hr@corp.test", models.UserRoleHR)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "hr@corp.test", "password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	token := login(t, r, "hr@corp.test")

	w = doJSON(r, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hr@corp.test")
}

func TestJobLifecycleOverAPI(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db, "hr@corp.test", models.UserRoleHR)
	token := login(t, r, "hr@corp.test")

	// Unauthenticated creation is rejected.
	w := doJSON(r, http.MethodPost, "/api/v1/jobs/create", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/jobs/create", token, gin.H{
		"title":           "Backend Engineer",
		"description":     "Go services.",
		"salary_type":     "yearly",
		"min_salary":      10,
		"max_salary":      18,
		"location":        "Bangalore",
		"work_mode":       "remote",
		"employment_type": "full_time",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Slug string `json:"slug"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "backend-engineer", created.Data.Slug)

	// The posting is publicly visible by slug and in the listing.
	w = doJSON(r, http.MethodGet, "/api/v1/jobs/backend-engineer", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/jobs", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\"total\":1")

	// Validation failures come back as a field map.
	w = doJSON(r, http.MethodPost, "/api/v1/jobs/create", token, gin.H{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestAdminCannotCreateJobs(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db, "admin@corp.test", models.UserRoleAdmin)
	token := login(t, r, "admin@corp.test")

	w := doJSON(r, http.MethodPost, "/api/v1/jobs/create", token, gin.H{
		"title": "x", "description": "x", "salary_type": "not_disclosed",
		"location": "x", "work_mode": "remote", "employment_type": "full_time",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApplyAndTrackOverAPI(t *testing.T) {
	r, db := newTestRouter(t)
	seedUser(t, db, "hr@corp.test", models.UserRoleHR)
	token := login(t, r, "hr@corp.test")

	w := doJSON(r, http.MethodPost, "/api/v1/jobs/create", token, gin.H{
		"title": "Backend Engineer", "description": "Go services.", "salary_type": "not_disclosed",
		"location": "Remote", "work_mode": "remote", "employment_type": "full_time",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("full_name", "Jane Doe"))
	require.NoError(t, mw.WriteField("email", "jane@example.com"))
	require.NoError(t, mw.WriteField("phone", "+911234567890"))
	part, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write(make([]byte, 1024))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/apply/backend-engineer", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var applied struct {
		Data struct {
			TrackingCode string `json:"tracking_code"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &applied))
	assert.Equal(t, "HF-0001", applied.Data.TrackingCode)

	// Public tracking works without auth and omits contact details.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/v1/track/%s", applied.Data.TrackingCode), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.NotContains(t, w.Body.String(), "jane@example.com")

	// The listing requires auth.
	w = doJSON(r, http.MethodGet, "/api/v1/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/applications", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), applied.Data.TrackingCode)
}

func TestSuspendedAccountRejectedMidSession(t *testing.T) {
	r, db := newTestRouter(t)
	user := seedUser(t, db, "hr@corp.test", models.UserRoleHR)
	token := login(t, r, "hr@corp.test")

	// Suspension takes effect on the next request, not at token expiry.
	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	w := doJSON(r, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "suspended")
}
