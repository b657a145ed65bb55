package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

func pdfUpload(size int) ResumeUpload {
	return ResumeUpload{
		Reader:      bytes.NewReader(make([]byte, size)),
		Size:        int64(size),
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
	}
}

func applyReq(name, mail string) dto.ApplyRequest {
	return dto.ApplyRequest{FullName: name, Email: mail, Phone: "+911234567890"}
}

func TestApplyAssignsTrackingCodeAndEmails(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")
	ctx := context.Background()

	resp, err := env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(1024))
	require.NoError(t, err)

	assert.Equal(t, "HF-0001", resp.TrackingCode)
	assert.Equal(t, "Backend Engineer", resp.JobTitle)

	require.Equal(t, 1, env.mail.count())
	sent := env.mail.last()
	assert.Equal(t, "jane@example.com", sent.ToEmail)
	assert.Contains(t, sent.HTMLBody, "HF-0001")

	// The stored row carries the normalized phone and a resume URL under
	// the job's slug.
	var app models.Application
	require.NoError(t, env.db.First(&app, "tracking_code = ?", "HF-0001").Error)
	assert.Equal(t, "+911234567890", app.Phone)
	assert.Contains(t, app.ResumeURL, job.Slug+"/")
	assert.Equal(t, models.ApplicationStatusScreening, app.Status)
}

func TestApplyDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")
	ctx := context.Background()

	_, err := env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(512))
	require.NoError(t, err)

	_, err = env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(512))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeAlreadyApplied, appErr.Code)

	// Only the first submission produced a row and an email.
	var count int64
	env.db.Model(&models.Application{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, env.mail.count())
}

func TestApplyOversizeResumeRejectedBeforeUpload(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")

	_, err := env.sc.Application.Apply(context.Background(), job.Slug,
		applyReq("Jane Doe", "jane@example.com"), pdfUpload(6*1024*1024))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	var count int64
	env.db.Model(&models.Application{}).Count(&count)
	assert.Equal(t, int64(0), count)
	assert.Equal(t, 0, env.mail.count())
}

func TestApplyNonPDFRejected(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")

	upload := pdfUpload(512)
	upload.Filename = "resume.docx"

	_, err := env.sc.Application.Apply(context.Background(), job.Slug,
		applyReq("Jane Doe", "jane@example.com"), upload)
	assert.Error(t, err)
}

func TestTrackingCodesUniqueUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")
	ctx := context.Background()

	const n = 8
	codes := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := env.sc.Application.Apply(ctx, job.Slug,
				applyReq("Jane Doe", fmt.Sprintf("c%d@example.com", i)), pdfUpload(256))
			errs[i] = err
			if err == nil {
				codes[i] = resp.TrackingCode
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
	}

	sort.Strings(codes)
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("HF-%04d", i+1), codes[i])
	}
}

func TestTrack(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")
	ctx := context.Background()

	resp, err := env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(256))
	require.NoError(t, err)

	tracked, err := env.sc.Application.Track(ctx, resp.TrackingCode)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", tracked.JobTitle)
	assert.Equal(t, "Jane Doe", tracked.FullName)
	assert.Equal(t, models.ApplicationStatusScreening, tracked.Status)

	_, err = env.sc.Application.Track(ctx, "HF-9999")
	assert.Error(t, err)
}

func TestStatusUpdateIdempotent(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")
	ctx := context.Background()

	applied, err := env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(256))
	require.NoError(t, err)

	var app models.Application
	require.NoError(t, env.db.First(&app, "tracking_code = ?", applied.TrackingCode).Error)

	mailsBefore := env.mail.count()

	// Setting the current status again is a no-op: no email.
	resp, err := env.sc.Application.UpdateStatus(ctx, hr, app.ID, dto.UpdateStatusRequest{Status: "screening"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusScreening, resp.Status)
	assert.Equal(t, mailsBefore, env.mail.count())

	// A real move writes and notifies once.
	resp, err = env.sc.Application.UpdateStatus(ctx, hr, app.ID, dto.UpdateStatusRequest{Status: "interview"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusInterview, resp.Status)
	assert.Equal(t, mailsBefore+1, env.mail.count())
	assert.Contains(t, env.mail.last().HTMLBody, "interview")
}

func TestStatusUpdateInvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")
	ctx := context.Background()

	applied, err := env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(256))
	require.NoError(t, err)

	var app models.Application
	require.NoError(t, env.db.First(&app, "tracking_code = ?", applied.TrackingCode).Error)

	_, err = env.sc.Application.UpdateStatus(ctx, hr, app.ID, dto.UpdateStatusRequest{Status: "on_hold"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestApplicationsScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@corp.test", models.UserRoleHR)
	other := env.createUser(t, "other@corp.test", models.UserRoleHR)
	job := env.createJob(t, owner, "Backend Engineer")
	ctx := context.Background()

	applied, err := env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(256))
	require.NoError(t, err)

	var app models.Application
	require.NoError(t, env.db.First(&app, "tracking_code = ?", applied.TrackingCode).Error)

	// The owner sees it; another HR user does not.
	list, err := env.sc.Application.List(ctx, owner, dto.ApplicationListQuery{})
	require.NoError(t, err)
	assert.Len(t, list.Applications, 1)
	assert.Equal(t, int64(1), list.StatusCounts[models.ApplicationStatusScreening])

	list, err = env.sc.Application.List(ctx, other, dto.ApplicationListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list.Applications)

	_, err = env.sc.Application.Get(ctx, other, app.ID)
	assert.Error(t, err)

	_, err = env.sc.Application.UpdateStatus(ctx, other, app.ID, dto.UpdateStatusRequest{Status: "review"})
	assert.Error(t, err)
}

func TestApplicationListFilters(t *testing.T) {
	env := newTestEnv(t)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	job := env.createJob(t, hr, "Backend Engineer")
	ctx := context.Background()

	_, err := env.sc.Application.Apply(ctx, job.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(256))
	require.NoError(t, err)
	_, err = env.sc.Application.Apply(ctx, job.Slug, applyReq("John Smith", "john@example.com"), pdfUpload(256))
	require.NoError(t, err)

	list, err := env.sc.Application.List(ctx, hr, dto.ApplicationListQuery{Search: "jane"})
	require.NoError(t, err)
	require.Len(t, list.Applications, 1)
	assert.Equal(t, "Jane Doe", list.Applications[0].FullName)

	list, err = env.sc.Application.List(ctx, hr, dto.ApplicationListQuery{Status: "hired"})
	require.NoError(t, err)
	assert.Empty(t, list.Applications)
}
