package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalaswar/HireFlow/internal/apperrors"
	"github.com/kunalaswar/HireFlow/internal/models"
	"github.com/kunalaswar/HireFlow/internal/services/dto"
)

func TestInviteIsEmailFirst(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@corp.test", models.UserRoleAdmin)
	ctx := context.Background()

	// When delivery fails, no invite row is written.
	env.mail.fail = true
	_, err := env.sc.Admin.Invite(ctx, admin, dto.InviteRequest{Email: "new@corp.test"})
	require.Error(t, err)

	var count int64
	env.db.Model(&models.Invite{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// On success the row exists and carries the issuer.
	env.mail.fail = false
	resp, err := env.sc.Admin.Invite(ctx, admin, dto.InviteRequest{Email: "new@corp.test"})
	require.NoError(t, err)
	assert.Equal(t, "admin@corp.test", resp.CreatedByEmail)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), resp.ExpiresAt, time.Minute)

	env.db.Model(&models.Invite{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "new@corp.test", env.mail.last().ToEmail)
}

func TestInviteDuplicateAndExistingUserRejected(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@corp.test", models.UserRoleAdmin)
	env.createUser(t, "existing@corp.test", models.UserRoleHR)
	ctx := context.Background()

	// Registered accounts cannot be invited again.
	_, err := env.sc.Admin.Invite(ctx, admin, dto.InviteRequest{Email: "existing@corp.test"})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeEmailAlreadyExists, appErr.Code)

	// A second pending invite for the same email is rejected.
	_, err = env.sc.Admin.Invite(ctx, admin, dto.InviteRequest{Email: "pending@corp.test"})
	require.NoError(t, err)
	_, err = env.sc.Admin.Invite(ctx, admin, dto.InviteRequest{Email: "pending@corp.test"})
	require.Error(t, err)
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestSetActiveTogglesOnlyHR(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@corp.test", models.UserRoleAdmin)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	ctx := context.Background()

	resp, err := env.sc.Admin.SetActive(ctx, hr.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	// A suspended account can no longer log in.
	_, err = env.sc.Auth.Login(ctx, dto.LoginRequest{Email: "hr@corp.test", Password: "passw0rd1"})
	assert.Error(t, err)

	resp, err = env.sc.Admin.SetActive(ctx, hr.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)

	// Admins cannot be toggled through this path.
	_, err = env.sc.Admin.SetActive(ctx, admin.ID, false)
	assert.Error(t, err)
}

func TestDashboardMetrics(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@corp.test", models.UserRoleAdmin)
	hr := env.createUser(t, "hr@corp.test", models.UserRoleHR)
	ctx := context.Background()

	live := env.createJob(t, hr, "Backend Engineer")
	deleted := env.createJob(t, hr, "Old Role")

	_, err := env.sc.Application.Apply(ctx, live.Slug, applyReq("Jane Doe", "jane@example.com"), pdfUpload(256))
	require.NoError(t, err)
	_, err = env.sc.Application.Apply(ctx, deleted.Slug, applyReq("John Smith", "john@example.com"), pdfUpload(256))
	require.NoError(t, err)

	require.NoError(t, env.sc.Job.Delete(ctx, hr, deleted.ID))

	_, err = env.sc.Admin.Invite(ctx, admin, dto.InviteRequest{Email: "incoming@corp.test"})
	require.NoError(t, err)

	dash, err := env.sc.Admin.Dashboard(ctx)
	require.NoError(t, err)

	// Deleted jobs and their applications drop out of every count.
	assert.Equal(t, int64(1), dash.TotalJobs)
	assert.Equal(t, int64(1), dash.TotalApplications)
	assert.Equal(t, int64(1), dash.StatusCounts[models.ApplicationStatusScreening])
	assert.Equal(t, int64(0), dash.StatusCounts[models.ApplicationStatusHired])
	assert.Equal(t, int64(1), dash.HRCount)
	require.Len(t, dash.PendingInvites, 1)
	assert.Equal(t, "incoming@corp.test", dash.PendingInvites[0].Email)
}

func TestListHRPaginationAndSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		env.createUser(t, fmt.Sprintf("hr%02d@corp.test", i), models.UserRoleHR)
	}
	env.createUser(t, "admin@corp.test", models.UserRoleAdmin)

	page1, err := env.sc.Admin.ListHR(ctx, dto.HRListQuery{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(12), page1.Total)
	assert.Len(t, page1.Users, 10)

	page2, err := env.sc.Admin.ListHR(ctx, dto.HRListQuery{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Users, 2)

	found, err := env.sc.Admin.ListHR(ctx, dto.HRListQuery{Search: "hr07"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Total)
	require.Len(t, found.Users, 1)
	assert.Equal(t, "hr07@corp.test", found.Users[0].Email)
}
