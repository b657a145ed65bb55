package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kunalaswar/HireFlow/internal/config"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(config.StorageConfig{BasePath: t.TempDir(), BaseURL: "/uploads"})
	require.NoError(t, err)
	return s
}

func TestLocalStorageRoundTrip(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	err := s.Save(ctx, "backend-engineer/cv.pdf", strings.NewReader("%PDF-1.4 test"), "application/pdf")
	require.NoError(t, err)

	exists, err := s.Exists(ctx, "backend-engineer/cv.pdf")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Get(ctx, "backend-engineer/cv.pdf")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))

	url, err := s.GetURL(ctx, "backend-engineer/cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/backend-engineer/cv.pdf", url)
}

func TestLocalStorageDelete(t *testing.T) {
	s := newTestLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a/b.pdf", strings.NewReader("x"), "application/pdf"))
	require.NoError(t, s.Delete(ctx, "a/b.pdf"))

	exists, err := s.Exists(ctx, "a/b.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, s.Delete(ctx, "a/b.pdf"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	s := newTestLocal(t)
	err := s.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"), "text/plain")
	assert.Error(t, err)
}
