package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), PublicPrefix: "uploads/"})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestLocal(t)

	require.NoError(t, s.Save(ctx, "logo-1.png", strings.NewReader("png-bytes"), "image/png"))

	exists, err := s.Exists(ctx, "logo-1.png")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Get(ctx, "logo-1.png")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Delete(ctx, "logo-1.png"))
	exists, err = s.Exists(ctx, "logo-1.png")
	require.NoError(t, err)
	assert.False(t, exists)

	// повторное удаление - не ошибка
	assert.NoError(t, s.Delete(ctx, "logo-1.png"))

	_, err = s.Get(ctx, "logo-1.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := newTestLocal(t)

	assert.Error(t, s.Save(ctx, "../escape.txt", strings.NewReader("x"), ""))
	assert.Error(t, s.Delete(ctx, "a/../../b"))
	_, err := s.Exists(ctx, "")
	assert.Error(t, err)
}

func TestLocalStorage_URLs(t *testing.T) {
	s := newTestLocal(t)

	assert.Equal(t, "/uploads/a.png", s.GetURL("a.png"))

	key, ok := s.KeyFromURL("/uploads/a.png")
	assert.True(t, ok)
	assert.Equal(t, "a.png", key)

	key, ok = s.KeyFromURL("http://localhost:4000/uploads/thumbs/a.jpg")
	assert.True(t, ok)
	assert.Equal(t, "thumbs/a.jpg", key)

	_, ok = s.KeyFromURL("/static/a.png")
	assert.False(t, ok)
	_, ok = s.KeyFromURL("/uploads/../etc/passwd")
	assert.False(t, ok)
}

func TestNewStorage_Unsupported(t *testing.T) {
	_, err := NewStorage(context.Background(), Config{Type: "ftp"})
	assert.Error(t, err)
}
