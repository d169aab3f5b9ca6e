package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rastaka_backend/internal/imageprocessor"
	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/storage"
	"rastaka_backend/internal/testutil"
	"rastaka_backend/pkg/apperrors"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testBaseURL = "http://api.test"

type testEnv struct {
	db      *gorm.DB
	dir     string
	uploads UploadService
	slugs   *SlugWriter
	urls    *mediaurl.Transformer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: dir, PublicPrefix: "/uploads"})
	require.NoError(t, err)

	return &testEnv{
		db:      testutil.NewTestDB(t),
		dir:     dir,
		uploads: NewUploadService(repositories.NewUploadRepository(), store, imageprocessor.NewProcessor(80, 64), UploadSettings{}),
		slugs:   NewSlugWriter(100),
		urls:    mediaurl.New(testBaseURL),
	}
}

// fileOnDisk - существует ли файл по публичному пути /uploads/<key>
func (e *testEnv) fileOnDisk(publicPath string) bool {
	key := strings.TrimPrefix(publicPath, "/uploads/")
	_, err := os.Stat(filepath.Join(e.dir, key))
	return err == nil
}

// formFile собирает *multipart.FileHeader так же, как его получает gin
func formFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func requireAppError(t *testing.T, err error, httpCode int) *apperrors.AppError {
	t.Helper()

	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, httpCode, appErr.HTTPCode, appErr.Error())
	return appErr
}
