package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"rastaka_backend/internal/imageprocessor"
	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/metrics"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/internal/slug"
	"rastaka_backend/internal/storage"
	"rastaka_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================
// UPLOAD SERVICE
// ============================================

// FileKind - какие файлы принимает конкретная операция
type FileKind int

const (
	KindAny FileKind = iota
	KindImage
	KindVideo
)

func (k FileKind) accepts(t models.MediaFileType) bool {
	switch k {
	case KindImage:
		return t == models.MediaImage
	case KindVideo:
		return t == models.MediaVideo
	default:
		return true
	}
}

// UploadOptions - параметры сохранения файла
type UploadOptions struct {
	Kind      FileKind
	Thumbnail bool // для изображений строить превью
}

type UploadService interface {
	// Store проверяет, сохраняет файл и создает запись в uploads
	Store(ctx context.Context, db *gorm.DB, file *multipart.FileHeader, opts UploadOptions) (*dto.StoredFile, error)
	// StoreMany - все или ничего: при ошибке уже сохраненные файлы удаляются
	StoreMany(ctx context.Context, db *gorm.DB, files []*multipart.FileHeader, opts UploadOptions) ([]*dto.StoredFile, error)
	// Delete удаляет файл (и превью) из хранилища и запись о нем
	Delete(ctx context.Context, db *gorm.DB, publicPath string) error
	// DeleteQuietly - как Delete, ошибки только логируются
	DeleteQuietly(ctx context.Context, db *gorm.DB, publicPaths ...string)
	MaxFiles() int
}

// UploadSettings - лимиты загрузки
type UploadSettings struct {
	MaxSize  int64
	MaxFiles int
}

const (
	defaultMaxUploadSize  = 200 * 1024 * 1024
	defaultMaxUploadFiles = 10
	sniffLen              = 3072
	maxFileBaseLen        = 50
)

// allowedMimeTypes - MIME (по содержимому файла) -> тип медиа
var allowedMimeTypes = map[string]models.MediaFileType{
	"image/jpeg":      models.MediaImage,
	"image/png":       models.MediaImage,
	"image/gif":       models.MediaImage,
	"image/webp":      models.MediaImage,
	"video/mp4":       models.MediaVideo,
	"video/quicktime": models.MediaVideo,
	"video/x-msvideo": models.MediaVideo,
	"video/webm":      models.MediaVideo,
}

type uploadService struct {
	uploadRepo repositories.UploadRepository
	storage    storage.Storage
	images     *imageprocessor.Processor
	settings   UploadSettings
	now        func() time.Time
}

func NewUploadService(
	uploadRepo repositories.UploadRepository,
	store storage.Storage,
	images *imageprocessor.Processor,
	settings UploadSettings,
) UploadService {
	if settings.MaxSize <= 0 {
		settings.MaxSize = defaultMaxUploadSize
	}
	if settings.MaxFiles <= 0 {
		settings.MaxFiles = defaultMaxUploadFiles
	}
	if images == nil {
		images = imageprocessor.NewProcessor(0, 0)
	}
	return &uploadService{
		uploadRepo: uploadRepo,
		storage:    store,
		images:     images,
		settings:   settings,
		now:        time.Now,
	}
}

func (s *uploadService) MaxFiles() int {
	return s.settings.MaxFiles
}

func (s *uploadService) Store(ctx context.Context, db *gorm.DB, file *multipart.FileHeader, opts UploadOptions) (*dto.StoredFile, error) {
	if file == nil {
		return nil, apperrors.ErrFileRequired
	}
	if file.Size > s.settings.MaxSize {
		metrics.UploadsTotal.WithLabelValues("unknown", "rejected").Inc()
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{
			"file":    file.Filename,
			"maxSize": s.settings.MaxSize,
		})
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	// Тип определяется по содержимому, а не по заголовку клиента
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperrors.InternalError(fmt.Errorf("failed to read uploaded file: %w", err))
	}
	head = head[:n]

	detected := mimetype.Detect(head)
	mimeType, fileType, ok := classifyMime(detected)
	if !ok || !opts.Kind.accepts(fileType) {
		metrics.UploadsTotal.WithLabelValues(string(fileType), "rejected").Inc()
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]interface{}{
			"file":     file.Filename,
			"mimeType": detected.String(),
		})
	}

	key := s.buildKey(file.Filename, detected.Extension())
	body := io.MultiReader(bytes.NewReader(head), src)

	var data []byte
	if fileType == models.MediaImage {
		data, err = io.ReadAll(body)
		if err != nil {
			return nil, apperrors.InternalError(fmt.Errorf("failed to read uploaded file: %w", err))
		}
		body = bytes.NewReader(data)
	}

	if err := s.storage.Save(ctx, key, body, mimeType); err != nil {
		metrics.UploadsTotal.WithLabelValues(string(fileType), "error").Inc()
		return nil, apperrors.ErrStorage(err)
	}

	upload := &models.Upload{
		OriginalName:    file.Filename,
		Path:            key,
		PublicPath:      s.storage.GetURL(key),
		MimeType:        mimeType,
		FileType:        fileType,
		Size:            file.Size,
		StorageProvider: s.storage.Provider(),
		Metadata:        datatypes.JSONMap{},
	}

	var thumbKey string
	if data != nil {
		if w, h, err := imageprocessor.GetImageDimensions(data); err == nil {
			upload.Metadata["width"] = w
			upload.Metadata["height"] = h
		}
		if opts.Thumbnail {
			thumbKey, err = s.storeThumbnail(ctx, key, data)
			if err != nil {
				// Превью не обязательно: файл уже сохранен
				logger.CtxWithError(ctx, "Failed to generate thumbnail", err, "key", key)
				thumbKey = ""
			} else {
				upload.ThumbnailPath = s.storage.GetURL(thumbKey)
			}
		}
	}

	if err := s.uploadRepo.Create(db, upload); err != nil {
		s.removeObjects(ctx, key, thumbKey)
		metrics.UploadsTotal.WithLabelValues(string(fileType), "error").Inc()
		return nil, apperrors.InternalError(err)
	}

	metrics.UploadsTotal.WithLabelValues(string(fileType), "ok").Inc()
	metrics.UploadBytesTotal.Add(float64(file.Size))
	logger.CtxInfo(ctx, "File stored", "key", key, "mime", mimeType, "size", file.Size)

	return &dto.StoredFile{
		UploadID:      upload.ID,
		PublicPath:    upload.PublicPath,
		ThumbnailPath: upload.ThumbnailPath,
		MimeType:      mimeType,
		FileType:      fileType,
		Size:          file.Size,
	}, nil
}

func (s *uploadService) StoreMany(ctx context.Context, db *gorm.DB, files []*multipart.FileHeader, opts UploadOptions) ([]*dto.StoredFile, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrFileRequired
	}
	if len(files) > s.settings.MaxFiles {
		return nil, apperrors.ErrTooManyFiles.WithDetails(map[string]interface{}{
			"maxFiles": s.settings.MaxFiles,
		})
	}

	stored := make([]*dto.StoredFile, 0, len(files))
	for _, f := range files {
		sf, err := s.Store(ctx, db, f, opts)
		if err != nil {
			s.DeleteQuietly(ctx, db, PublicPaths(stored)...)
			return nil, err
		}
		stored = append(stored, sf)
	}
	return stored, nil
}

func (s *uploadService) Delete(ctx context.Context, db *gorm.DB, publicPath string) error {
	if publicPath == "" {
		return nil
	}

	upload, err := s.uploadRepo.FindByPublicPath(db, publicPath)
	if err != nil && !errors.Is(err, repositories.ErrUploadNotFound) {
		return apperrors.InternalError(err)
	}

	if upload == nil {
		// Файл без записи (например, загружен до учета): удаляем только объект
		key, ok := s.storage.KeyFromURL(publicPath)
		if !ok {
			return nil
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			return apperrors.ErrStorage(err)
		}
		return nil
	}

	thumbKey := ""
	if upload.ThumbnailPath != "" {
		thumbKey, _ = s.storage.KeyFromURL(upload.ThumbnailPath)
	}
	for _, key := range []string{upload.Path, thumbKey} {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			return apperrors.ErrStorage(err)
		}
	}

	if err := s.uploadRepo.Delete(db, upload.ID); err != nil && !errors.Is(err, repositories.ErrUploadNotFound) {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *uploadService) DeleteQuietly(ctx context.Context, db *gorm.DB, publicPaths ...string) {
	for _, p := range publicPaths {
		if err := s.Delete(ctx, db, p); err != nil {
			logger.CtxWithError(ctx, "Failed to delete stored file", err, "path", p)
		}
	}
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

func (s *uploadService) storeThumbnail(ctx context.Context, key string, data []byte) (string, error) {
	result, err := s.images.Thumbnail(data)
	if err != nil {
		return "", err
	}
	thumbKey := strings.TrimSuffix(key, filepath.Ext(key)) + "-thumb.jpg"
	if err := s.storage.Save(ctx, thumbKey, bytes.NewReader(result.Data), "image/jpeg"); err != nil {
		return "", err
	}
	return thumbKey, nil
}

func (s *uploadService) removeObjects(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			logger.CtxWithError(ctx, "Failed to remove stored object", err, "key", key)
		}
	}
}

// buildKey - "<имя>-<unix>-<uuid8><ext>"
func (s *uploadService) buildKey(original, detectedExt string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" || len(ext) > 10 {
		ext = detectedExt
	}

	base := slug.Slugify(strings.TrimSuffix(filepath.Base(original), filepath.Ext(original)))
	if r := []rune(base); len(r) > maxFileBaseLen {
		base = strings.TrimRight(string(r[:maxFileBaseLen]), "-")
	}
	if base == "" {
		base = "file"
	}

	return fmt.Sprintf("%s-%d-%s%s", base, s.now().Unix(), uuid.NewString()[:8], ext)
}

func classifyMime(m *mimetype.MIME) (string, models.MediaFileType, bool) {
	for allowed, fileType := range allowedMimeTypes {
		if m.Is(allowed) {
			return allowed, fileType, true
		}
	}
	return m.String(), "", false
}

// PublicPaths - публичные пути сохраненных файлов
func PublicPaths(files []*dto.StoredFile) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.PublicPath)
	}
	return paths
}
