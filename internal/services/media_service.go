package services

import (
	"context"
	"errors"
	"mime/multipart"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MediaService interface {
	// Upload сохраняет файл (IMAGE с превью или VIDEO) и привязывает его к работе
	Upload(ctx context.Context, db *gorm.DB, fileType models.MediaFileType, req *dto.UploadMediaRequest, file *multipart.FileHeader) (*dto.MediaResponse, error)
	ListByWork(ctx context.Context, db *gorm.DB, workID int64) ([]*dto.MediaResponse, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateMediaRequest) (*dto.MediaResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type mediaService struct {
	mediaRepo   repositories.MediaRepository
	workRepo    repositories.WorkRepository
	sectionRepo repositories.SectionRepository
	uploads     UploadService
	urls        *mediaurl.Transformer
}

func NewMediaService(
	mediaRepo repositories.MediaRepository,
	workRepo repositories.WorkRepository,
	sectionRepo repositories.SectionRepository,
	uploads UploadService,
	urls *mediaurl.Transformer,
) MediaService {
	return &mediaService{
		mediaRepo:   mediaRepo,
		workRepo:    workRepo,
		sectionRepo: sectionRepo,
		uploads:     uploads,
		urls:        urls,
	}
}

func (s *mediaService) Upload(ctx context.Context, db *gorm.DB, fileType models.MediaFileType, req *dto.UploadMediaRequest, file *multipart.FileHeader) (*dto.MediaResponse, error) {
	if file == nil {
		return nil, apperrors.ErrFileRequired.WithMessage("File is required")
	}

	workID := req.WorkID.Int64()
	if _, err := s.workRepo.FindByID(db, workID); err != nil {
		return nil, handleMediaError(err)
	}
	if req.SectionID != nil {
		section, err := s.sectionRepo.FindByID(db, req.SectionID.Int64())
		if err != nil {
			return nil, handleMediaError(err)
		}
		if section.WorkID != workID {
			return nil, apperrors.ErrInvalidOperation("media", "Section belongs to another work")
		}
	}

	opts := UploadOptions{Kind: KindVideo}
	if fileType == models.MediaImage {
		opts = UploadOptions{Kind: KindImage, Thumbnail: true}
	}
	stored, err := s.uploads.Store(ctx, db, file, opts)
	if err != nil {
		return nil, err
	}

	media := &models.Media{
		WorkID:       workID,
		SectionID:    req.SectionID.Int64Ptr(),
		FileType:     stored.FileType,
		FileURL:      stored.PublicPath,
		ThumbnailURL: stored.ThumbnailPath,
		AltText:      req.AltText,
		IsPrimary:    req.IsPrimary,
		SortOrder:    req.SortOrder,
	}

	if err := s.create(db, media); err != nil {
		s.uploads.DeleteQuietly(ctx, db, stored.PublicPath)
		return nil, handleMediaError(err)
	}

	logger.CtxInfo(ctx, "Media uploaded", "media_id", media.ID, "work_id", workID, "type", media.FileType)
	return s.urls.Media(media), nil
}

func (s *mediaService) create(db *gorm.DB, media *models.Media) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	if err := s.mediaRepo.Create(tx, media); err != nil {
		return err
	}
	if media.IsPrimary {
		if err := s.mediaRepo.ClearPrimary(tx, media.WorkID, media.ID); err != nil {
			return err
		}
	}
	return tx.Commit().Error
}

func (s *mediaService) ListByWork(ctx context.Context, db *gorm.DB, workID int64) ([]*dto.MediaResponse, error) {
	media, err := s.mediaRepo.ListByWork(db, workID)
	if err != nil {
		return nil, handleMediaError(err)
	}
	return s.urls.MediaList(media), nil
}

func (s *mediaService) Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateMediaRequest) (*dto.MediaResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.ErrNoFieldsToUpdate("media")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	media, err := s.mediaRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleMediaError(err)
	}

	if req.AltText != nil {
		media.AltText = *req.AltText
	}
	if req.SortOrder != nil {
		media.SortOrder = *req.SortOrder
	}
	if req.IsPrimary != nil {
		media.IsPrimary = *req.IsPrimary
	}

	if err := s.mediaRepo.Update(tx, media); err != nil {
		return nil, handleMediaError(err)
	}
	if media.IsPrimary {
		if err := s.mediaRepo.ClearPrimary(tx, media.WorkID, media.ID); err != nil {
			return nil, handleMediaError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.urls.Media(media), nil
}

func (s *mediaService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	media, err := s.mediaRepo.FindByID(db, id)
	if err != nil {
		return handleMediaError(err)
	}
	if err := s.mediaRepo.Delete(db, id); err != nil {
		return handleMediaError(err)
	}

	s.uploads.DeleteQuietly(ctx, db, media.FileURL)
	return nil
}

func handleMediaError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrMediaNotFound):
		return apperrors.NotFound(err, "media", "Media not found")
	case errors.Is(err, repositories.ErrSectionNotFound):
		return apperrors.NotFound(err, "section", "Section not found")
	case errors.Is(err, repositories.ErrWorkNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(err, "work", "Work not found")
	}
	return apperrors.InternalError(err)
}
