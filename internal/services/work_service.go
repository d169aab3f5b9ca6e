package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type WorkService interface {
	List(ctx context.Context, db *gorm.DB, query *dto.WorkListQuery) (*dto.WorkListResponse, error)
	GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.WorkResponse, error)
	GetByID(ctx context.Context, db *gorm.DB, id int64) (*dto.WorkResponse, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateWorkRequest, cover *multipart.FileHeader) (*dto.WorkResponse, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateWorkRequest) (*dto.WorkResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error

	// Tags
	ListTags(ctx context.Context, db *gorm.DB) ([]*dto.TagResponse, error)
	CreateTag(ctx context.Context, db *gorm.DB, req *dto.CreateTagRequest) (*dto.TagResponse, error)
	DeleteTag(ctx context.Context, db *gorm.DB, id int64) error
}

type workService struct {
	workRepo   repositories.WorkRepository
	clientRepo repositories.ClientRepository
	mediaRepo  repositories.MediaRepository
	uploads    UploadService
	slugs      *SlugWriter
	urls       *mediaurl.Transformer
}

func NewWorkService(
	workRepo repositories.WorkRepository,
	clientRepo repositories.ClientRepository,
	mediaRepo repositories.MediaRepository,
	uploads UploadService,
	slugs *SlugWriter,
	urls *mediaurl.Transformer,
) WorkService {
	return &workService{
		workRepo:   workRepo,
		clientRepo: clientRepo,
		mediaRepo:  mediaRepo,
		uploads:    uploads,
		slugs:      slugs,
		urls:       urls,
	}
}

func (s *workService) List(ctx context.Context, db *gorm.DB, query *dto.WorkListQuery) (*dto.WorkListResponse, error) {
	filter := repositories.WorkFilter{
		Status:     query.Status,
		Type:       query.Type,
		ClientID:   query.ClientID.Int64Ptr(),
		ClientType: query.ClientType,
		Featured:   query.Featured,
		Pagination: repositories.Pagination{Page: query.Page, PageSize: query.PageSize}.Normalize(),
	}
	if filter.Status == "" {
		filter.Status = models.WorkStatusPublished
	}

	works, total, err := s.workRepo.List(db, filter)
	if err != nil {
		return nil, handleWorkError(err)
	}

	return &dto.WorkListResponse{
		Works:    s.urls.Works(works),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

func (s *workService) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.WorkResponse, error) {
	work, err := s.workRepo.FindBySlug(db, slug)
	if err != nil {
		return nil, handleWorkError(err)
	}
	return s.urls.Work(work), nil
}

func (s *workService) GetByID(ctx context.Context, db *gorm.DB, id int64) (*dto.WorkResponse, error) {
	work, err := s.workRepo.FindByID(db, id)
	if err != nil {
		return nil, handleWorkError(err)
	}
	return s.urls.Work(work), nil
}

func (s *workService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateWorkRequest, cover *multipart.FileHeader) (*dto.WorkResponse, error) {
	if err := s.ensureClient(db, req.ClientID.Int64()); err != nil {
		return nil, err
	}

	var stored *dto.StoredFile
	if cover != nil {
		var err error
		stored, err = s.uploads.Store(ctx, db, cover, UploadOptions{Kind: KindImage, Thumbnail: true})
		if err != nil {
			return nil, err
		}
	}

	work := &models.Work{
		ClientID:       req.ClientID.Int64(),
		Type:           req.Type,
		Status:         req.Status,
		Title:          strings.TrimSpace(req.Title),
		ShortDesc:      req.ShortDesc,
		HeroSubtitle:   req.HeroSubtitle,
		PublishDate:    time.Now().UTC(),
		VisitURL:       req.VisitURL,
		IsFeatured:     req.IsFeatured,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		SeoKeywords:    req.SeoKeywords,
	}
	if work.Status == "" {
		work.Status = models.WorkStatusPublished
	}
	if req.PublishDate != nil {
		work.PublishDate = req.PublishDate.UTC()
	}

	err := s.createWork(ctx, db, work, req.TagIDs.Int64s(), stored)
	if err != nil {
		if stored != nil {
			s.uploads.DeleteQuietly(ctx, db, stored.PublicPath)
		}
		return nil, handleWorkError(err)
	}

	logger.CtxInfo(ctx, "Work created", "work_id", work.ID, "slug", work.Slug)
	return s.GetByID(ctx, db, work.ID)
}

func (s *workService) createWork(ctx context.Context, db *gorm.DB, work *models.Work, tagIDs []int64, cover *dto.StoredFile) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	err := s.slugs.write(ctx, tx, "work", work.Title, 0, s.workRepo.SlugExists,
		func(slug string) { work.Slug = slug },
		func(tx *gorm.DB) error { return s.workRepo.Create(tx, work) },
	)
	if err != nil {
		return err
	}

	if len(tagIDs) > 0 {
		tags, err := s.workRepo.FindTagsByIDs(tx, tagIDs)
		if err != nil {
			return err
		}
		if err := s.workRepo.ReplaceTags(tx, work, tags); err != nil {
			return err
		}
	}

	if cover != nil {
		alt := work.SeoTitle
		if alt == "" {
			alt = work.Title
		}
		media := &models.Media{
			WorkID:       work.ID,
			FileType:     models.MediaImage,
			FileURL:      cover.PublicPath,
			ThumbnailURL: cover.ThumbnailPath,
			AltText:      alt,
			IsPrimary:    true,
		}
		if err := s.mediaRepo.Create(tx, media); err != nil {
			return err
		}
	}

	return tx.Commit().Error
}

func (s *workService) Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateWorkRequest) (*dto.WorkResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.ErrNoFieldsToUpdate("work")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	work, err := s.workRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleWorkError(err)
	}

	if req.ClientID != nil && req.ClientID.Int64() != work.ClientID {
		if err := s.ensureClient(tx, req.ClientID.Int64()); err != nil {
			return nil, err
		}
		work.ClientID = req.ClientID.Int64()
		work.Client = nil
	}

	titleChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		titleChanged = title != work.Title
		work.Title = title
	}
	if req.Type != nil {
		work.Type = *req.Type
	}
	if req.Status != nil {
		work.Status = *req.Status
	}
	if req.ShortDesc != nil {
		work.ShortDesc = *req.ShortDesc
	}
	if req.HeroSubtitle != nil {
		work.HeroSubtitle = *req.HeroSubtitle
	}
	if req.PublishDate != nil {
		work.PublishDate = req.PublishDate.UTC()
	}
	if req.VisitURL != nil {
		work.VisitURL = *req.VisitURL
	}
	if req.IsFeatured != nil {
		work.IsFeatured = *req.IsFeatured
	}
	if req.SeoTitle != nil {
		work.SeoTitle = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		work.SeoDescription = *req.SeoDescription
	}
	if req.SeoKeywords != nil {
		work.SeoKeywords = *req.SeoKeywords
	}

	persist := func(tx *gorm.DB) error { return s.workRepo.Update(tx, work) }
	if titleChanged {
		err = s.slugs.write(ctx, tx, "work", work.Title, work.ID, s.workRepo.SlugExists,
			func(slug string) { work.Slug = slug }, persist)
	} else {
		err = persist(tx)
	}
	if err != nil {
		return nil, handleWorkError(err)
	}

	if req.TagIDs != nil {
		tags, err := s.workRepo.FindTagsByIDs(tx, req.TagIDs.Int64s())
		if err != nil {
			return nil, handleWorkError(err)
		}
		if err := s.workRepo.ReplaceTags(tx, work, tags); err != nil {
			return nil, handleWorkError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(ctx, db, id)
}

// Delete удаляет работу каскадно (теги, секции, медиа) и ее файлы
func (s *workService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	media, err := s.mediaRepo.ListByWork(tx, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.workRepo.Delete(tx, id); err != nil {
		return handleWorkError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	paths := make([]string, 0, len(media))
	for _, m := range media {
		paths = append(paths, m.FileURL)
	}
	s.uploads.DeleteQuietly(ctx, db, paths...)

	logger.CtxInfo(ctx, "Work deleted", "work_id", id, "media", len(media))
	return nil
}

// ============================================
// TAGS
// ============================================

func (s *workService) ListTags(ctx context.Context, db *gorm.DB) ([]*dto.TagResponse, error) {
	tags, err := s.workRepo.ListTags(db)
	if err != nil {
		return nil, handleWorkError(err)
	}
	out := make([]*dto.TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, dto.NewTagResponse(&tags[i]))
	}
	return out, nil
}

func (s *workService) CreateTag(ctx context.Context, db *gorm.DB, req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	tag := &models.Tag{Name: strings.TrimSpace(req.Name)}
	err := s.slugs.write(ctx, tx, "tag", tag.Name, 0, s.workRepo.TagSlugExists,
		func(slug string) { tag.Slug = slug },
		func(tx *gorm.DB) error { return s.workRepo.CreateTag(tx, tag) },
	)
	if err != nil {
		return nil, handleWorkError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewTagResponse(tag), nil
}

func (s *workService) DeleteTag(ctx context.Context, db *gorm.DB, id int64) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.workRepo.DeleteTag(tx, id); err != nil {
		return handleWorkError(err)
	}
	return tx.Commit().Error
}

func (s *workService) ensureClient(db *gorm.DB, clientID int64) error {
	exists, err := s.clientRepo.Exists(db, clientID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !exists {
		return apperrors.NotFound(repositories.ErrClientNotFound, "client", "Client not found")
	}
	return nil
}

func handleWorkError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrWorkNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(err, "work", "Work not found")
	case errors.Is(err, repositories.ErrTagNotFound):
		return apperrors.NotFound(err, "tag", "One or more tags not found")
	case errors.Is(err, repositories.ErrClientNotFound):
		return apperrors.NotFound(err, "client", "Client not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict(err, "work", "Work with this slug already exists")
	}
	return apperrors.InternalError(err)
}
