package services

import (
	"context"
	"encoding/json"
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

type PortfolioService interface {
	List(ctx context.Context, db *gorm.DB, filter *dto.PortfolioFilter) ([]*dto.PortfolioItemResponse, error)
	Get(ctx context.Context, db *gorm.DB, id int64) (*dto.PortfolioItemResponse, error)
	GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.PortfolioItemResponse, error)
	Stats(ctx context.Context, db *gorm.DB) (*dto.PortfolioStats, error)
	// Create - files обязательны: SOCIAL_MEDIA хранит все файлы списком,
	// остальные типы - первый файл
	Create(ctx context.Context, db *gorm.DB, req *dto.CreatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioItemResponse, error)
	// Update - новые файлы заменяют медиа целиком, старые файлы удаляются
	Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioItemResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	companyRepo   repositories.CompanyRepository
	uploads       UploadService
	slugs         *SlugWriter
	urls          *mediaurl.Transformer
}

func NewPortfolioService(
	portfolioRepo repositories.PortfolioRepository,
	companyRepo repositories.CompanyRepository,
	uploads UploadService,
	slugs *SlugWriter,
	urls *mediaurl.Transformer,
) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		companyRepo:   companyRepo,
		uploads:       uploads,
		slugs:         slugs,
		urls:          urls,
	}
}

func (s *portfolioService) List(ctx context.Context, db *gorm.DB, filter *dto.PortfolioFilter) ([]*dto.PortfolioItemResponse, error) {
	items, err := s.portfolioRepo.List(db, repositories.PortfolioFilter{
		Type:      filter.Type,
		Category:  filter.Category,
		CompanyID: filter.CompanyID.Int64Ptr(),
	})
	if err != nil {
		return nil, handlePortfolioError(err)
	}
	return s.urls.PortfolioItems(ctx, items), nil
}

func (s *portfolioService) Get(ctx context.Context, db *gorm.DB, id int64) (*dto.PortfolioItemResponse, error) {
	item, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		return nil, handlePortfolioError(err)
	}
	return s.urls.PortfolioItem(ctx, item), nil
}

func (s *portfolioService) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.PortfolioItemResponse, error) {
	item, err := s.portfolioRepo.FindBySlug(db, slug)
	if err != nil {
		return nil, handlePortfolioError(err)
	}
	return s.urls.PortfolioItem(ctx, item), nil
}

func (s *portfolioService) Stats(ctx context.Context, db *gorm.DB) (*dto.PortfolioStats, error) {
	stats, err := s.portfolioRepo.Stats(db)
	if err != nil {
		return nil, handlePortfolioError(err)
	}
	return &dto.PortfolioStats{
		Total:      stats.Total,
		ByType:     stats.ByType,
		ByCategory: stats.ByCategory,
	}, nil
}

func (s *portfolioService) Create(ctx context.Context, db *gorm.DB, req *dto.CreatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioItemResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.ErrFileRequired
	}

	item := &models.PortfolioItem{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		Type:           req.Type,
		Category:       req.Category,
		WebsiteURL:     req.WebsiteURL,
		ClientName:     req.ClientName,
		CompanyID:      req.CompanyID.Int64Ptr(),
		PublishDate:    time.Now().UTC(),
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		Keywords:       req.Keywords,
	}
	if req.PublishDate != nil {
		item.PublishDate = req.PublishDate.UTC()
	}

	if err := s.checkCategory(db, item); err != nil {
		return nil, err
	}

	stored, err := s.storeMedia(ctx, db, item.Type, files)
	if err != nil {
		return nil, err
	}
	if err := applyMedia(item, stored); err != nil {
		s.uploads.DeleteQuietly(ctx, db, PublicPaths(stored)...)
		return nil, apperrors.InternalError(err)
	}

	if err := s.save(ctx, db, item, true); err != nil {
		s.uploads.DeleteQuietly(ctx, db, PublicPaths(stored)...)
		return nil, handlePortfolioError(err)
	}

	logger.CtxInfo(ctx, "Portfolio item created", "item_id", item.ID, "slug", item.Slug, "files", len(stored))
	return s.Get(ctx, db, item.ID)
}

func (s *portfolioService) Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdatePortfolioRequest, files []*multipart.FileHeader) (*dto.PortfolioItemResponse, error) {
	item, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		return nil, handlePortfolioError(err)
	}
	item.Company = nil

	titleChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		titleChanged = title != item.Title
		item.Title = title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.WebsiteURL != nil {
		item.WebsiteURL = *req.WebsiteURL
	}
	if req.ClientName != nil {
		item.ClientName = *req.ClientName
	}
	if req.CompanyID != nil {
		item.CompanyID = req.CompanyID.Int64Ptr()
	}
	if req.PublishDate != nil {
		item.PublishDate = req.PublishDate.UTC()
	}
	if req.SeoTitle != nil {
		item.SeoTitle = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		item.SeoDescription = *req.SeoDescription
	}
	if req.Keywords != nil {
		item.Keywords = *req.Keywords
	}

	// Смена категории на INDIVIDUAL отвязывает компанию, если она не передана явно
	if req.Category != nil && item.Category == models.PortfolioCategoryIndividual && req.CompanyID == nil {
		item.CompanyID = nil
	}
	if err := s.checkCategory(db, item); err != nil {
		return nil, err
	}

	oldPaths := mediaPaths(item)
	var stored []*dto.StoredFile
	if len(files) > 0 {
		stored, err = s.storeMedia(ctx, db, item.Type, files)
		if err != nil {
			return nil, err
		}
		if err := applyMedia(item, stored); err != nil {
			s.uploads.DeleteQuietly(ctx, db, PublicPaths(stored)...)
			return nil, apperrors.InternalError(err)
		}
	}

	if err := s.save(ctx, db, item, titleChanged); err != nil {
		s.uploads.DeleteQuietly(ctx, db, PublicPaths(stored)...)
		return nil, handlePortfolioError(err)
	}

	if len(stored) > 0 {
		s.uploads.DeleteQuietly(ctx, db, oldPaths...)
	}
	return s.Get(ctx, db, item.ID)
}

func (s *portfolioService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	item, err := s.portfolioRepo.FindByID(db, id)
	if err != nil {
		return handlePortfolioError(err)
	}
	if err := s.portfolioRepo.Delete(db, id); err != nil {
		return handlePortfolioError(err)
	}

	s.uploads.DeleteQuietly(ctx, db, mediaPaths(item)...)
	logger.CtxInfo(ctx, "Portfolio item deleted", "item_id", id)
	return nil
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

func (s *portfolioService) save(ctx context.Context, db *gorm.DB, item *models.PortfolioItem, withSlug bool) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	persist := func(tx *gorm.DB) error { return s.portfolioRepo.Update(tx, item) }
	if item.ID == 0 {
		persist = func(tx *gorm.DB) error { return s.portfolioRepo.Create(tx, item) }
	}

	var err error
	if withSlug {
		err = s.slugs.write(ctx, tx, "portfolio", item.Title, item.ID, s.portfolioRepo.SlugExists,
			func(slug string) { item.Slug = slug }, persist)
	} else {
		err = persist(tx)
	}
	if err != nil {
		return err
	}
	return tx.Commit().Error
}

// checkCategory: CORPORATE - обязательна существующая компания,
// INDIVIDUAL - компании быть не должно (clientName только у INDIVIDUAL)
func (s *portfolioService) checkCategory(db *gorm.DB, item *models.PortfolioItem) error {
	switch item.Category {
	case models.PortfolioCategoryCorporate:
		if item.CompanyID == nil {
			return apperrors.ErrInvalidOperation("portfolio", "companyId is required for CORPORATE items")
		}
		exists, err := s.companyRepo.Exists(db, *item.CompanyID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !exists {
			return apperrors.NotFound(repositories.ErrCompanyNotFound, "company", "Company not found")
		}
		item.ClientName = ""
	case models.PortfolioCategoryIndividual:
		if item.CompanyID != nil {
			return apperrors.ErrInvalidOperation("portfolio", "INDIVIDUAL items cannot be linked to a company")
		}
	}
	return nil
}

func (s *portfolioService) storeMedia(ctx context.Context, db *gorm.DB, itemType models.PortfolioType, files []*multipart.FileHeader) ([]*dto.StoredFile, error) {
	if itemType == models.PortfolioTypeSocialMedia {
		return s.uploads.StoreMany(ctx, db, files, UploadOptions{Kind: KindAny})
	}
	stored, err := s.uploads.Store(ctx, db, files[0], UploadOptions{Kind: KindAny})
	if err != nil {
		return nil, err
	}
	return []*dto.StoredFile{stored}, nil
}

// applyMedia заполняет ровно одну форму медиа по типу работы
func applyMedia(item *models.PortfolioItem, stored []*dto.StoredFile) error {
	if item.Type == models.PortfolioTypeSocialMedia {
		raw, err := json.Marshal(PublicPaths(stored))
		if err != nil {
			return err
		}
		urls := string(raw)
		item.MediaURLs = &urls
		item.MediaURL = nil
		item.MediaType = nil
		return nil
	}

	first := stored[0]
	path := first.PublicPath
	fileType := first.FileType
	item.MediaURL = &path
	item.MediaType = &fileType
	item.MediaURLs = nil
	return nil
}

// mediaPaths - все сохраненные пути медиа элемента (для удаления файлов)
func mediaPaths(item *models.PortfolioItem) []string {
	var paths []string
	if item.MediaURL != nil && *item.MediaURL != "" {
		paths = append(paths, *item.MediaURL)
	}
	if item.MediaURLs != nil && *item.MediaURLs != "" {
		var list []string
		if err := json.Unmarshal([]byte(*item.MediaURLs), &list); err == nil {
			paths = append(paths, list...)
		}
	}
	return paths
}

func handlePortfolioError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrPortfolioItemNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(err, "portfolio", "Portfolio item not found")
	case errors.Is(err, repositories.ErrCompanyNotFound):
		return apperrors.NotFound(err, "company", "Company not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrConflict(err, "portfolio", "Portfolio item with this slug already exists")
	}
	return apperrors.InternalError(err)
}
