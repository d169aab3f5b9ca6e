package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CompanyService interface {
	List(ctx context.Context, db *gorm.DB) ([]*dto.CompanyResponse, error)
	Get(ctx context.Context, db *gorm.DB, id int64) (*dto.CompanyResponse, error)
	GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.CompanyResponse, error)
	Portfolio(ctx context.Context, db *gorm.DB, id int64, itemType models.PortfolioType) ([]*dto.PortfolioItemResponse, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateCompanyRequest, logo *multipart.FileHeader) (*dto.CompanyResponse, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateCompanyRequest, logo *multipart.FileHeader) (*dto.CompanyResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type companyService struct {
	companyRepo   repositories.CompanyRepository
	portfolioRepo repositories.PortfolioRepository
	uploads       UploadService
	slugs         *SlugWriter
	urls          *mediaurl.Transformer
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	portfolioRepo repositories.PortfolioRepository,
	uploads UploadService,
	slugs *SlugWriter,
	urls *mediaurl.Transformer,
) CompanyService {
	return &companyService{
		companyRepo:   companyRepo,
		portfolioRepo: portfolioRepo,
		uploads:       uploads,
		slugs:         slugs,
		urls:          urls,
	}
}

func (s *companyService) List(ctx context.Context, db *gorm.DB) ([]*dto.CompanyResponse, error) {
	companies, err := s.companyRepo.ListWithCounts(db)
	if err != nil {
		return nil, handleCompanyError(err)
	}

	out := make([]*dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		resp := s.urls.Company(&companies[i].Company)
		count := companies[i].PortfolioCount
		resp.PortfolioCount = &count
		out = append(out, resp)
	}
	return out, nil
}

func (s *companyService) Get(ctx context.Context, db *gorm.DB, id int64) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindByIDWithItems(db, id)
	if err != nil {
		return nil, handleCompanyError(err)
	}
	return s.withItems(ctx, company), nil
}

func (s *companyService) GetBySlug(ctx context.Context, db *gorm.DB, slug string) (*dto.CompanyResponse, error) {
	company, err := s.companyRepo.FindBySlug(db, slug)
	if err != nil {
		return nil, handleCompanyError(err)
	}
	return s.withItems(ctx, company), nil
}

func (s *companyService) withItems(ctx context.Context, company *models.Company) *dto.CompanyResponse {
	resp := s.urls.Company(company)
	resp.PortfolioItems = s.urls.PortfolioItems(ctx, company.PortfolioItems)
	count := int64(len(company.PortfolioItems))
	resp.PortfolioCount = &count
	return resp
}

func (s *companyService) Portfolio(ctx context.Context, db *gorm.DB, id int64, itemType models.PortfolioType) ([]*dto.PortfolioItemResponse, error) {
	company, err := s.companyRepo.FindByID(db, id)
	if err != nil {
		return nil, handleCompanyError(err)
	}

	items, err := s.portfolioRepo.List(db, repositories.PortfolioFilter{
		Type:      itemType,
		CompanyID: &company.ID,
	})
	if err != nil {
		return nil, handleCompanyError(err)
	}
	return s.urls.PortfolioItems(ctx, items), nil
}

func (s *companyService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateCompanyRequest, logo *multipart.FileHeader) (*dto.CompanyResponse, error) {
	company := &models.Company{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		SeoKeywords:    req.SeoKeywords,
	}

	var stored *dto.StoredFile
	if logo != nil {
		var err error
		stored, err = s.uploads.Store(ctx, db, logo, UploadOptions{Kind: KindImage})
		if err != nil {
			return nil, err
		}
		company.Logo = stored.PublicPath
	}

	if err := s.save(ctx, db, company, true); err != nil {
		if stored != nil {
			s.uploads.DeleteQuietly(ctx, db, stored.PublicPath)
		}
		return nil, handleCompanyError(err)
	}

	logger.CtxInfo(ctx, "Company created", "company_id", company.ID, "slug", company.Slug)
	return s.urls.Company(company), nil
}

func (s *companyService) Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateCompanyRequest, logo *multipart.FileHeader) (*dto.CompanyResponse, error) {
	if req.IsEmpty() && logo == nil {
		return nil, apperrors.ErrNoFieldsToUpdate("company")
	}

	company, err := s.companyRepo.FindByID(db, id)
	if err != nil {
		return nil, handleCompanyError(err)
	}

	oldLogo := company.Logo
	var stored *dto.StoredFile
	if logo != nil {
		stored, err = s.uploads.Store(ctx, db, logo, UploadOptions{Kind: KindImage})
		if err != nil {
			return nil, err
		}
		company.Logo = stored.PublicPath
	}

	nameChanged := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		nameChanged = name != company.Name
		company.Name = name
	}
	if req.Description != nil {
		company.Description = *req.Description
	}
	if req.SeoTitle != nil {
		company.SeoTitle = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		company.SeoDescription = *req.SeoDescription
	}
	if req.SeoKeywords != nil {
		company.SeoKeywords = *req.SeoKeywords
	}

	if err := s.save(ctx, db, company, nameChanged); err != nil {
		if stored != nil {
			s.uploads.DeleteQuietly(ctx, db, stored.PublicPath)
		}
		return nil, handleCompanyError(err)
	}

	if stored != nil && oldLogo != "" {
		s.uploads.DeleteQuietly(ctx, db, oldLogo)
	}
	return s.urls.Company(company), nil
}

// save - вставка (ID == 0) или обновление; withSlug - подобрать slug по имени
func (s *companyService) save(ctx context.Context, db *gorm.DB, company *models.Company, withSlug bool) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer tx.Rollback()

	persist := func(tx *gorm.DB) error { return s.companyRepo.Update(tx, company) }
	if company.ID == 0 {
		persist = func(tx *gorm.DB) error { return s.companyRepo.Create(tx, company) }
	}

	var err error
	if withSlug {
		err = s.slugs.write(ctx, tx, "company", company.Name, company.ID, s.companyRepo.SlugExists,
			func(slug string) { company.Slug = slug }, persist)
	} else {
		err = persist(tx)
	}
	if err != nil {
		return err
	}
	return tx.Commit().Error
}

func (s *companyService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	company, err := s.companyRepo.FindByID(tx, id)
	if err != nil {
		return handleCompanyError(err)
	}

	items, err := s.companyRepo.CountPortfolioItems(tx, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if items > 0 {
		return apperrors.ErrHasDependents("company", "Company has portfolio items; delete them first").
			WithDetails(map[string]interface{}{"portfolioItems": items})
	}

	if err := s.companyRepo.Delete(tx, id); err != nil {
		return handleCompanyError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	s.uploads.DeleteQuietly(ctx, db, company.Logo)
	logger.CtxInfo(ctx, "Company deleted", "company_id", id)
	return nil
}

func handleCompanyError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrCompanyNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(err, "company", "Company not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict(err, "company", "Company with this slug already exists")
	}
	return apperrors.InternalError(err)
}
