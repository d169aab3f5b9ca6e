package services

import (
	"context"
	"errors"

	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SectionService interface {
	ListByWork(ctx context.Context, db *gorm.DB, workID int64) ([]*dto.SectionResponse, error)
	Get(ctx context.Context, db *gorm.DB, id int64) (*dto.SectionResponse, error)
	Create(ctx context.Context, db *gorm.DB, workID int64, req *dto.CreateSectionRequest) (*dto.SectionResponse, error)
	Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error)
	// Delete удаляет секцию; ее медиа остаются у работы без секции
	Delete(ctx context.Context, db *gorm.DB, id int64) error
}

type sectionService struct {
	sectionRepo repositories.SectionRepository
	workRepo    repositories.WorkRepository
	urls        *mediaurl.Transformer
}

func NewSectionService(
	sectionRepo repositories.SectionRepository,
	workRepo repositories.WorkRepository,
	urls *mediaurl.Transformer,
) SectionService {
	return &sectionService{
		sectionRepo: sectionRepo,
		workRepo:    workRepo,
		urls:        urls,
	}
}

func (s *sectionService) ListByWork(ctx context.Context, db *gorm.DB, workID int64) ([]*dto.SectionResponse, error) {
	if _, err := s.workRepo.FindByID(db, workID); err != nil {
		return nil, handleSectionError(err)
	}
	sections, err := s.sectionRepo.ListByWork(db, workID)
	if err != nil {
		return nil, handleSectionError(err)
	}
	out := make([]*dto.SectionResponse, 0, len(sections))
	for i := range sections {
		out = append(out, s.urls.Section(&sections[i]))
	}
	return out, nil
}

func (s *sectionService) Get(ctx context.Context, db *gorm.DB, id int64) (*dto.SectionResponse, error) {
	section, err := s.sectionRepo.FindByID(db, id)
	if err != nil {
		return nil, handleSectionError(err)
	}
	return s.urls.Section(section), nil
}

func (s *sectionService) Create(ctx context.Context, db *gorm.DB, workID int64, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	if _, err := s.workRepo.FindByID(db, workID); err != nil {
		return nil, handleSectionError(err)
	}

	section := &models.WorkSection{
		WorkID:      workID,
		SectionType: req.SectionType,
		Title:       req.Title,
		Body:        req.Body,
		SortOrder:   req.SortOrder,
		Highlight:   req.Highlight,
	}
	if section.SortOrder == 0 {
		// Без явного порядка секция добавляется в конец
		next, err := s.sectionRepo.NextSortOrder(db, workID)
		if err != nil {
			return nil, handleSectionError(err)
		}
		section.SortOrder = next
	}

	if err := s.sectionRepo.Create(db, section); err != nil {
		return nil, handleSectionError(err)
	}
	return s.urls.Section(section), nil
}

func (s *sectionService) Update(ctx context.Context, db *gorm.DB, id int64, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.ErrNoFieldsToUpdate("section")
	}

	section, err := s.sectionRepo.FindByID(db, id)
	if err != nil {
		return nil, handleSectionError(err)
	}

	if req.SectionType != nil {
		section.SectionType = *req.SectionType
	}
	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Body != nil {
		section.Body = *req.Body
	}
	if req.SortOrder != nil {
		section.SortOrder = *req.SortOrder
	}
	if req.Highlight != nil {
		section.Highlight = *req.Highlight
	}

	if err := s.sectionRepo.Update(db, section); err != nil {
		return nil, handleSectionError(err)
	}
	return s.urls.Section(section), nil
}

func (s *sectionService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.sectionRepo.Delete(tx, id); err != nil {
		return handleSectionError(err)
	}
	return tx.Commit().Error
}

func handleSectionError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrSectionNotFound):
		return apperrors.NotFound(err, "section", "Section not found")
	case errors.Is(err, repositories.ErrWorkNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(err, "work", "Work not found")
	}
	return apperrors.InternalError(err)
}
