package repositories

import (
	"database/sql"
	"errors"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSectionNotFound = errors.New("section not found")

type SectionRepository interface {
	Create(db *gorm.DB, section *models.WorkSection) error
	FindByID(db *gorm.DB, id int64) (*models.WorkSection, error)
	ListByWork(db *gorm.DB, workID int64) ([]models.WorkSection, error)
	Update(db *gorm.DB, section *models.WorkSection) error
	Delete(db *gorm.DB, id int64) error
	NextSortOrder(db *gorm.DB, workID int64) (int, error)
}

type SectionRepositoryImpl struct{}

func NewSectionRepository() SectionRepository {
	return &SectionRepositoryImpl{}
}

func (r *SectionRepositoryImpl) Create(db *gorm.DB, section *models.WorkSection) error {
	return db.Omit(clause.Associations).Create(section).Error
}

func (r *SectionRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.WorkSection, error) {
	var section models.WorkSection
	err := db.Preload("Media", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order ASC, id ASC")
	}).First(&section, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return &section, nil
}

func (r *SectionRepositoryImpl) ListByWork(db *gorm.DB, workID int64) ([]models.WorkSection, error) {
	var sections []models.WorkSection
	err := db.Preload("Media", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order ASC, id ASC")
	}).
		Where("work_id = ?", workID).
		Order("sort_order ASC, id ASC").
		Find(&sections).Error
	return sections, err
}

func (r *SectionRepositoryImpl) Update(db *gorm.DB, section *models.WorkSection) error {
	result := db.Omit(clause.Associations).Save(section)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

// Delete отвязывает медиа секции (медиа остаются у работы) и удаляет секцию
func (r *SectionRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	if err := db.Model(&models.Media{}).
		Where("section_id = ?", id).
		Update("section_id", nil).Error; err != nil {
		return err
	}

	result := db.Delete(&models.WorkSection{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSectionNotFound
	}
	return nil
}

func (r *SectionRepositoryImpl) NextSortOrder(db *gorm.DB, workID int64) (int, error) {
	var maxOrder sql.NullInt64
	err := db.Model(&models.WorkSection{}).
		Where("work_id = ?", workID).
		Select("MAX(sort_order)").
		Row().
		Scan(&maxOrder)
	if err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 0, nil
	}
	return int(maxOrder.Int64) + 1, nil
}
