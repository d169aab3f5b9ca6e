package repositories

import (
	"errors"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMediaNotFound = errors.New("media not found")

type MediaRepository interface {
	Create(db *gorm.DB, media *models.Media) error
	FindByID(db *gorm.DB, id int64) (*models.Media, error)
	ListByWork(db *gorm.DB, workID int64) ([]models.Media, error)
	Update(db *gorm.DB, media *models.Media) error
	Delete(db *gorm.DB, id int64) error
	// ClearPrimary снимает флаг is_primary со всех медиа работы, кроме exceptID
	ClearPrimary(db *gorm.DB, workID, exceptID int64) error
}

type MediaRepositoryImpl struct{}

func NewMediaRepository() MediaRepository {
	return &MediaRepositoryImpl{}
}

func (r *MediaRepositoryImpl) Create(db *gorm.DB, media *models.Media) error {
	return db.Create(media).Error
}

func (r *MediaRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.Media, error) {
	var media models.Media
	if err := db.First(&media, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepositoryImpl) ListByWork(db *gorm.DB, workID int64) ([]models.Media, error) {
	var media []models.Media
	err := db.Where("work_id = ?", workID).
		Order("sort_order ASC, id ASC").
		Find(&media).Error
	return media, err
}

func (r *MediaRepositoryImpl) Update(db *gorm.DB, media *models.Media) error {
	result := db.Save(media)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	result := db.Delete(&models.Media{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMediaNotFound
	}
	return nil
}

func (r *MediaRepositoryImpl) ClearPrimary(db *gorm.DB, workID, exceptID int64) error {
	return db.Model(&models.Media{}).
		Where("work_id = ? AND id <> ? AND is_primary = ?", workID, exceptID, true).
		Update("is_primary", false).Error
}
