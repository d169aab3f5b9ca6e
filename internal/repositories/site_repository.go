package repositories

import (
	"errors"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
)

// SiteRepository - настройки сайта и SEO хранятся одной строкой каждая.
// При первом чтении строка создается со значениями по умолчанию.
type SiteRepository interface {
	GetSiteConfig(db *gorm.DB) (*models.SiteConfig, error)
	SaveSiteConfig(db *gorm.DB, cfg *models.SiteConfig) error
	GetSeoConfig(db *gorm.DB) (*models.SeoConfig, error)
	SaveSeoConfig(db *gorm.DB, cfg *models.SeoConfig) error
}

type SiteRepositoryImpl struct{}

func NewSiteRepository() SiteRepository {
	return &SiteRepositoryImpl{}
}

func (r *SiteRepositoryImpl) GetSiteConfig(db *gorm.DB) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	err := db.Order("id ASC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = models.SiteConfig{SiteName: "Rastaka"}
		if err := db.Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *SiteRepositoryImpl) SaveSiteConfig(db *gorm.DB, cfg *models.SiteConfig) error {
	return db.Save(cfg).Error
}

func (r *SiteRepositoryImpl) GetSeoConfig(db *gorm.DB) (*models.SeoConfig, error) {
	var cfg models.SeoConfig
	err := db.Order("id ASC").First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cfg = models.SeoConfig{SiteTitle: "Rastaka Portfolio"}
		if err := db.Create(&cfg).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *SiteRepositoryImpl) SaveSeoConfig(db *gorm.DB, cfg *models.SeoConfig) error {
	return db.Save(cfg).Error
}
