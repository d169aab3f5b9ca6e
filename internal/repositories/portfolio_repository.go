package repositories

import (
	"errors"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

type PortfolioFilter struct {
	Type      models.PortfolioType
	Category  models.PortfolioCategory
	CompanyID *int64
}

// PortfolioStats - количество работ всего и в разрезе типа/категории
type PortfolioStats struct {
	Total      int64
	ByType     map[string]int64
	ByCategory map[string]int64
}

type PortfolioRepository interface {
	Create(db *gorm.DB, item *models.PortfolioItem) error
	FindByID(db *gorm.DB, id int64) (*models.PortfolioItem, error)
	FindBySlug(db *gorm.DB, slug string) (*models.PortfolioItem, error)
	List(db *gorm.DB, filter PortfolioFilter) ([]models.PortfolioItem, error)
	Update(db *gorm.DB, item *models.PortfolioItem) error
	Delete(db *gorm.DB, id int64) error
	SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error)
	Stats(db *gorm.DB) (*PortfolioStats, error)
	ListForSitemap(db *gorm.DB) ([]models.PortfolioItem, error)
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, item *models.PortfolioItem) error {
	return db.Omit(clause.Associations).Create(item).Error
}

func (r *PortfolioRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := db.Preload("Company").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PortfolioRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := db.Preload("Company").Where("slug = ?", slug).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PortfolioRepositoryImpl) List(db *gorm.DB, filter PortfolioFilter) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem

	query := db.Model(&models.PortfolioItem{}).Preload("Company")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}

	err := query.Order("publish_date DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *PortfolioRepositoryImpl) Update(db *gorm.DB, item *models.PortfolioItem) error {
	result := db.Omit(clause.Associations).Save(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	result := db.Delete(&models.PortfolioItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error) {
	return slugTaken(db, &models.PortfolioItem{}, slug, excludeID)
}

func (r *PortfolioRepositoryImpl) Stats(db *gorm.DB) (*PortfolioStats, error) {
	stats := &PortfolioStats{
		ByType:     make(map[string]int64),
		ByCategory: make(map[string]int64),
	}

	if err := db.Model(&models.PortfolioItem{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type groupRow struct {
		GroupKey string
		Count    int64
	}

	var byType []groupRow
	if err := db.Model(&models.PortfolioItem{}).
		Select("type AS group_key, COUNT(*) AS count").
		Group("type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, row := range byType {
		stats.ByType[row.GroupKey] = row.Count
	}

	var byCategory []groupRow
	if err := db.Model(&models.PortfolioItem{}).
		Select("category AS group_key, COUNT(*) AS count").
		Group("category").
		Scan(&byCategory).Error; err != nil {
		return nil, err
	}
	for _, row := range byCategory {
		stats.ByCategory[row.GroupKey] = row.Count
	}

	return stats, nil
}

func (r *PortfolioRepositoryImpl) ListForSitemap(db *gorm.DB) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Select("id", "slug", "updated_at").
		Order("publish_date DESC").
		Find(&items).Error
	return items, err
}
