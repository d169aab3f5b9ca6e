package repositories

import (
	"errors"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCompanyNotFound = errors.New("company not found")

// CompanyWithCount - компания и количество ее работ в портфолио
type CompanyWithCount struct {
	models.Company
	PortfolioCount int64
}

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.Company) error
	FindByID(db *gorm.DB, id int64) (*models.Company, error)
	// FindByIDWithItems загружает компанию с работами (publish_date DESC)
	FindByIDWithItems(db *gorm.DB, id int64) (*models.Company, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Company, error)
	ListWithCounts(db *gorm.DB) ([]CompanyWithCount, error)
	Update(db *gorm.DB, company *models.Company) error
	Delete(db *gorm.DB, id int64) error
	SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error)
	CountPortfolioItems(db *gorm.DB, companyID int64) (int64, error)
	Exists(db *gorm.DB, id int64) (bool, error)
}

type CompanyRepositoryImpl struct{}

func NewCompanyRepository() CompanyRepository {
	return &CompanyRepositoryImpl{}
}

func (r *CompanyRepositoryImpl) Create(db *gorm.DB, company *models.Company) error {
	return db.Omit(clause.Associations).Create(company).Error
}

func (r *CompanyRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.Company, error) {
	var company models.Company
	if err := db.First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindByIDWithItems(db *gorm.DB, id int64) (*models.Company, error) {
	var company models.Company
	err := db.Preload("PortfolioItems", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("publish_date DESC, id DESC")
	}).First(&company, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Company, error) {
	var company models.Company
	err := db.Preload("PortfolioItems", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("publish_date DESC, id DESC")
	}).Where("slug = ?", slug).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepositoryImpl) ListWithCounts(db *gorm.DB) ([]CompanyWithCount, error) {
	var companies []models.Company
	if err := db.Order("created_at DESC, id DESC").Find(&companies).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		CompanyID int64
		Count     int64
	}
	var rows []countRow
	err := db.Model(&models.PortfolioItem{}).
		Select("company_id, COUNT(*) AS count").
		Where("company_id IS NOT NULL").
		Group("company_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.CompanyID] = row.Count
	}

	result := make([]CompanyWithCount, 0, len(companies))
	for _, c := range companies {
		result = append(result, CompanyWithCount{Company: c, PortfolioCount: counts[c.ID]})
	}
	return result, nil
}

func (r *CompanyRepositoryImpl) Update(db *gorm.DB, company *models.Company) error {
	result := db.Omit(clause.Associations).Save(company)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	result := db.Delete(&models.Company{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepositoryImpl) SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error) {
	return slugTaken(db, &models.Company{}, slug, excludeID)
}

func (r *CompanyRepositoryImpl) CountPortfolioItems(db *gorm.DB, companyID int64) (int64, error) {
	var count int64
	err := db.Model(&models.PortfolioItem{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *CompanyRepositoryImpl) Exists(db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.Model(&models.Company{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
