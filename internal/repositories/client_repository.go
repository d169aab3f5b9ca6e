package repositories

import (
	"errors"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrClientNotFound = errors.New("client not found")

type ClientRepository interface {
	Create(db *gorm.DB, client *models.Client) error
	FindByID(db *gorm.DB, id int64) (*models.Client, error)
	// FindBySlug загружает клиента вместе с опубликованными работами
	FindBySlug(db *gorm.DB, slug string) (*models.Client, error)
	List(db *gorm.DB, clientType models.ClientType) ([]models.Client, error)
	Update(db *gorm.DB, client *models.Client) error
	Delete(db *gorm.DB, id int64) error
	SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error)
	CountWorks(db *gorm.DB, clientID int64) (int64, error)
	Exists(db *gorm.DB, id int64) (bool, error)
}

type ClientRepositoryImpl struct{}

func NewClientRepository() ClientRepository {
	return &ClientRepositoryImpl{}
}

func (r *ClientRepositoryImpl) Create(db *gorm.DB, client *models.Client) error {
	return db.Omit(clause.Associations).Create(client).Error
}

func (r *ClientRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.Client, error) {
	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Client, error) {
	var client models.Client
	err := db.
		Preload("Works", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("status = ?", models.WorkStatusPublished).
				Order("publish_date DESC, id DESC")
		}).
		Preload("Works.Tags").
		Preload("Works.Media", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC, id ASC")
		}).
		Where("slug = ?", slug).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) List(db *gorm.DB, clientType models.ClientType) ([]models.Client, error) {
	var clients []models.Client
	q := db.Model(&models.Client{})
	if clientType != "" {
		q = q.Where("type = ?", clientType)
	}
	err := q.Order("name ASC").Find(&clients).Error
	return clients, err
}

func (r *ClientRepositoryImpl) Update(db *gorm.DB, client *models.Client) error {
	result := db.Omit(clause.Associations).Save(client)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *ClientRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	result := db.Delete(&models.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

func (r *ClientRepositoryImpl) SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error) {
	return slugTaken(db, &models.Client{}, slug, excludeID)
}

func (r *ClientRepositoryImpl) CountWorks(db *gorm.DB, clientID int64) (int64, error) {
	var count int64
	err := db.Model(&models.Work{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

func (r *ClientRepositoryImpl) Exists(db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.Model(&models.Client{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
