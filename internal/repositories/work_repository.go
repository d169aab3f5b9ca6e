package repositories

import (
	"errors"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrWorkNotFound = errors.New("work not found")
	ErrTagNotFound  = errors.New("tag not found")
)

// WorkFilter - фильтр списка работ
type WorkFilter struct {
	Status     models.WorkStatus
	Type       models.WorkType
	ClientID   *int64
	ClientType models.ClientType
	Featured   *bool
	Pagination
}

type WorkRepository interface {
	Create(db *gorm.DB, work *models.Work) error
	FindByID(db *gorm.DB, id int64) (*models.Work, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Work, error)
	List(db *gorm.DB, filter WorkFilter) ([]models.Work, int64, error)
	Update(db *gorm.DB, work *models.Work) error
	ReplaceTags(db *gorm.DB, work *models.Work, tags []models.Tag) error
	Delete(db *gorm.DB, id int64) error
	SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error)
	ListPublishedForSitemap(db *gorm.DB) ([]models.Work, error)

	// Tags
	ListTags(db *gorm.DB) ([]models.Tag, error)
	FindTagsByIDs(db *gorm.DB, ids []int64) ([]models.Tag, error)
	CreateTag(db *gorm.DB, tag *models.Tag) error
	DeleteTag(db *gorm.DB, id int64) error
	TagSlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error)
}

type WorkRepositoryImpl struct{}

func NewWorkRepository() WorkRepository {
	return &WorkRepositoryImpl{}
}

func (r *WorkRepositoryImpl) Create(db *gorm.DB, work *models.Work) error {
	return db.Omit(clause.Associations).Create(work).Error
}

// withDetails - полная загрузка работы: клиент, теги, секции и медиа по sort_order
func withDetails(db *gorm.DB) *gorm.DB {
	byOrder := func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order ASC, id ASC")
	}
	return db.
		Preload("Client").
		Preload("Tags").
		Preload("Sections", byOrder).
		Preload("Sections.Media", byOrder).
		Preload("Media", byOrder)
}

func (r *WorkRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.Work, error) {
	var work models.Work
	if err := withDetails(db).First(&work, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return &work, nil
}

func (r *WorkRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Work, error) {
	var work models.Work
	if err := withDetails(db).Where("slug = ?", slug).First(&work).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}
	return &work, nil
}

func (r *WorkRepositoryImpl) List(db *gorm.DB, filter WorkFilter) ([]models.Work, int64, error) {
	var works []models.Work
	var total int64

	query := db.Model(&models.Work{})
	if filter.Status != "" {
		query = query.Where("works.status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("works.type = ?", filter.Type)
	}
	if filter.ClientID != nil {
		query = query.Where("works.client_id = ?", *filter.ClientID)
	}
	if filter.ClientType != "" {
		query = query.Joins("JOIN clients ON clients.id = works.client_id").
			Where("clients.type = ?", filter.ClientType)
	}
	if filter.Featured != nil {
		query = query.Where("works.is_featured = ?", *filter.Featured)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Pagination.Normalize()
	err := query.
		Preload("Client").
		Preload("Tags").
		Preload("Media", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("sort_order ASC, id ASC")
		}).
		Order("works.publish_date DESC, works.id DESC").
		Limit(page.PageSize).
		Offset(page.Offset()).
		Find(&works).Error

	return works, total, err
}

func (r *WorkRepositoryImpl) Update(db *gorm.DB, work *models.Work) error {
	result := db.Omit(clause.Associations).Save(work)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkNotFound
	}
	return nil
}

func (r *WorkRepositoryImpl) ReplaceTags(db *gorm.DB, work *models.Work, tags []models.Tag) error {
	if len(tags) == 0 {
		work.Tags = nil
		return db.Model(work).Association("Tags").Clear()
	}
	return db.Model(work).Association("Tags").Replace(tags)
}

// Delete удаляет работу вместе с тегами, медиа и секциями. Вызывать в транзакции.
func (r *WorkRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	if err := db.Exec("DELETE FROM work_tags WHERE work_id = ?", id).Error; err != nil {
		return err
	}
	if err := db.Where("work_id = ?", id).Delete(&models.Media{}).Error; err != nil {
		return err
	}
	if err := db.Where("work_id = ?", id).Delete(&models.WorkSection{}).Error; err != nil {
		return err
	}

	result := db.Delete(&models.Work{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWorkNotFound
	}
	return nil
}

func (r *WorkRepositoryImpl) SlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error) {
	return slugTaken(db, &models.Work{}, slug, excludeID)
}

func (r *WorkRepositoryImpl) ListPublishedForSitemap(db *gorm.DB) ([]models.Work, error) {
	var works []models.Work
	err := db.Select("id", "slug", "updated_at").
		Where("status = ?", models.WorkStatusPublished).
		Order("publish_date DESC").
		Find(&works).Error
	return works, err
}

// Tags

func (r *WorkRepositoryImpl) ListTags(db *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *WorkRepositoryImpl) FindTagsByIDs(db *gorm.DB, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}

	unique := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(tags) != len(unique) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

func (r *WorkRepositoryImpl) CreateTag(db *gorm.DB, tag *models.Tag) error {
	return db.Create(tag).Error
}

func (r *WorkRepositoryImpl) DeleteTag(db *gorm.DB, id int64) error {
	if err := db.Exec("DELETE FROM work_tags WHERE tag_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Tag{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTagNotFound
	}
	return nil
}

func (r *WorkRepositoryImpl) TagSlugExists(db *gorm.DB, slug string, excludeID int64) (bool, error) {
	return slugTaken(db, &models.Tag{}, slug, excludeID)
}
