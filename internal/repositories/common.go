package repositories

import (
	"gorm.io/gorm"
)

// slugTaken - есть ли в таблице модели запись с таким slug (кроме excludeID)
func slugTaken(db *gorm.DB, model interface{}, slug string, excludeID int64) (bool, error) {
	var count int64
	q := db.Model(model).Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Pagination - page начиная с 1
type Pagination struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Normalize подставляет значения по умолчанию и ограничивает размер страницы
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
