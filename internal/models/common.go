package models

import (
	"time"
)

// Длина slug-колонок (в символах), см. теги gorm ниже
const (
	SlugMaxLength    = 255
	TagSlugMaxLength = 120
)

// BaseModel - целочисленный автоинкрементный ключ (BIGINT).
// В JSON ключи отдаются строкой, см. dto.ID.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// AllModels - все модели для AutoMigrate (порядок важен для внешних ключей)
func AllModels() []interface{} {
	return []interface{}{
		&AdminUser{},
		&Client{},
		&Tag{},
		&Work{},
		&WorkSection{},
		&Media{},
		&Company{},
		&PortfolioItem{},
		&SiteConfig{},
		&SeoConfig{},
		&ContactSubmission{},
		&Upload{},
	}
}
