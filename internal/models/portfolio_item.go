package models

import "time"

// PortfolioItem - работа в портфолио. Медиа хранится в одной из двух форм:
// MediaURL+MediaType (один файл) или MediaURLs (JSON-массив путей, SOCIAL_MEDIA).
// Одновременно заполнена только одна форма.
type PortfolioItem struct {
	BaseModel
	Title          string            `gorm:"type:varchar(255);not null"`
	Description    string            `gorm:"type:text"`
	Type           PortfolioType     `gorm:"type:varchar(20);not null;index"`
	Category       PortfolioCategory `gorm:"type:varchar(20);not null;index"`
	Slug           string            `gorm:"type:varchar(255);uniqueIndex;not null"`
	MediaURL       *string           `gorm:"type:varchar(500)"`
	MediaType      *MediaFileType    `gorm:"type:varchar(10)"`
	MediaURLs      *string           `gorm:"column:media_urls;type:text"`
	WebsiteURL     string            `gorm:"type:varchar(500)"`
	ClientName     string            `gorm:"type:varchar(255)"`
	CompanyID      *int64            `gorm:"index"`
	PublishDate    time.Time         `gorm:"index"`
	SeoTitle       string            `gorm:"type:varchar(255)"`
	SeoDescription string            `gorm:"type:text"`
	Keywords       string            `gorm:"type:text"`

	// Relations
	Company *Company `gorm:"foreignKey:CompanyID"`
}
