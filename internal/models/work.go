package models

import "time"

type Work struct {
	BaseModel
	ClientID       int64      `gorm:"not null;index"`
	Type           WorkType   `gorm:"type:varchar(20);not null;index"`
	Status         WorkStatus `gorm:"type:varchar(20);not null;default:'PUBLISHED';index"`
	Title          string     `gorm:"type:varchar(255);not null"`
	Slug           string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	ShortDesc      string     `gorm:"type:text"`
	HeroSubtitle   string     `gorm:"type:varchar(500)"`
	PublishDate    time.Time  `gorm:"index"`
	VisitURL       string     `gorm:"type:varchar(500)"`
	IsFeatured     bool       `gorm:"default:false"`
	SeoTitle       string     `gorm:"type:varchar(255)"`
	SeoDescription string     `gorm:"type:text"`
	SeoKeywords    string     `gorm:"type:text"`

	// Relations
	Client   *Client       `gorm:"foreignKey:ClientID"`
	Tags     []Tag         `gorm:"many2many:work_tags;"`
	Sections []WorkSection `gorm:"foreignKey:WorkID"`
	Media    []Media       `gorm:"foreignKey:WorkID"`
}

type Tag struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null"`
	Slug string `gorm:"type:varchar(120);uniqueIndex;not null"`
}

type WorkSection struct {
	BaseModel
	WorkID      int64       `gorm:"not null;index"`
	SectionType SectionType `gorm:"type:varchar(20);not null"`
	Title       string      `gorm:"type:varchar(255)"`
	Body        string      `gorm:"type:text"`
	SortOrder   int         `gorm:"default:0"`
	Highlight   string      `gorm:"type:text"`

	// Relations
	Media []Media `gorm:"foreignKey:SectionID"`
}

type Media struct {
	BaseModel
	WorkID       int64         `gorm:"not null;index"`
	SectionID    *int64        `gorm:"index"`
	FileType     MediaFileType `gorm:"type:varchar(10);not null"`
	FileURL      string        `gorm:"type:varchar(500);not null"`
	AltText      string        `gorm:"type:varchar(255)"`
	ThumbnailURL string        `gorm:"type:varchar(500)"`
	IsPrimary    bool          `gorm:"default:false"`
	SortOrder    int           `gorm:"default:0"`
}
