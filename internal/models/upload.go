package models

import "gorm.io/datatypes"

// Upload - учет каждого сохраненного файла. Path - ключ в хранилище,
// PublicPath - то, что записывается в сущности (/uploads/<name>).
type Upload struct {
	BaseModel
	OriginalName    string        `gorm:"type:varchar(255)"`
	Path            string        `gorm:"type:varchar(500);not null;uniqueIndex"`
	PublicPath      string        `gorm:"type:varchar(500);not null;index"`
	MimeType        string        `gorm:"type:varchar(100)"`
	FileType        MediaFileType `gorm:"type:varchar(10)"`
	Size            int64
	StorageProvider string            `gorm:"type:varchar(20);default:'local'"`
	ThumbnailPath   string            `gorm:"type:varchar(500)"`
	Metadata        datatypes.JSONMap `gorm:"type:text"`
}
