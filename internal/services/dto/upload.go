package dto

import "rastaka_backend/internal/models"

// StoredFile - результат сохранения одного загруженного файла
type StoredFile struct {
	UploadID      int64
	PublicPath    string // то, что пишется в сущность: /uploads/<name>
	ThumbnailPath string // публичный путь превью, только для изображений
	MimeType      string
	FileType      models.MediaFileType
	Size          int64
}
