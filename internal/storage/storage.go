package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrNotFound = errors.New("file not found")

// Storage - хранилище загруженных файлов. key - имя объекта без префикса.
type Storage interface {
	// Save сохраняет файл под ключом key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete удаляет файл. Отсутствующий файл не ошибка.
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)

	// GetURL возвращает значение, которое записывается в сущности:
	// относительный путь (/uploads/<key>) для local или полный URL для s3.
	GetURL(key string) string

	// KeyFromURL - обратное преобразование; false, если URL не из этого хранилища
	KeyFromURL(url string) (string, bool)

	Provider() string
}

// Config - параметры хранилища
type Config struct {
	Type         string // local, s3, cloudflare_r2
	BasePath     string // local: каталог с файлами
	PublicPrefix string // local: префикс публичного пути (/uploads)
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	Endpoint     string // R2 или другой S3-совместимый сервис
	PublicURL    string // публичный адрес бакета (CDN, r2.dev)
	UsePathStyle bool
}

// NewStorage создает хранилище по конфигурации
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3", "cloudflare_r2":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// cleanKey не дает выйти за пределы хранилища через "../"
func cleanKey(key string) (string, error) {
	key = strings.TrimLeft(strings.ReplaceAll(key, "\\", "/"), "/")
	if key == "" {
		return "", errors.New("empty storage key")
	}
	for _, part := range strings.Split(key, "/") {
		if part == ".." || part == "." || part == "" {
			return "", fmt.Errorf("invalid storage key: %q", key)
		}
	}
	return key, nil
}
