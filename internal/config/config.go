package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host         string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"SERVER_PORT" env-default:"4000"`
	Env          string        `yaml:"env" env:"SERVER_ENV" env-default:"development"`
	BaseURL      string        `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:4000"`
	FrontendURL  string        `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:3000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10m"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"10m"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"` // postgres, mysql, sqlite
	DSN    string `yaml:"url" env:"DATABASE_URL"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_EXPIRES_IN" env-default:"168h"`
}

type StorageConfig struct {
	Type         string `yaml:"type" env:"STORAGE_TYPE" env-default:"local"` // local, s3, cloudflare_r2
	BasePath     string `yaml:"base_path" env:"UPLOAD_DIR" env-default:"./uploads"`
	PublicPrefix string `yaml:"public_prefix" env:"UPLOAD_PUBLIC_PREFIX" env-default:"/uploads"`
	Bucket       string `yaml:"bucket" env:"S3_BUCKET"`
	Region       string `yaml:"region" env:"S3_REGION" env-default:"auto"`
	AccessKey    string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey    string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Endpoint     string `yaml:"endpoint" env:"S3_ENDPOINT"`
	PublicURL    string `yaml:"public_url" env:"S3_PUBLIC_URL"`
	UsePathStyle bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE"`
}

type UploadConfig struct {
	MaxSize        int64 `yaml:"max_size" env:"UPLOAD_MAX_SIZE" env-default:"209715200"` // 200MB
	MaxFiles       int   `yaml:"max_files" env:"UPLOAD_MAX_FILES" env-default:"10"`
	ThumbnailWidth int   `yaml:"thumbnail_width" env:"UPLOAD_THUMBNAIL_WIDTH" env-default:"480"`
	ImageQuality   int   `yaml:"image_quality" env:"UPLOAD_IMAGE_QUALITY" env-default:"85"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT" env-default:"587"`
	SMTPUser     string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	FromEmail    string `yaml:"from_email" env:"SMTP_FROM"`
	FromName     string `yaml:"from_name" env:"SMTP_FROM_NAME" env-default:"Rastaka"`
	NotifyTo     string `yaml:"notify_to" env:"CONTACT_NOTIFY_TO"`
}

// Enabled - почта настроена, если указан хост и получатель уведомлений
func (e EmailConfig) Enabled() bool {
	return e.SMTPHost != "" && e.NotifyTo != ""
}

type AdminSeedConfig struct {
	Email    string `yaml:"email" env:"FIRST_ADMIN_EMAIL"`
	Password string `yaml:"password" env:"FIRST_ADMIN_PASSWORD"`
	Name     string `yaml:"name" env:"FIRST_ADMIN_NAME" env-default:"Administrator"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ORIGINS" env-separator:","`
}

// ContactConfig - ArchiveAfter == 0 отключает автоархивацию заявок
type ContactConfig struct {
	ArchiveAfter time.Duration `yaml:"archive_after" env:"CONTACT_ARCHIVE_AFTER"`
	ArchiveEvery time.Duration `yaml:"archive_every" env:"CONTACT_ARCHIVE_EVERY" env-default:"1h"`
}

type SlugConfig struct {
	MaxAttempts int `yaml:"max_attempts" env:"SLUG_MAX_ATTEMPTS" env-default:"1000"`
}

type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Database DatabaseConfig  `yaml:"database"`
	JWT      JWTConfig       `yaml:"jwt"`
	Storage  StorageConfig   `yaml:"storage"`
	Upload   UploadConfig    `yaml:"upload"`
	Email    EmailConfig     `yaml:"email"`
	Admin    AdminSeedConfig `yaml:"admin"`
	CORS     CORSConfig      `yaml:"cors"`
	Slug     SlugConfig      `yaml:"slug"`
	Contact  ContactConfig   `yaml:"contact"`
}

var AppConfig *Config

// LoadConfig читает yaml (CONFIG_PATH, по умолчанию config/config.yaml), если он есть,
// затем накладывает переменные окружения и значения по умолчанию.
func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	return LoadFrom(configPath)
}

// LoadFrom - то же самое с явным путем. Отсутствующий файл не ошибка.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Конфигурация целиком из окружения
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	AppConfig = &cfg
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database url is required (DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt secret is required (JWT_SECRET)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Slug.MaxAttempts <= 0 {
		return errors.New("slug max_attempts must be positive")
	}
	return nil
}

// IsProduction - окружение не development/test
func (c *Config) IsProduction() bool {
	return c.Server.Env != "development" && c.Server.Env != "test"
}

// Address - адрес для http.Server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func GetConfig() *Config {
	return AppConfig
}
