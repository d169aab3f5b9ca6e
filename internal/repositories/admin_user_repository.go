package repositories

import (
	"errors"
	"strings"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrAdminAlreadyExists = errors.New("admin user already exists")
)

type AdminUserRepository interface {
	Create(db *gorm.DB, user *models.AdminUser) error
	FindByID(db *gorm.DB, id int64) (*models.AdminUser, error)
	FindByEmail(db *gorm.DB, email string) (*models.AdminUser, error)
	Count(db *gorm.DB) (int64, error)
}

type AdminUserRepositoryImpl struct{}

func NewAdminUserRepository() AdminUserRepository {
	return &AdminUserRepositoryImpl{}
}

func (r *AdminUserRepositoryImpl) Create(db *gorm.DB, user *models.AdminUser) error {
	user.Email = normalizeEmail(user.Email)
	err := db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAdminAlreadyExists
	}
	return err
}

func (r *AdminUserRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *AdminUserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *AdminUserRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.AdminUser{}).Count(&count).Error
	return count, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
