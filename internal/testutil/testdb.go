// Package testutil - общие помощники для тестов: БД в памяти и фикстуры.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"rastaka_backend/internal/auth"
	"rastaka_backend/internal/config"
	"rastaka_backend/internal/database"
	"rastaka_backend/internal/models"

	"gorm.io/gorm"
)

var dbCounter int64

// NewTestDB - отдельная sqlite-база в памяти на каждый тест, с миграциями
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&dbCounter, 1))

	db, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: dsn}, false)
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// CreateAdmin создает администратора с захешированным паролем
func CreateAdmin(t *testing.T, db *gorm.DB, email, password string, role models.AdminRole) *models.AdminUser {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Не удалось хешировать пароль: %v", err)
	}
	user := &models.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test " + string(role),
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Не удалось создать администратора %s: %v", email, err)
	}
	return user
}

func CreateClient(t *testing.T, db *gorm.DB, name, slug string, clientType models.ClientType) *models.Client {
	t.Helper()

	client := &models.Client{Name: name, Slug: slug, Type: clientType}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Не удалось создать клиента: %v", err)
	}
	return client
}

func CreateWork(t *testing.T, db *gorm.DB, clientID int64, title, slug string, status models.WorkStatus) *models.Work {
	t.Helper()

	work := &models.Work{
		ClientID:    clientID,
		Type:        models.WorkTypeWebsite,
		Status:      status,
		Title:       title,
		Slug:        slug,
		PublishDate: time.Now().UTC(),
	}
	if err := db.Create(work).Error; err != nil {
		t.Fatalf("Не удалось создать работу: %v", err)
	}
	return work
}

func CreateCompany(t *testing.T, db *gorm.DB, name, slug string) *models.Company {
	t.Helper()

	company := &models.Company{Name: name, Slug: slug}
	if err := db.Create(company).Error; err != nil {
		t.Fatalf("Не удалось создать компанию: %v", err)
	}
	return company
}

func CreatePortfolioItem(t *testing.T, db *gorm.DB, item *models.PortfolioItem) *models.PortfolioItem {
	t.Helper()

	if item.PublishDate.IsZero() {
		item.PublishDate = time.Now().UTC()
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("Не удалось создать элемент портфолио: %v", err)
	}
	return item
}
