package repositories

import (
	"errors"
	"time"

	"rastaka_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact submission not found")

type ContactFilter struct {
	Status models.ContactStatus
	Limit  int
	Offset int
}

type ContactStats struct {
	Total    int64
	Unread   int64
	Read     int64
	Archived int64
}

type ContactRepository interface {
	Create(db *gorm.DB, submission *models.ContactSubmission) error
	FindByID(db *gorm.DB, id int64) (*models.ContactSubmission, error)
	List(db *gorm.DB, filter ContactFilter) ([]models.ContactSubmission, int64, error)
	UpdateStatus(db *gorm.DB, id int64, status models.ContactStatus) error
	Delete(db *gorm.DB, id int64) error
	Stats(db *gorm.DB) (*ContactStats, error)
	ArchiveReadBefore(db *gorm.DB, before time.Time) (int64, error)
}

type ContactRepositoryImpl struct{}

func NewContactRepository() ContactRepository {
	return &ContactRepositoryImpl{}
}

func (r *ContactRepositoryImpl) Create(db *gorm.DB, submission *models.ContactSubmission) error {
	if submission.Status == "" {
		submission.Status = models.ContactStatusUnread
	}
	return db.Create(submission).Error
}

func (r *ContactRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	if err := db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// List - новые сверху. total считается без учета limit/offset.
func (r *ContactRepositoryImpl) List(db *gorm.DB, filter ContactFilter) ([]models.ContactSubmission, int64, error) {
	var submissions []models.ContactSubmission
	var total int64

	query := db.Model(&models.ContactSubmission{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	err := query.Order("created_at DESC, id DESC").Find(&submissions).Error
	return submissions, total, err
}

func (r *ContactRepositoryImpl) UpdateStatus(db *gorm.DB, id int64, status models.ContactStatus) error {
	result := db.Model(&models.ContactSubmission{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	result := db.Delete(&models.ContactSubmission{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *ContactRepositoryImpl) Stats(db *gorm.DB) (*ContactStats, error) {
	type statusRow struct {
		Status models.ContactStatus
		Count  int64
	}
	var rows []statusRow
	err := db.Model(&models.ContactSubmission{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &ContactStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.ContactStatusUnread:
			stats.Unread = row.Count
		case models.ContactStatusRead:
			stats.Read = row.Count
		case models.ContactStatusArchived:
			stats.Archived = row.Count
		}
	}
	return stats, nil
}

// ArchiveReadBefore переводит прочитанные заявки, не менявшиеся с before, в ARCHIVED
func (r *ContactRepositoryImpl) ArchiveReadBefore(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Model(&models.ContactSubmission{}).
		Where("status = ? AND updated_at < ?", models.ContactStatusRead, before).
		Update("status", models.ContactStatusArchived)
	return result.RowsAffected, result.Error
}
