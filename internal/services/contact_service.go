package services

import (
	"context"
	"errors"
	"strings"

	"rastaka_backend/internal/email"
	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/metrics"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	DefaultContactLimit = 50
	MaxContactLimit     = 100
)

type ContactService interface {
	// Submit сохраняет заявку; ошибка отправки письма не возвращается клиенту
	Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*dto.ContactResponse, error)
	List(ctx context.Context, db *gorm.DB, query *dto.ContactListQuery) (*dto.ContactListResponse, error)
	// Get помечает непрочитанную заявку как READ
	Get(ctx context.Context, db *gorm.DB, id int64) (*dto.ContactResponse, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status models.ContactStatus) (*dto.ContactResponse, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) error
	Stats(ctx context.Context, db *gorm.DB) (*dto.ContactStats, error)
}

type contactService struct {
	contactRepo repositories.ContactRepository
	notifier    *email.ContactNotifier
}

func NewContactService(contactRepo repositories.ContactRepository, notifier *email.ContactNotifier) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

func (s *contactService) Submit(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	submission := &models.ContactSubmission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  models.ContactStatusUnread,
	}

	if err := s.contactRepo.Create(db, submission); err != nil {
		return nil, handleContactError(err)
	}
	metrics.ContactSubmissionsTotal.Inc()
	logger.CtxInfo(ctx, "Contact submission received", "submission_id", submission.ID)

	s.notify(ctx, submission)
	return dto.NewContactResponse(submission), nil
}

func (s *contactService) notify(ctx context.Context, submission *models.ContactSubmission) {
	if !s.notifier.Enabled() {
		metrics.EmailNotificationsTotal.WithLabelValues("skipped").Inc()
		return
	}

	err := s.notifier.NotifyContact(ctx, email.ContactData{
		ID:          dto.ID(submission.ID).String(),
		Name:        submission.Name,
		Email:       submission.Email,
		Phone:       submission.Phone,
		Subject:     submission.Subject,
		Message:     submission.Message,
		SubmittedAt: submission.CreatedAt,
	})
	if err != nil {
		metrics.EmailNotificationsTotal.WithLabelValues("error").Inc()
		logger.CtxWithError(ctx, "Failed to send contact notification", err, "submission_id", submission.ID)
		return
	}
	metrics.EmailNotificationsTotal.WithLabelValues("sent").Inc()
}

func (s *contactService) List(ctx context.Context, db *gorm.DB, query *dto.ContactListQuery) (*dto.ContactListResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultContactLimit
	}
	if limit > MaxContactLimit {
		limit = MaxContactLimit
	}
	offset := query.Offset
	if offset < 0 {
		offset = 0
	}

	submissions, total, err := s.contactRepo.List(db, repositories.ContactFilter{
		Status: query.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, handleContactError(err)
	}

	result := make([]*dto.ContactResponse, len(submissions))
	for i := range submissions {
		result[i] = dto.NewContactResponse(&submissions[i])
	}

	return &dto.ContactListResponse{
		Submissions: result,
		Count:       len(result),
		Total:       total,
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func (s *contactService) Get(ctx context.Context, db *gorm.DB, id int64) (*dto.ContactResponse, error) {
	submission, err := s.contactRepo.FindByID(db, id)
	if err != nil {
		return nil, handleContactError(err)
	}

	if submission.Status == models.ContactStatusUnread {
		if err := s.contactRepo.UpdateStatus(db, id, models.ContactStatusRead); err != nil {
			return nil, handleContactError(err)
		}
		submission.Status = models.ContactStatusRead
	}
	return dto.NewContactResponse(submission), nil
}

func (s *contactService) UpdateStatus(ctx context.Context, db *gorm.DB, id int64, status models.ContactStatus) (*dto.ContactResponse, error) {
	if !models.OneOf(status, models.ContactStatuses) {
		return nil, apperrors.ErrInvalidStatus("contact", "Unknown contact status: "+string(status))
	}
	if err := s.contactRepo.UpdateStatus(db, id, status); err != nil {
		return nil, handleContactError(err)
	}

	submission, err := s.contactRepo.FindByID(db, id)
	if err != nil {
		return nil, handleContactError(err)
	}
	return dto.NewContactResponse(submission), nil
}

func (s *contactService) Delete(ctx context.Context, db *gorm.DB, id int64) error {
	if err := s.contactRepo.Delete(db, id); err != nil {
		return handleContactError(err)
	}
	logger.CtxInfo(ctx, "Contact submission deleted", "submission_id", id)
	return nil
}

func (s *contactService) Stats(ctx context.Context, db *gorm.DB) (*dto.ContactStats, error) {
	stats, err := s.contactRepo.Stats(db)
	if err != nil {
		return nil, handleContactError(err)
	}
	return &dto.ContactStats{
		Total:    stats.Total,
		Unread:   stats.Unread,
		Read:     stats.Read,
		Archived: stats.Archived,
	}, nil
}

func handleContactError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	if errors.Is(err, repositories.ErrContactNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(err, "contact", "Contact submission not found")
	}
	return apperrors.InternalError(err)
}
