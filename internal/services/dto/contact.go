package dto

import (
	"time"

	"rastaka_backend/internal/models"
)

type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email,max=255"`
	Phone   string `json:"phone" binding:"max=50"`
	Subject string `json:"subject" binding:"max=255"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactListQuery struct {
	Status models.ContactStatus `form:"status" binding:"omitempty,contact-status"`
	Limit  int                  `form:"limit" binding:"omitempty,min=1"`
	Offset int                  `form:"offset" binding:"omitempty,min=0"`
}

type UpdateContactStatusRequest struct {
	Status models.ContactStatus `json:"status" binding:"required,contact-status"`
}

type ContactResponse struct {
	ID        ID                   `json:"id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone,omitempty"`
	Subject   string               `json:"subject,omitempty"`
	Message   string               `json:"message"`
	Status    models.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type ContactListResponse struct {
	Submissions []*ContactResponse `json:"submissions"`
	Count       int                `json:"count"`
	Total       int64              `json:"total"`
	Limit       int                `json:"limit"`
	Offset      int                `json:"offset"`
}

type ContactStats struct {
	Total    int64 `json:"total"`
	Unread   int64 `json:"unread"`
	Read     int64 `json:"read"`
	Archived int64 `json:"archived"`
}

func NewContactResponse(s *models.ContactSubmission) *ContactResponse {
	return &ContactResponse{
		ID:        ID(s.ID),
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Subject:   s.Subject,
		Message:   s.Message,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
