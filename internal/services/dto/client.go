package dto

import (
	"time"

	"rastaka_backend/internal/models"
)

type ClientListQuery struct {
	Type models.ClientType `form:"type" binding:"omitempty,client-type"`
}

// CreateClientRequest - multipart/form-data (логотип в поле "logo") или JSON
type CreateClientRequest struct {
	Name        string            `json:"name" form:"name" binding:"required,max=255"`
	Type        models.ClientType `json:"type" form:"type" binding:"required,client-type"`
	Description string            `json:"description" form:"description"`
	WebsiteURL  string            `json:"websiteUrl" form:"websiteUrl" binding:"omitempty,url,max=500"`
}

type UpdateClientRequest struct {
	Name        *string            `json:"name" form:"name" binding:"omitempty,min=1,max=255"`
	Type        *models.ClientType `json:"type" form:"type" binding:"omitempty,client-type"`
	Description *string            `json:"description" form:"description"`
	WebsiteURL  *string            `json:"websiteUrl" form:"websiteUrl" binding:"omitempty,max=500"`
}

// IsEmpty - нет ни одного поля для обновления
func (r *UpdateClientRequest) IsEmpty() bool {
	return r.Name == nil && r.Type == nil && r.Description == nil && r.WebsiteURL == nil
}

type ClientResponse struct {
	ID          ID                `json:"id"`
	Name        string            `json:"name"`
	Type        models.ClientType `json:"type"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	WebsiteURL  string            `json:"websiteUrl,omitempty"`
	LogoURL     string            `json:"logoUrl,omitempty"`
	Works       []*WorkResponse   `json:"works,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
