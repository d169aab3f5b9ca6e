package dto

import (
	"encoding/json"
	"time"

	"rastaka_backend/internal/models"
)

type PortfolioFilter struct {
	Type      models.PortfolioType     `form:"type" binding:"omitempty,portfolio-type"`
	Category  models.PortfolioCategory `form:"category" binding:"omitempty,portfolio-category"`
	CompanyID *ID                      `form:"companyId"`
}

// CreatePortfolioRequest - multipart/form-data, файлы в поле "media" (до 10)
type CreatePortfolioRequest struct {
	Title          string                   `form:"title" binding:"required,max=255"`
	Description    string                   `form:"description"`
	Type           models.PortfolioType     `form:"type" binding:"required,portfolio-type"`
	Category       models.PortfolioCategory `form:"category" binding:"required,portfolio-category"`
	WebsiteURL     string                   `form:"websiteUrl" binding:"omitempty,url,max=500"`
	ClientName     string                   `form:"clientName" binding:"max=255"`
	CompanyID      *ID                      `form:"companyId"`
	PublishDate    *time.Time               `form:"publishDate"`
	SeoTitle       string                   `form:"seoTitle" binding:"max=255"`
	SeoDescription string                   `form:"seoDescription"`
	Keywords       string                   `form:"keywords"`
}

type UpdatePortfolioRequest struct {
	Title          *string                   `form:"title" binding:"omitempty,min=1,max=255"`
	Description    *string                   `form:"description"`
	Type           *models.PortfolioType     `form:"type" binding:"omitempty,portfolio-type"`
	Category       *models.PortfolioCategory `form:"category" binding:"omitempty,portfolio-category"`
	WebsiteURL     *string                   `form:"websiteUrl" binding:"omitempty,max=500"`
	ClientName     *string                   `form:"clientName" binding:"omitempty,max=255"`
	CompanyID      *ID                       `form:"companyId"`
	PublishDate    *time.Time                `form:"publishDate"`
	SeoTitle       *string                   `form:"seoTitle" binding:"omitempty,max=255"`
	SeoDescription *string                   `form:"seoDescription"`
	Keywords       *string                   `form:"keywords"`
}

// MediaURLs - список абсолютных ссылок на медиа. Если сохраненное значение
// не разобралось как JSON-массив, в ответ уходит исходная строка (Raw).
type MediaURLs struct {
	URLs     []string
	Raw      string
	Unparsed bool
}

func (m MediaURLs) MarshalJSON() ([]byte, error) {
	if m.Unparsed {
		return json.Marshal(m.Raw)
	}
	if m.URLs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.URLs)
}

type PortfolioItemResponse struct {
	ID             ID                       `json:"id"`
	Title          string                   `json:"title"`
	Description    string                   `json:"description,omitempty"`
	Type           models.PortfolioType     `json:"type"`
	Category       models.PortfolioCategory `json:"category"`
	Slug           string                   `json:"slug"`
	MediaURL       *string                  `json:"mediaUrl"`
	MediaType      *models.MediaFileType    `json:"mediaType"`
	MediaURLs      *MediaURLs               `json:"mediaUrls"`
	WebsiteURL     string                   `json:"websiteUrl,omitempty"`
	ClientName     string                   `json:"clientName,omitempty"`
	CompanyID      *ID                      `json:"companyId"`
	Company        *CompanyResponse         `json:"company,omitempty"`
	PublishDate    time.Time                `json:"publishDate"`
	SeoTitle       string                   `json:"seoTitle,omitempty"`
	SeoDescription string                   `json:"seoDescription,omitempty"`
	Keywords       string                   `json:"keywords,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type PortfolioStats struct {
	Total      int64            `json:"total"`
	ByType     map[string]int64 `json:"byType"`
	ByCategory map[string]int64 `json:"byCategory"`
}
