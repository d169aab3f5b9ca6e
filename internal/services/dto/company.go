package dto

import "time"

// CreateCompanyRequest - multipart/form-data, логотип в поле "logo"
type CreateCompanyRequest struct {
	Name           string `json:"name" form:"name" binding:"required,max=255"`
	Description    string `json:"description" form:"description"`
	SeoTitle       string `json:"seoTitle" form:"seoTitle" binding:"max=255"`
	SeoDescription string `json:"seoDescription" form:"seoDescription"`
	SeoKeywords    string `json:"seoKeywords" form:"seoKeywords"`
}

type UpdateCompanyRequest struct {
	Name           *string `json:"name" form:"name" binding:"omitempty,min=1,max=255"`
	Description    *string `json:"description" form:"description"`
	SeoTitle       *string `json:"seoTitle" form:"seoTitle" binding:"omitempty,max=255"`
	SeoDescription *string `json:"seoDescription" form:"seoDescription"`
	SeoKeywords    *string `json:"seoKeywords" form:"seoKeywords"`
}

func (r *UpdateCompanyRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.SeoTitle == nil && r.SeoDescription == nil && r.SeoKeywords == nil
}

type CompanyResponse struct {
	ID             ID                       `json:"id"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description,omitempty"`
	Slug           string                   `json:"slug"`
	Logo           string                   `json:"logo,omitempty"`
	SeoTitle       string                   `json:"seoTitle,omitempty"`
	SeoDescription string                   `json:"seoDescription,omitempty"`
	SeoKeywords    string                   `json:"seoKeywords,omitempty"`
	PortfolioCount *int64                   `json:"portfolioCount,omitempty"`
	PortfolioItems []*PortfolioItemResponse `json:"portfolioItems,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}
