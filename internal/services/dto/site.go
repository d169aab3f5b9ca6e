package dto

import (
	"time"

	"rastaka_backend/internal/models"
)

type UpdateSiteConfigRequest struct {
	SiteName        *string `json:"siteName" binding:"omitempty,min=1,max=255"`
	SiteDescription *string `json:"siteDescription"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone" binding:"omitempty,max=50"`
	Address         *string `json:"address"`
	FacebookURL     *string `json:"facebookUrl" binding:"omitempty,max=500"`
	InstagramURL    *string `json:"instagramUrl" binding:"omitempty,max=500"`
	TwitterURL      *string `json:"twitterUrl" binding:"omitempty,max=500"`
	LinkedinURL     *string `json:"linkedinUrl" binding:"omitempty,max=500"`
	YoutubeURL      *string `json:"youtubeUrl" binding:"omitempty,max=500"`
	WhatsappNumber  *string `json:"whatsappNumber" binding:"omitempty,max=50"`
	FooterText      *string `json:"footerText"`
}

type SiteConfigResponse struct {
	ID              ID        `json:"id"`
	SiteName        string    `json:"siteName"`
	SiteDescription string    `json:"siteDescription"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	FacebookURL     string    `json:"facebookUrl"`
	InstagramURL    string    `json:"instagramUrl"`
	TwitterURL      string    `json:"twitterUrl"`
	LinkedinURL     string    `json:"linkedinUrl"`
	YoutubeURL      string    `json:"youtubeUrl"`
	WhatsappNumber  string    `json:"whatsappNumber"`
	FooterText      string    `json:"footerText"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func NewSiteConfigResponse(c *models.SiteConfig) *SiteConfigResponse {
	return &SiteConfigResponse{
		ID:              ID(c.ID),
		SiteName:        c.SiteName,
		SiteDescription: c.SiteDescription,
		Email:           c.Email,
		Phone:           c.Phone,
		Address:         c.Address,
		FacebookURL:     c.FacebookURL,
		InstagramURL:    c.InstagramURL,
		TwitterURL:      c.TwitterURL,
		LinkedinURL:     c.LinkedinURL,
		YoutubeURL:      c.YoutubeURL,
		WhatsappNumber:  c.WhatsappNumber,
		FooterText:      c.FooterText,
		UpdatedAt:       c.UpdatedAt,
	}
}

// SEO

type UpdateSeoConfigRequest struct {
	SiteTitle       *string           `json:"siteTitle" binding:"omitempty,min=1,max=255"`
	SiteDescription *string           `json:"siteDescription"`
	SiteKeywords    *string           `json:"siteKeywords"`
	OgImage         *string           `json:"ogImage" binding:"omitempty,max=500"`
	TwitterHandle   *string           `json:"twitterHandle" binding:"omitempty,max=100"`
	ExtraMeta       map[string]string `json:"extraMeta"`
}

type SeoConfigResponse struct {
	ID              ID                     `json:"id"`
	SiteTitle       string                 `json:"siteTitle"`
	SiteDescription string                 `json:"siteDescription"`
	SiteKeywords    string                 `json:"siteKeywords"`
	OgImage         string                 `json:"ogImage,omitempty"`
	TwitterHandle   string                 `json:"twitterHandle,omitempty"`
	ExtraMeta       map[string]interface{} `json:"extraMeta,omitempty"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// PageMetadata - meta/OpenGraph данные для одной страницы фронтенда
type PageMetadata struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Keywords      string     `json:"keywords,omitempty"`
	Image         string     `json:"image,omitempty"`
	URL           string     `json:"url"`
	Type          string     `json:"type"`
	SiteName      string     `json:"siteName"`
	TwitterHandle string     `json:"twitterHandle,omitempty"`
	PublishedTime *time.Time `json:"publishedTime,omitempty"`
}
