package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"time"

	"rastaka_backend/internal/mediaurl"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MetadataTypePortfolio = "portfolio"
	MetadataTypeCompany   = "company"

	defaultSiteTitle = "Rastaka Portfolio"
)

// staticPages - разделы фронтенда, которые всегда попадают в sitemap
var staticPages = []string{"/websites", "/logos", "/reels", "/social-media"}

type SiteService interface {
	GetConfig(ctx context.Context, db *gorm.DB) (*dto.SiteConfigResponse, error)
	UpdateConfig(ctx context.Context, db *gorm.DB, req *dto.UpdateSiteConfigRequest) (*dto.SiteConfigResponse, error)

	// SEO
	GetSeoConfig(ctx context.Context, db *gorm.DB) (*dto.SeoConfigResponse, error)
	UpdateSeoConfig(ctx context.Context, db *gorm.DB, req *dto.UpdateSeoConfigRequest) (*dto.SeoConfigResponse, error)
	Metadata(ctx context.Context, db *gorm.DB, pageType, slug string) (*dto.PageMetadata, error)
	Sitemap(ctx context.Context, db *gorm.DB) ([]byte, error)
	RobotsTxt() string
}

type siteService struct {
	siteRepo      repositories.SiteRepository
	portfolioRepo repositories.PortfolioRepository
	companyRepo   repositories.CompanyRepository
	urls          *mediaurl.Transformer
	frontendURL   string
}

func NewSiteService(
	siteRepo repositories.SiteRepository,
	portfolioRepo repositories.PortfolioRepository,
	companyRepo repositories.CompanyRepository,
	urls *mediaurl.Transformer,
	frontendURL string,
) SiteService {
	return &siteService{
		siteRepo:      siteRepo,
		portfolioRepo: portfolioRepo,
		companyRepo:   companyRepo,
		urls:          urls,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
	}
}

func (s *siteService) GetConfig(ctx context.Context, db *gorm.DB) (*dto.SiteConfigResponse, error) {
	cfg, err := s.siteRepo.GetSiteConfig(db)
	if err != nil {
		return nil, handleSiteError(err)
	}
	return dto.NewSiteConfigResponse(cfg), nil
}

func (s *siteService) UpdateConfig(ctx context.Context, db *gorm.DB, req *dto.UpdateSiteConfigRequest) (*dto.SiteConfigResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, handleSiteError(tx.Error)
	}
	defer tx.Rollback()

	cfg, err := s.siteRepo.GetSiteConfig(tx)
	if err != nil {
		return nil, handleSiteError(err)
	}

	setString(&cfg.SiteName, req.SiteName)
	setString(&cfg.SiteDescription, req.SiteDescription)
	setString(&cfg.Email, req.Email)
	setString(&cfg.Phone, req.Phone)
	setString(&cfg.Address, req.Address)
	setString(&cfg.FacebookURL, req.FacebookURL)
	setString(&cfg.InstagramURL, req.InstagramURL)
	setString(&cfg.TwitterURL, req.TwitterURL)
	setString(&cfg.LinkedinURL, req.LinkedinURL)
	setString(&cfg.YoutubeURL, req.YoutubeURL)
	setString(&cfg.WhatsappNumber, req.WhatsappNumber)
	setString(&cfg.FooterText, req.FooterText)

	if err := s.siteRepo.SaveSiteConfig(tx, cfg); err != nil {
		return nil, handleSiteError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, handleSiteError(err)
	}
	return dto.NewSiteConfigResponse(cfg), nil
}

func (s *siteService) GetSeoConfig(ctx context.Context, db *gorm.DB) (*dto.SeoConfigResponse, error) {
	cfg, err := s.siteRepo.GetSeoConfig(db)
	if err != nil {
		return nil, handleSiteError(err)
	}
	return newSeoConfigResponse(cfg), nil
}

func (s *siteService) UpdateSeoConfig(ctx context.Context, db *gorm.DB, req *dto.UpdateSeoConfigRequest) (*dto.SeoConfigResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, handleSiteError(tx.Error)
	}
	defer tx.Rollback()

	cfg, err := s.siteRepo.GetSeoConfig(tx)
	if err != nil {
		return nil, handleSiteError(err)
	}

	setString(&cfg.SiteTitle, req.SiteTitle)
	setString(&cfg.SiteDescription, req.SiteDescription)
	setString(&cfg.SiteKeywords, req.SiteKeywords)
	setString(&cfg.OgImage, req.OgImage)
	setString(&cfg.TwitterHandle, req.TwitterHandle)
	if req.ExtraMeta != nil {
		meta := datatypes.JSONMap{}
		for k, v := range req.ExtraMeta {
			meta[k] = v
		}
		cfg.ExtraMeta = meta
	}

	if err := s.siteRepo.SaveSeoConfig(tx, cfg); err != nil {
		return nil, handleSiteError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, handleSiteError(err)
	}
	return newSeoConfigResponse(cfg), nil
}

// Metadata - meta/OpenGraph для страницы работы или компании
func (s *siteService) Metadata(ctx context.Context, db *gorm.DB, pageType, slug string) (*dto.PageMetadata, error) {
	if pageType != MetadataTypePortfolio && pageType != MetadataTypeCompany {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unsupported metadata type: %s", pageType))
	}

	seo, err := s.siteRepo.GetSeoConfig(db)
	if err != nil {
		return nil, handleSiteError(err)
	}
	siteTitle := seo.SiteTitle
	if siteTitle == "" {
		siteTitle = defaultSiteTitle
	}

	meta := &dto.PageMetadata{
		SiteName:      siteTitle,
		TwitterHandle: seo.TwitterHandle,
	}

	switch pageType {
	case MetadataTypePortfolio:
		item, err := s.portfolioRepo.FindBySlug(db, slug)
		if err != nil {
			return nil, handleSiteError(err)
		}
		meta.Title = firstNonEmpty(item.SeoTitle, item.Title+" - "+siteTitle)
		meta.Description = firstNonEmpty(item.SeoDescription, item.Description, seo.SiteDescription)
		meta.Keywords = firstNonEmpty(item.Keywords, seo.SiteKeywords)
		mediaURL := ""
		if item.MediaURL != nil {
			mediaURL = *item.MediaURL
		}
		meta.Image = s.pageImage(mediaURL, seo.OgImage)
		meta.URL = s.frontendURL + "/portfolio/" + item.Slug
		meta.Type = "article"
		published := item.PublishDate
		meta.PublishedTime = &published

	case MetadataTypeCompany:
		company, err := s.companyRepo.FindBySlug(db, slug)
		if err != nil {
			return nil, handleSiteError(err)
		}
		meta.Title = firstNonEmpty(company.SeoTitle, company.Name+" - "+siteTitle)
		meta.Description = firstNonEmpty(company.SeoDescription, company.Description, seo.SiteDescription)
		meta.Keywords = firstNonEmpty(company.SeoKeywords, seo.SiteKeywords)
		meta.Image = s.pageImage(company.Logo, seo.OgImage)
		meta.URL = s.frontendURL + "/companies/" + company.Slug
		meta.Type = "website"
	}

	return meta, nil
}

func (s *siteService) pageImage(path, fallback string) string {
	if path != "" {
		return s.urls.ToAbsoluteURL(path)
	}
	if fallback != "" {
		return s.urls.ToAbsoluteURL(fallback)
	}
	return ""
}

// ============================================
// SITEMAP / ROBOTS
// ============================================

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

func (s *siteService) Sitemap(ctx context.Context, db *gorm.DB) ([]byte, error) {
	items, err := s.portfolioRepo.ListForSitemap(db)
	if err != nil {
		return nil, handleSiteError(err)
	}
	companies, err := s.companyRepo.ListWithCounts(db)
	if err != nil {
		return nil, handleSiteError(err)
	}

	set := sitemapURLSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	set.URLs = append(set.URLs, sitemapURL{Loc: s.frontendURL + "/", ChangeFreq: "daily", Priority: "1.0"})

	for _, item := range items {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.frontendURL + "/portfolio/" + item.Slug,
			LastMod:    item.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	for _, company := range companies {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.frontendURL + "/companies/" + company.Slug,
			LastMod:    company.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	for _, page := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{Loc: s.frontendURL + page, ChangeFreq: "weekly", Priority: "0.6"})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return append([]byte(xml.Header), out...), nil
}

func (s *siteService) RobotsTxt() string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", s.frontendURL)
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ ФУНКЦИИ
// ============================================

func newSeoConfigResponse(c *models.SeoConfig) *dto.SeoConfigResponse {
	resp := &dto.SeoConfigResponse{
		ID:              dto.ID(c.ID),
		SiteTitle:       c.SiteTitle,
		SiteDescription: c.SiteDescription,
		SiteKeywords:    c.SiteKeywords,
		OgImage:         c.OgImage,
		TwitterHandle:   c.TwitterHandle,
		UpdatedAt:       c.UpdatedAt,
	}
	if len(c.ExtraMeta) > 0 {
		resp.ExtraMeta = map[string]interface{}(c.ExtraMeta)
	}
	return resp
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func handleSiteError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repositories.ErrPortfolioItemNotFound):
		return apperrors.NotFound(err, "portfolio", "Portfolio item not found")
	case errors.Is(err, repositories.ErrCompanyNotFound):
		return apperrors.NotFound(err, "company", "Company not found")
	}
	return apperrors.InternalError(err)
}
