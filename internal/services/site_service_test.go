package services

import (
	"context"
	"encoding/xml"
	"net/http"
	"testing"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFrontendURL = "https://rastaka.test"

func newSiteService(env *testEnv) SiteService {
	return NewSiteService(repositories.NewSiteRepository(), repositories.NewPortfolioRepository(),
		repositories.NewCompanyRepository(), env.urls, testFrontendURL+"/")
}

func strPtr(s string) *string { return &s }

func TestSiteService_Config(t *testing.T) {
	env := newTestEnv(t)
	svc := newSiteService(env)
	ctx := context.Background()

	cfg, err := svc.GetConfig(ctx, env.db)
	require.NoError(t, err)
	assert.Equal(t, "Rastaka", cfg.SiteName)

	updated, err := svc.UpdateConfig(ctx, env.db, &dto.UpdateSiteConfigRequest{
		Phone:        strPtr("+7 700 000 00 00"),
		InstagramURL: strPtr("https://instagram.com/rastaka"),
	})
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, updated.ID)
	assert.Equal(t, "Rastaka", updated.SiteName)
	assert.Equal(t, "+7 700 000 00 00", updated.Phone)

	seo, err := svc.UpdateSeoConfig(ctx, env.db, &dto.UpdateSeoConfigRequest{
		SiteTitle: strPtr("Rastaka Studio"),
		ExtraMeta: map[string]string{"theme-color": "#000000"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rastaka Studio", seo.SiteTitle)

	again, err := svc.GetSeoConfig(ctx, env.db)
	require.NoError(t, err)
	assert.Equal(t, "Rastaka Studio", again.SiteTitle)
	assert.Equal(t, "#000000", again.ExtraMeta["theme-color"])
}

func TestSiteService_Metadata(t *testing.T) {
	env := newTestEnv(t)
	svc := newSiteService(env)
	ctx := context.Background()

	company := testutil.CreateCompany(t, env.db, "Acme", "acme")
	media := "/uploads/site.png"
	testutil.CreatePortfolioItem(t, env.db, &models.PortfolioItem{
		Title: "Site", Slug: "site", Type: models.PortfolioTypeWebsite, Description: "Landing page",
		Category: models.PortfolioCategoryCorporate, CompanyID: &company.ID, MediaURL: &media,
	})

	_, err := svc.Metadata(ctx, env.db, "work", "site")
	requireAppError(t, err, http.StatusBadRequest)

	_, err = svc.Metadata(ctx, env.db, MetadataTypePortfolio, "missing")
	requireAppError(t, err, http.StatusNotFound)

	meta, err := svc.Metadata(ctx, env.db, MetadataTypePortfolio, "site")
	require.NoError(t, err)
	assert.Equal(t, "Site - Rastaka Portfolio", meta.Title)
	assert.Equal(t, "Landing page", meta.Description)
	assert.Equal(t, testBaseURL+"/uploads/site.png", meta.Image)
	assert.Equal(t, testFrontendURL+"/portfolio/site", meta.URL)
	assert.Equal(t, "article", meta.Type)
	assert.NotNil(t, meta.PublishedTime)

	meta, err = svc.Metadata(ctx, env.db, MetadataTypeCompany, "acme")
	require.NoError(t, err)
	assert.Equal(t, testFrontendURL+"/companies/acme", meta.URL)
	assert.Equal(t, "website", meta.Type)
	assert.Nil(t, meta.PublishedTime)
}

func TestSiteService_SitemapAndRobots(t *testing.T) {
	env := newTestEnv(t)
	svc := newSiteService(env)
	ctx := context.Background()

	testutil.CreateCompany(t, env.db, "Acme", "acme")
	testutil.CreatePortfolioItem(t, env.db, &models.PortfolioItem{
		Title: "Logo", Slug: "logo", Type: models.PortfolioTypeLogo, Category: models.PortfolioCategoryIndividual,
	})

	raw, err := svc.Sitemap(ctx, env.db)
	require.NoError(t, err)

	var set sitemapURLSet
	require.NoError(t, xml.Unmarshal(raw, &set))
	// home + 1 работа + 1 компания + 4 статические страницы
	require.Len(t, set.URLs, 7)

	byLoc := make(map[string]sitemapURL, len(set.URLs))
	for _, u := range set.URLs {
		byLoc[u.Loc] = u
	}
	assert.Equal(t, "1.0", byLoc[testFrontendURL+"/"].Priority)
	assert.Equal(t, "0.8", byLoc[testFrontendURL+"/portfolio/logo"].Priority)
	assert.NotEmpty(t, byLoc[testFrontendURL+"/portfolio/logo"].LastMod)
	assert.Equal(t, "0.7", byLoc[testFrontendURL+"/companies/acme"].Priority)
	assert.Equal(t, "0.6", byLoc[testFrontendURL+"/social-media"].Priority)

	assert.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: "+testFrontendURL+"/sitemap.xml\n", svc.RobotsTxt())
}
