package services

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/services/dto"
	"rastaka_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortfolioService(env *testEnv) PortfolioService {
	return NewPortfolioService(repositories.NewPortfolioRepository(), repositories.NewCompanyRepository(),
		env.uploads, env.slugs, env.urls)
}

func idPtr(v int64) *dto.ID {
	id := dto.ID(v)
	return &id
}

func TestPortfolioService_CategoryRules(t *testing.T) {
	env := newTestEnv(t)
	svc := newPortfolioService(env)
	ctx := context.Background()
	company := testutil.CreateCompany(t, env.db, "Acme", "acme")

	cases := []struct {
		name string
		req  dto.CreatePortfolioRequest
		code int
	}{
		{
			name: "corporate without company",
			req:  dto.CreatePortfolioRequest{Title: "A", Type: models.PortfolioTypeLogo, Category: models.PortfolioCategoryCorporate},
			code: http.StatusBadRequest,
		},
		{
			name: "corporate with unknown company",
			req:  dto.CreatePortfolioRequest{Title: "A", Type: models.PortfolioTypeLogo, Category: models.PortfolioCategoryCorporate, CompanyID: idPtr(999)},
			code: http.StatusNotFound,
		},
		{
			name: "individual with company",
			req:  dto.CreatePortfolioRequest{Title: "A", Type: models.PortfolioTypeLogo, Category: models.PortfolioCategoryIndividual, CompanyID: idPtr(company.ID)},
			code: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := svc.Create(ctx, env.db, &req, []*multipart.FileHeader{formFile(t, "a.png", pngBytes(t, 10, 10))})
			requireAppError(t, err, tc.code)
		})
	}

	_, err := svc.Create(ctx, env.db, &dto.CreatePortfolioRequest{
		Title: "No files", Type: models.PortfolioTypeLogo, Category: models.PortfolioCategoryIndividual,
	}, nil)
	requireAppError(t, err, http.StatusBadRequest)

	// Отклоненные запросы не оставляют файлов и записей
	items, err := svc.List(ctx, env.db, &dto.PortfolioFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPortfolioService_SocialMediaStoresList(t *testing.T) {
	env := newTestEnv(t)
	svc := newPortfolioService(env)
	ctx := context.Background()
	company := testutil.CreateCompany(t, env.db, "Acme", "acme")

	item, err := svc.Create(ctx, env.db, &dto.CreatePortfolioRequest{
		Title:      "Campaign",
		Type:       models.PortfolioTypeSocialMedia,
		Category:   models.PortfolioCategoryCorporate,
		CompanyID:  idPtr(company.ID),
		ClientName: "ignored for corporate",
	}, []*multipart.FileHeader{
		formFile(t, "post-1.png", pngBytes(t, 10, 10)),
		formFile(t, "post-2.png", pngBytes(t, 10, 10)),
	})
	require.NoError(t, err)

	assert.Equal(t, "campaign", item.Slug)
	assert.Nil(t, item.MediaURL)
	assert.Nil(t, item.MediaType)
	assert.Empty(t, item.ClientName)
	require.NotNil(t, item.MediaURLs)
	require.Len(t, item.MediaURLs.URLs, 2)
	for _, u := range item.MediaURLs.URLs {
		assert.True(t, strings.HasPrefix(u, testBaseURL+"/uploads/post-"), u)
	}

	stored, err := repositories.NewPortfolioRepository().FindByID(env.db, item.ID.Int64())
	require.NoError(t, err)
	require.NotNil(t, stored.MediaURLs)
	var paths []string
	require.NoError(t, json.Unmarshal([]byte(*stored.MediaURLs), &paths))
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, "/uploads/"), p)
		assert.True(t, env.fileOnDisk(p))
	}

	require.NoError(t, svc.Delete(ctx, env.db, item.ID.Int64()))
	for _, p := range paths {
		assert.False(t, env.fileOnDisk(p))
	}
	_, err = svc.Get(ctx, env.db, item.ID.Int64())
	requireAppError(t, err, http.StatusNotFound)
}

func TestPortfolioService_UpdateReplacesMedia(t *testing.T) {
	env := newTestEnv(t)
	svc := newPortfolioService(env)
	repo := repositories.NewPortfolioRepository()
	ctx := context.Background()

	item, err := svc.Create(ctx, env.db, &dto.CreatePortfolioRequest{
		Title:      "Brand Book",
		Type:       models.PortfolioTypeSocialMedia,
		Category:   models.PortfolioCategoryIndividual,
		ClientName: "Aigerim",
	}, []*multipart.FileHeader{
		formFile(t, "a.png", pngBytes(t, 10, 10)),
		formFile(t, "b.png", pngBytes(t, 10, 10)),
	})
	require.NoError(t, err)
	assert.Equal(t, "Aigerim", item.ClientName)

	before, err := repo.FindByID(env.db, item.ID.Int64())
	require.NoError(t, err)
	oldPaths := mediaPaths(before)
	require.Len(t, oldPaths, 2)

	// Смена типа на LOGO с новым файлом: остается только одиночная форма
	title := "Brand Logo"
	logoType := models.PortfolioTypeLogo
	updated, err := svc.Update(ctx, env.db, item.ID.Int64(), &dto.UpdatePortfolioRequest{Title: &title, Type: &logoType},
		[]*multipart.FileHeader{formFile(t, "logo.png", pngBytes(t, 10, 10))})
	require.NoError(t, err)

	assert.Equal(t, "brand-logo", updated.Slug)
	require.NotNil(t, updated.MediaURL)
	assert.True(t, strings.HasPrefix(*updated.MediaURL, testBaseURL+"/uploads/logo-"))
	require.NotNil(t, updated.MediaType)
	assert.Equal(t, models.MediaImage, *updated.MediaType)
	assert.Nil(t, updated.MediaURLs)

	for _, p := range oldPaths {
		assert.False(t, env.fileOnDisk(p), p)
	}

	// Без файлов медиа не трогается
	desc := "updated"
	again, err := svc.Update(ctx, env.db, item.ID.Int64(), &dto.UpdatePortfolioRequest{Description: &desc}, nil)
	require.NoError(t, err)
	assert.Equal(t, updated.MediaURL, again.MediaURL)
	assert.Equal(t, "brand-logo", again.Slug)

	// Перевод в CORPORATE без компании запрещен
	corporate := models.PortfolioCategoryCorporate
	_, err = svc.Update(ctx, env.db, item.ID.Int64(), &dto.UpdatePortfolioRequest{Category: &corporate}, nil)
	requireAppError(t, err, http.StatusBadRequest)
}

func TestPortfolioService_ListAndStats(t *testing.T) {
	env := newTestEnv(t)
	svc := newPortfolioService(env)
	ctx := context.Background()
	company := testutil.CreateCompany(t, env.db, "Acme", "acme")

	testutil.CreatePortfolioItem(t, env.db, &models.PortfolioItem{
		Title: "Site", Slug: "site", Type: models.PortfolioTypeWebsite,
		Category: models.PortfolioCategoryCorporate, CompanyID: &company.ID,
	})
	testutil.CreatePortfolioItem(t, env.db, &models.PortfolioItem{
		Title: "Logo", Slug: "logo", Type: models.PortfolioTypeLogo, Category: models.PortfolioCategoryIndividual,
	})

	logos, err := svc.List(ctx, env.db, &dto.PortfolioFilter{Type: models.PortfolioTypeLogo})
	require.NoError(t, err)
	require.Len(t, logos, 1)
	assert.Equal(t, "logo", logos[0].Slug)

	byCompany, err := svc.List(ctx, env.db, &dto.PortfolioFilter{CompanyID: idPtr(company.ID)})
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	require.NotNil(t, byCompany[0].Company)
	assert.Equal(t, "acme", byCompany[0].Company.Slug)

	stats, err := svc.Stats(ctx, env.db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByType[string(models.PortfolioTypeWebsite)])
	assert.Equal(t, int64(1), stats.ByCategory[string(models.PortfolioCategoryIndividual)])

	found, err := svc.GetBySlug(ctx, env.db, "site")
	require.NoError(t, err)
	assert.Equal(t, "Site", found.Title)
}
