package services

import (
	"context"
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

func newClientService(env *testEnv) ClientService {
	return NewClientService(repositories.NewClientRepository(), env.uploads, env.slugs, env.urls)
}

func newWorkService(env *testEnv) WorkService {
	return NewWorkService(repositories.NewWorkRepository(), repositories.NewClientRepository(),
		repositories.NewMediaRepository(), env.uploads, env.slugs, env.urls)
}

func TestClientService_CreateUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := newClientService(env)
	ctx := context.Background()

	logo := formFile(t, "Acme Logo.png", pngBytes(t, 20, 10))
	created, err := svc.Create(ctx, env.db, &dto.CreateClientRequest{Name: "Acme Studio", Type: models.ClientTypeCompany}, logo)
	require.NoError(t, err)
	assert.Equal(t, "acme-studio", created.Slug)
	assert.True(t, strings.HasPrefix(created.LogoURL, testBaseURL+"/uploads/acme-logo-"), created.LogoURL)

	twin, err := svc.Create(ctx, env.db, &dto.CreateClientRequest{Name: "Acme Studio", Type: models.ClientTypeIndividual}, nil)
	require.NoError(t, err)
	assert.Equal(t, "acme-studio-2", twin.Slug)

	_, err = svc.Update(ctx, env.db, created.ID.Int64(), &dto.UpdateClientRequest{}, nil)
	requireAppError(t, err, http.StatusBadRequest)

	name := "Bolt Agency"
	updated, err := svc.Update(ctx, env.db, created.ID.Int64(), &dto.UpdateClientRequest{Name: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, "bolt-agency", updated.Slug)
	assert.Equal(t, created.LogoURL, updated.LogoURL)

	// Клиента с работами удалить нельзя
	testutil.CreateWork(t, env.db, twin.ID.Int64(), "Site", "site", models.WorkStatusPublished)
	err = svc.Delete(ctx, env.db, twin.ID.Int64())
	requireAppError(t, err, http.StatusConflict)

	oldLogo := strings.TrimPrefix(created.LogoURL, testBaseURL)
	require.True(t, env.fileOnDisk(oldLogo))
	require.NoError(t, svc.Delete(ctx, env.db, created.ID.Int64()))
	assert.False(t, env.fileOnDisk(oldLogo))

	_, err = svc.GetByID(ctx, env.db, created.ID.Int64())
	requireAppError(t, err, http.StatusNotFound)
}

func TestClientService_RejectsNonImageLogo(t *testing.T) {
	env := newTestEnv(t)
	svc := newClientService(env)

	logo := formFile(t, "logo.png", []byte("definitely not an image"))
	_, err := svc.Create(context.Background(), env.db, &dto.CreateClientRequest{Name: "Acme", Type: models.ClientTypeCompany}, logo)
	requireAppError(t, err, http.StatusUnsupportedMediaType)

	clients, err := repositories.NewClientRepository().List(env.db, "")
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestWorkService_CreateWithCoverAndTags(t *testing.T) {
	env := newTestEnv(t)
	svc := newWorkService(env)
	ctx := context.Background()

	client := testutil.CreateClient(t, env.db, "Acme", "acme", models.ClientTypeCompany)
	tag, err := svc.CreateTag(ctx, env.db, &dto.CreateTagRequest{Name: "Brand Identity"})
	require.NoError(t, err)
	assert.Equal(t, "brand-identity", tag.Slug)

	_, err = svc.Create(ctx, env.db, &dto.CreateWorkRequest{ClientID: 999, Type: models.WorkTypeLogo, Title: "Ghost"}, nil)
	requireAppError(t, err, http.StatusNotFound)

	cover := formFile(t, "cover.png", pngBytes(t, 200, 100))
	work, err := svc.Create(ctx, env.db, &dto.CreateWorkRequest{
		ClientID: dto.ID(client.ID),
		Type:     models.WorkTypeLogo,
		Title:    "New Logo",
		TagIDs:   dto.IDList{tag.ID},
	}, cover)
	require.NoError(t, err)

	assert.Equal(t, "new-logo", work.Slug)
	assert.Equal(t, models.WorkStatusPublished, work.Status)
	require.Len(t, work.Tags, 1)
	assert.Equal(t, tag.ID, work.Tags[0].ID)
	require.Len(t, work.Media, 1)
	assert.True(t, work.Media[0].IsPrimary)
	assert.Equal(t, "New Logo", work.Media[0].AltText)
	assert.NotEmpty(t, work.Media[0].ThumbnailURL)
	require.NotNil(t, work.PrimaryMedia)

	list, err := svc.List(ctx, env.db, &dto.WorkListQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, repositories.DefaultPageSize, list.PageSize)

	drafts, err := svc.List(ctx, env.db, &dto.WorkListQuery{Status: models.WorkStatusDraft})
	require.NoError(t, err)
	assert.Zero(t, drafts.Total)

	// Пустой список tagIds снимает все теги, смена заголовка меняет slug
	title := "Final Logo"
	updated, err := svc.Update(ctx, env.db, work.ID.Int64(), &dto.UpdateWorkRequest{Title: &title, TagIDs: &dto.IDList{}})
	require.NoError(t, err)
	assert.Equal(t, "final-logo", updated.Slug)
	assert.Empty(t, updated.Tags)

	fileURL := strings.TrimPrefix(work.Media[0].FileURL, testBaseURL)
	require.True(t, env.fileOnDisk(fileURL))
	require.NoError(t, svc.Delete(ctx, env.db, work.ID.Int64()))
	assert.False(t, env.fileOnDisk(fileURL))

	_, err = svc.GetBySlug(ctx, env.db, "final-logo")
	requireAppError(t, err, http.StatusNotFound)
}

func TestWorkService_UnknownTag(t *testing.T) {
	env := newTestEnv(t)
	svc := newWorkService(env)

	client := testutil.CreateClient(t, env.db, "Acme", "acme", models.ClientTypeCompany)
	_, err := svc.Create(context.Background(), env.db, &dto.CreateWorkRequest{
		ClientID: dto.ID(client.ID),
		Type:     models.WorkTypeWebsite,
		Title:    "Site",
		TagIDs:   dto.IDList{42},
	}, nil)
	requireAppError(t, err, http.StatusNotFound)
}

func TestSectionAndMediaServices(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sections := NewSectionService(repositories.NewSectionRepository(), repositories.NewWorkRepository(), env.urls)
	media := NewMediaService(repositories.NewMediaRepository(), repositories.NewWorkRepository(),
		repositories.NewSectionRepository(), env.uploads, env.urls)

	client := testutil.CreateClient(t, env.db, "Acme", "acme", models.ClientTypeCompany)
	work := testutil.CreateWork(t, env.db, client.ID, "Site", "site", models.WorkStatusPublished)
	other := testutil.CreateWork(t, env.db, client.ID, "Other", "other", models.WorkStatusPublished)

	first, err := sections.Create(ctx, env.db, work.ID, &dto.CreateSectionRequest{SectionType: models.SectionTypeOverview, Title: "Overview"})
	require.NoError(t, err)
	second, err := sections.Create(ctx, env.db, work.ID, &dto.CreateSectionRequest{SectionType: models.SectionTypeResults, Title: "Results"})
	require.NoError(t, err)
	assert.Greater(t, second.SortOrder, first.SortOrder)

	_, err = sections.Create(ctx, env.db, 999, &dto.CreateSectionRequest{SectionType: models.SectionTypeOther})
	requireAppError(t, err, http.StatusNotFound)

	sectionID := first.ID
	_, err = media.Upload(ctx, env.db, models.MediaImage, &dto.UploadMediaRequest{WorkID: dto.ID(other.ID), SectionID: &sectionID},
		formFile(t, "a.png", pngBytes(t, 10, 10)))
	requireAppError(t, err, http.StatusBadRequest)

	a, err := media.Upload(ctx, env.db, models.MediaImage, &dto.UploadMediaRequest{WorkID: dto.ID(work.ID), SectionID: &sectionID, IsPrimary: true},
		formFile(t, "a.png", pngBytes(t, 10, 10)))
	require.NoError(t, err)
	b, err := media.Upload(ctx, env.db, models.MediaImage, &dto.UploadMediaRequest{WorkID: dto.ID(work.ID), SortOrder: 1},
		formFile(t, "b.png", pngBytes(t, 10, 10)))
	require.NoError(t, err)

	// Видео-эндпоинт не принимает картинки
	_, err = media.Upload(ctx, env.db, models.MediaVideo, &dto.UploadMediaRequest{WorkID: dto.ID(work.ID)},
		formFile(t, "c.png", pngBytes(t, 10, 10)))
	requireAppError(t, err, http.StatusUnsupportedMediaType)

	primary := true
	_, err = media.Update(ctx, env.db, b.ID.Int64(), &dto.UpdateMediaRequest{IsPrimary: &primary})
	require.NoError(t, err)

	list, err := media.ListByWork(ctx, env.db, work.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		assert.Equal(t, m.ID == b.ID, m.IsPrimary, "only the last primary wins")
	}

	// Удаление секции оставляет медиа у работы
	require.NoError(t, sections.Delete(ctx, env.db, first.ID.Int64()))
	list, err = media.ListByWork(ctx, env.db, work.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		assert.Nil(t, m.SectionID)
	}

	fileURL := strings.TrimPrefix(a.FileURL, testBaseURL)
	require.True(t, env.fileOnDisk(fileURL))
	require.NoError(t, media.Delete(ctx, env.db, a.ID.Int64()))
	assert.False(t, env.fileOnDisk(fileURL))
}

func TestCompanyService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCompanyService(repositories.NewCompanyRepository(), repositories.NewPortfolioRepository(), env.uploads, env.slugs, env.urls)
	ctx := context.Background()

	created, err := svc.Create(ctx, env.db, &dto.CreateCompanyRequest{Name: "Kaspi Bank"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "kaspi-bank", created.Slug)

	companyID := created.ID.Int64()
	testutil.CreatePortfolioItem(t, env.db, &models.PortfolioItem{
		Title: "Site", Slug: "site", Type: models.PortfolioTypeWebsite,
		Category: models.PortfolioCategoryCorporate, CompanyID: &companyID,
	})

	list, err := svc.List(ctx, env.db)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].PortfolioCount)
	assert.Equal(t, int64(1), *list[0].PortfolioCount)

	bySlug, err := svc.GetBySlug(ctx, env.db, "kaspi-bank")
	require.NoError(t, err)
	assert.Len(t, bySlug.PortfolioItems, 1)

	logos, err := svc.Portfolio(ctx, env.db, companyID, models.PortfolioTypeLogo)
	require.NoError(t, err)
	assert.Empty(t, logos)

	err = svc.Delete(ctx, env.db, companyID)
	requireAppError(t, err, http.StatusConflict)

	name := "Kaspi"
	updated, err := svc.Update(ctx, env.db, companyID, &dto.UpdateCompanyRequest{Name: &name}, nil)
	require.NoError(t, err)
	assert.Equal(t, "kaspi", updated.Slug)
}
