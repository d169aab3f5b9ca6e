package repositories

import (
	"testing"
	"time"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAdminUserRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewAdminUserRepository()

	user := &models.AdminUser{Email: " Admin@Rastaka.KZ ", PasswordHash: "x", Name: "Admin", Role: models.AdminRoleAdmin}
	require.NoError(t, repo.Create(db, user))
	assert.Equal(t, "admin@rastaka.kz", user.Email)

	found, err := repo.FindByEmail(db, "ADMIN@rastaka.kz")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByID(db, 999)
	assert.ErrorIs(t, err, ErrAdminNotFound)

	dup := &models.AdminUser{Email: "admin@rastaka.kz", PasswordHash: "y", Name: "Dup"}
	assert.ErrorIs(t, repo.Create(db, dup), ErrAdminAlreadyExists)

	count, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestClientRepository_FindBySlugOnlyPublishedWorks(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewClientRepository()

	client := testutil.CreateClient(t, db, "Acme", "acme", models.ClientTypeCompany)
	testutil.CreateWork(t, db, client.ID, "Live", "live", models.WorkStatusPublished)
	testutil.CreateWork(t, db, client.ID, "Draft", "draft", models.WorkStatusDraft)

	found, err := repo.FindBySlug(db, "acme")
	require.NoError(t, err)
	require.Len(t, found.Works, 1)
	assert.Equal(t, "live", found.Works[0].Slug)

	count, err := repo.CountWorks(db, client.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = repo.FindBySlug(db, "missing")
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientRepository_ListAndSlug(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewClientRepository()

	testutil.CreateClient(t, db, "Zeta", "zeta", models.ClientTypeIndividual)
	b := testutil.CreateClient(t, db, "Beta", "beta", models.ClientTypeCompany)

	all, err := repo.List(db, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Beta", all[0].Name)

	companies, err := repo.List(db, models.ClientTypeCompany)
	require.NoError(t, err)
	require.Len(t, companies, 1)

	taken, err := repo.SlugExists(db, "beta", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.SlugExists(db, "beta", b.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	require.NoError(t, repo.Delete(db, b.ID))
	assert.ErrorIs(t, repo.Delete(db, b.ID), ErrClientNotFound)
}

func TestWorkRepository_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewWorkRepository()

	person := testutil.CreateClient(t, db, "Person", "person", models.ClientTypeIndividual)
	corp := testutil.CreateClient(t, db, "Corp", "corp", models.ClientTypeCompany)

	testutil.CreateWork(t, db, person.ID, "A", "a", models.WorkStatusPublished)
	testutil.CreateWork(t, db, corp.ID, "B", "b", models.WorkStatusPublished)
	testutil.CreateWork(t, db, corp.ID, "C", "c", models.WorkStatusDraft)

	works, total, err := repo.List(db, WorkFilter{Status: models.WorkStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, works, 2)

	works, total, err = repo.List(db, WorkFilter{ClientType: models.ClientTypeCompany})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, w := range works {
		assert.Equal(t, corp.ID, w.ClientID)
		require.NotNil(t, w.Client)
	}

	works, total, err = repo.List(db, WorkFilter{Pagination: Pagination{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, works, 1)
}

func TestWorkRepository_TagsAndCascadeDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewWorkRepository()
	sections := NewSectionRepository()
	media := NewMediaRepository()

	client := testutil.CreateClient(t, db, "Acme", "acme", models.ClientTypeCompany)
	work := testutil.CreateWork(t, db, client.ID, "Site", "site", models.WorkStatusPublished)

	t1 := &models.Tag{Name: "Branding", Slug: "branding"}
	t2 := &models.Tag{Name: "Web", Slug: "web"}
	require.NoError(t, repo.CreateTag(db, t1))
	require.NoError(t, repo.CreateTag(db, t2))

	tags, err := repo.FindTagsByIDs(db, []int64{t1.ID, t2.ID})
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceTags(db, work, tags))

	_, err = repo.FindTagsByIDs(db, []int64{t1.ID, 999})
	assert.ErrorIs(t, err, ErrTagNotFound)

	section := &models.WorkSection{WorkID: work.ID, SectionType: models.SectionTypeOverview, Title: "Overview"}
	require.NoError(t, sections.Create(db, section))
	m := &models.Media{WorkID: work.ID, SectionID: &section.ID, FileType: models.MediaImage, FileURL: "/uploads/a.png"}
	require.NoError(t, media.Create(db, m))

	loaded, err := repo.FindBySlug(db, "site")
	require.NoError(t, err)
	assert.Len(t, loaded.Tags, 2)
	require.Len(t, loaded.Sections, 1)
	assert.Len(t, loaded.Sections[0].Media, 1)
	assert.Len(t, loaded.Media, 1)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.Delete(tx, work.ID)
	}))

	_, err = repo.FindByID(db, work.ID)
	assert.ErrorIs(t, err, ErrWorkNotFound)

	var left int64
	db.Model(&models.Media{}).Where("work_id = ?", work.ID).Count(&left)
	assert.Zero(t, left)
	db.Table("work_tags").Where("work_id = ?", work.ID).Count(&left)
	assert.Zero(t, left)

	// теги остаются
	all, err := repo.ListTags(db)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSectionRepository_DeleteDetachesMedia(t *testing.T) {
	db := testutil.NewTestDB(t)
	sections := NewSectionRepository()
	media := NewMediaRepository()

	client := testutil.CreateClient(t, db, "Acme", "acme", models.ClientTypeCompany)
	work := testutil.CreateWork(t, db, client.ID, "Site", "site", models.WorkStatusPublished)

	next, err := sections.NextSortOrder(db, work.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	section := &models.WorkSection{WorkID: work.ID, SectionType: models.SectionTypeGoals, SortOrder: 4}
	require.NoError(t, sections.Create(db, section))

	next, err = sections.NextSortOrder(db, work.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, next)

	m := &models.Media{WorkID: work.ID, SectionID: &section.ID, FileType: models.MediaImage, FileURL: "/uploads/a.png"}
	require.NoError(t, media.Create(db, m))

	require.NoError(t, sections.Delete(db, section.ID))

	reloaded, err := media.FindByID(db, m.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.SectionID)
}

func TestMediaRepository_ClearPrimary(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMediaRepository()

	client := testutil.CreateClient(t, db, "Acme", "acme", models.ClientTypeCompany)
	work := testutil.CreateWork(t, db, client.ID, "Site", "site", models.WorkStatusPublished)

	first := &models.Media{WorkID: work.ID, FileType: models.MediaImage, FileURL: "/uploads/1.png", IsPrimary: true, SortOrder: 1}
	second := &models.Media{WorkID: work.ID, FileType: models.MediaImage, FileURL: "/uploads/2.png", SortOrder: 0}
	require.NoError(t, repo.Create(db, first))
	require.NoError(t, repo.Create(db, second))

	require.NoError(t, repo.ClearPrimary(db, work.ID, second.ID))

	list, err := repo.ListByWork(db, work.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.False(t, list[1].IsPrimary)
}

func TestCompanyRepository_ListWithCounts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewCompanyRepository()

	acme := testutil.CreateCompany(t, db, "Acme", "acme")
	testutil.CreateCompany(t, db, "Bolt", "bolt")

	for i, slug := range []string{"one", "two"} {
		testutil.CreatePortfolioItem(t, db, &models.PortfolioItem{
			Title:       slug,
			Slug:        slug,
			Type:        models.PortfolioTypeLogo,
			Category:    models.PortfolioCategoryCorporate,
			CompanyID:   &acme.ID,
			PublishDate: time.Now().Add(time.Duration(i) * time.Hour),
		})
	}

	list, err := repo.ListWithCounts(db)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Новые компании первыми
	assert.Equal(t, "Bolt", list[0].Name)
	assert.Equal(t, int64(0), list[0].PortfolioCount)
	assert.Equal(t, "Acme", list[1].Name)
	assert.Equal(t, int64(2), list[1].PortfolioCount)

	withItems, err := repo.FindByIDWithItems(db, acme.ID)
	require.NoError(t, err)
	require.Len(t, withItems.PortfolioItems, 2)
	assert.Equal(t, "two", withItems.PortfolioItems[0].Slug)
}

func TestPortfolioRepository_ListAndStats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPortfolioRepository()

	company := testutil.CreateCompany(t, db, "Acme", "acme")
	testutil.CreatePortfolioItem(t, db, &models.PortfolioItem{
		Title: "Logo", Slug: "logo", Type: models.PortfolioTypeLogo,
		Category: models.PortfolioCategoryCorporate, CompanyID: &company.ID,
	})
	testutil.CreatePortfolioItem(t, db, &models.PortfolioItem{
		Title: "Reel", Slug: "reel", Type: models.PortfolioTypeReel,
		Category: models.PortfolioCategoryIndividual,
	})

	items, err := repo.List(db, PortfolioFilter{Category: models.PortfolioCategoryCorporate})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Company)
	assert.Equal(t, "Acme", items[0].Company.Name)

	items, err = repo.List(db, PortfolioFilter{CompanyID: &company.ID})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	stats, err := repo.Stats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.ByType["LOGO"])
	assert.Equal(t, int64(1), stats.ByCategory["INDIVIDUAL"])

	_, err = repo.FindBySlug(db, "nope")
	assert.ErrorIs(t, err, ErrPortfolioItemNotFound)
}

func TestSiteRepository_GetOrCreate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSiteRepository()

	cfg, err := repo.GetSiteConfig(db)
	require.NoError(t, err)
	assert.Equal(t, "Rastaka", cfg.SiteName)

	cfg.Phone = "+7 700 000 00 00"
	require.NoError(t, repo.SaveSiteConfig(db, cfg))

	again, err := repo.GetSiteConfig(db)
	require.NoError(t, err)
	assert.Equal(t, cfg.ID, again.ID)
	assert.Equal(t, "+7 700 000 00 00", again.Phone)

	seo, err := repo.GetSeoConfig(db)
	require.NoError(t, err)
	assert.Equal(t, "Rastaka Portfolio", seo.SiteTitle)
}

func TestContactRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewContactRepository()

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Create(db, &models.ContactSubmission{Name: name, Email: "x@y.z", Message: "hi"}))
	}

	list, total, err := repo.List(db, ContactFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, list, 2)

	require.NoError(t, repo.UpdateStatus(db, list[0].ID, models.ContactStatusRead))
	assert.ErrorIs(t, repo.UpdateStatus(db, 999, models.ContactStatusRead), ErrContactNotFound)

	stats, err := repo.Stats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Unread)
	assert.Equal(t, int64(1), stats.Read)

	unread, total, err := repo.List(db, ContactFilter{Status: models.ContactStatusUnread})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, unread, 2)
}

func TestUploadRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewUploadRepository()

	up := &models.Upload{Path: "a-1.png", PublicPath: "/uploads/a-1.png", FileType: models.MediaImage, Size: 10}
	require.NoError(t, repo.Create(db, up))

	found, err := repo.FindByPublicPath(db, "/uploads/a-1.png")
	require.NoError(t, err)
	assert.Equal(t, up.ID, found.ID)

	require.NoError(t, repo.Delete(db, up.ID))
	_, err = repo.FindByID(db, up.ID)
	assert.ErrorIs(t, err, ErrUploadNotFound)
}

func TestPagination_Normalize(t *testing.T) {
	p := Pagination{}.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = Pagination{Page: 3, PageSize: 1000}.Normalize()
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, 200, p.Offset())
}
