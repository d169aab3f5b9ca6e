//go:build integration

package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"rastaka_backend/internal/config"
	"rastaka_backend/internal/database"
	"rastaka_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// setupPostgres поднимает PostgreSQL в контейнере. Без Docker тест пропускается.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if os.Getenv("SKIP_INTEGRATION") == "true" {
		t.Skip("SKIP_INTEGRATION=true, skipping PostgreSQL integration tests")
	}

	ctx := context.Background()
	container, err := pgmodule.Run(ctx,
		"postgres:16-alpine",
		pgmodule.WithDatabase("rastaka_test"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("skipping: could not start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, config.DatabaseConfig{Driver: "postgres", DSN: dsn}, false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

func TestPostgres_WorkLifecycle(t *testing.T) {
	db := setupPostgres(t)
	clients := NewClientRepository()
	works := NewWorkRepository()

	client := &models.Client{Name: "Acme", Slug: "acme", Type: models.ClientTypeCompany}
	require.NoError(t, clients.Create(db, client))

	work := &models.Work{
		ClientID:    client.ID,
		Type:        models.WorkTypeLogo,
		Status:      models.WorkStatusPublished,
		Title:       "Logo",
		Slug:        "logo",
		PublishDate: time.Now().UTC(),
	}
	require.NoError(t, works.Create(db, work))

	dup := *work
	dup.ID = 0
	err := works.Create(db, &dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	tag := &models.Tag{Name: "Identity", Slug: "identity"}
	require.NoError(t, works.CreateTag(db, tag))
	require.NoError(t, works.ReplaceTags(db, work, []models.Tag{*tag}))

	list, total, err := works.List(db, WorkFilter{ClientType: models.ClientTypeCompany})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Tags, 1)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return works.Delete(tx, work.ID)
	}))
	count, err := clients.CountWorks(db, client.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestPostgres_PortfolioStats(t *testing.T) {
	db := setupPostgres(t)
	repo := NewPortfolioRepository()

	for _, slug := range []string{"a", "b"} {
		require.NoError(t, repo.Create(db, &models.PortfolioItem{
			Title:       slug,
			Slug:        slug,
			Type:        models.PortfolioTypeWebsite,
			Category:    models.PortfolioCategoryCorporate,
			PublishDate: time.Now().UTC(),
		}))
	}

	stats, err := repo.Stats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.ByType["WEBSITE"])
}
