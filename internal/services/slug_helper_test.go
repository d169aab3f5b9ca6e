package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSlugWriter_RetriesOnUniqueViolation(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewClientRepository()
	testutil.CreateClient(t, db, "Acme", "acme", models.ClientTypeCompany)

	// Первая проверка "не видит" существующую запись, как при гонке двух запросов
	calls := 0
	exists := func(db *gorm.DB, slug string, excludeID int64) (bool, error) {
		calls++
		if calls == 1 {
			return false, nil
		}
		return repo.SlugExists(db, slug, excludeID)
	}

	client := &models.Client{Name: "Acme", Type: models.ClientTypeCompany}
	tx := db.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()

	err := NewSlugWriter(10).write(context.Background(), tx, "client", client.Name, 0, exists,
		func(s string) { client.Slug = s },
		func(tx *gorm.DB) error { return repo.Create(tx, client) },
	)
	require.NoError(t, err)
	require.NoError(t, tx.Commit().Error)

	assert.Equal(t, "acme-2", client.Slug)
	found, err := repo.FindBySlug(db, "acme-2")
	require.NoError(t, err)
	assert.Equal(t, client.ID, found.ID)
}

func TestSlugWriter_GivesUpAfterSecondCollision(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewClientRepository()
	testutil.CreateClient(t, db, "Acme", "acme", models.ClientTypeCompany)

	never := func(*gorm.DB, string, int64) (bool, error) { return false, nil }

	client := &models.Client{Name: "Acme", Type: models.ClientTypeCompany}
	tx := db.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()

	err := NewSlugWriter(10).write(context.Background(), tx, "client", client.Name, 0, never,
		func(s string) { client.Slug = s },
		func(tx *gorm.DB) error { return repo.Create(tx, client) },
	)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSlugWriter_Exhausted(t *testing.T) {
	db := testutil.NewTestDB(t)
	always := func(*gorm.DB, string, int64) (bool, error) { return true, nil }

	_, err := NewSlugWriter(3).generate(context.Background(), db, "client", "Acme", 0, always)
	requireAppError(t, err, http.StatusConflict)
}

func TestSlugWriter_SuffixedSlugFitsColumn(t *testing.T) {
	db := testutil.NewTestDB(t)
	w := NewSlugWriter(1000)
	taken := func(_ *gorm.DB, slug string, _ int64) (bool, error) {
		return !strings.Contains(slug, "-"), nil
	}

	title := strings.Repeat("a", models.SlugMaxLength)
	got, err := w.generate(context.Background(), db, "work", title, 0, taken)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", models.SlugMaxLength-2)+"-2", got)

	got, err = w.generate(context.Background(), db, "tag", title, 0, taken)
	require.NoError(t, err)
	assert.LessOrEqual(t, utf8.RuneCountInString(got), models.TagSlugMaxLength)
	assert.True(t, strings.HasSuffix(got, "-2"), got)
}
