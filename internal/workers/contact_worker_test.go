package workers

import (
	"context"
	"testing"
	"time"

	"rastaka_backend/internal/models"
	"rastaka_backend/internal/repositories"
	"rastaka_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactWorker_RunOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewContactRepository()

	create := func(name string, status models.ContactStatus) *models.ContactSubmission {
		s := &models.ContactSubmission{Name: name, Email: name + "@example.com", Message: "hi", Status: status}
		require.NoError(t, repo.Create(db, s))
		return s
	}
	oldRead := create("old", models.ContactStatusRead)
	unread := create("unread", models.ContactStatusUnread)
	freshRead := create("fresh", models.ContactStatusRead)

	// Сдвигаем updated_at в прошлое в обход autoUpdateTime
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Exec("UPDATE contact_submissions SET updated_at = ? WHERE id IN (?, ?)", past, oldRead.ID, unread.ID).Error)

	worker := NewContactWorker(db, repo, 24*time.Hour, time.Minute)
	archived, err := worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, archived)

	for id, want := range map[int64]models.ContactStatus{
		oldRead.ID:   models.ContactStatusArchived,
		unread.ID:    models.ContactStatusUnread,
		freshRead.ID: models.ContactStatusRead,
	} {
		got, err := repo.FindByID(db, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status, "submission %d", id)
	}

	archived, err = worker.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, archived)
}

func TestContactWorker_DisabledDoesNotStart(t *testing.T) {
	worker := NewContactWorker(nil, nil, 0, 0)
	assert.Equal(t, time.Hour, worker.interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// archiveAfter == 0: цикл не запускается, nil db не трогается
	worker.Start(ctx)
}
