package workers

import (
	"context"
	"time"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/repositories"

	"gorm.io/gorm"
)

// ContactWorker периодически архивирует прочитанные заявки
type ContactWorker struct {
	db           *gorm.DB
	repo         repositories.ContactRepository
	archiveAfter time.Duration
	interval     time.Duration
	now          func() time.Time
}

func NewContactWorker(db *gorm.DB, repo repositories.ContactRepository, archiveAfter, interval time.Duration) *ContactWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ContactWorker{
		db:           db,
		repo:         repo,
		archiveAfter: archiveAfter,
		interval:     interval,
		now:          time.Now,
	}
}

// Start запускает фоновый цикл до отмены ctx
func (w *ContactWorker) Start(ctx context.Context) {
	if w.archiveAfter <= 0 {
		return
	}
	go w.loop(ctx)
}

func (w *ContactWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Contact worker stopped")
			return
		case <-ticker.C:
			if _, err := w.RunOnce(ctx); err != nil {
				logger.Error("Failed to archive contact submissions", "error", err)
			}
		}
	}
}

// RunOnce архивирует READ-заявки старше archiveAfter, возвращает их число
func (w *ContactWorker) RunOnce(ctx context.Context) (int64, error) {
	before := w.now().Add(-w.archiveAfter)
	archived, err := w.repo.ArchiveReadBefore(w.db.WithContext(ctx), before)
	if err != nil {
		return 0, err
	}
	if archived > 0 {
		logger.Info("Archived contact submissions", "count", archived)
	}
	return archived, nil
}
