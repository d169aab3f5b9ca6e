package services

import (
	"context"
	"errors"

	"rastaka_backend/internal/logger"
	"rastaka_backend/internal/metrics"
	"rastaka_backend/internal/models"
	"rastaka_backend/internal/slug"

	"gorm.io/gorm"
)

const slugSavepoint = "slug_write"

// slugExistsFunc - проверка занятости slug в коллекции (repo.SlugExists)
type slugExistsFunc func(db *gorm.DB, slug string, excludeID int64) (bool, error)

// SlugWriter подбирает slug и записывает сущность
type SlugWriter struct {
	gen *slug.Generator
	// Генераторы для сущностей с более короткой slug-колонкой
	byEntity map[string]*slug.Generator
}

func NewSlugWriter(maxAttempts int) *SlugWriter {
	gen := slug.NewGenerator(maxAttempts).WithMaxLength(models.SlugMaxLength)
	return &SlugWriter{
		gen: gen,
		byEntity: map[string]*slug.Generator{
			"tag": gen.WithMaxLength(models.TagSlugMaxLength),
		},
	}
}

func (w *SlugWriter) generatorFor(entity string) *slug.Generator {
	if g, ok := w.byEntity[entity]; ok {
		return g
	}
	return w.gen
}

func (w *SlugWriter) generate(ctx context.Context, db *gorm.DB, entity, text string, excludeID int64, exists slugExistsFunc) (string, error) {
	return w.generatorFor(entity).Generate(ctx, text, slug.CheckerFunc(func(ctx context.Context, candidate string) (bool, error) {
		return exists(db, candidate, excludeID)
	}))
}

// write генерирует slug и выполняет запись. Проверка и вставка не атомарны:
// если уникальный индекс все же отклонил запись (параллельный запрос с тем же
// заголовком), slug подбирается заново и запись повторяется один раз.
// tx должен быть транзакцией: повтор идет после отката к savepoint.
func (w *SlugWriter) write(
	ctx context.Context,
	tx *gorm.DB,
	entity, text string,
	excludeID int64,
	exists slugExistsFunc,
	setSlug func(string),
	persist func(tx *gorm.DB) error,
) error {
	for attempt := 0; ; attempt++ {
		s, err := w.generate(ctx, tx, entity, text, excludeID, exists)
		if err != nil {
			return err
		}
		setSlug(s)

		if err := tx.SavePoint(slugSavepoint).Error; err != nil {
			return err
		}
		err = persist(tx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) || attempt > 0 {
			return err
		}

		metrics.SlugCollisionsTotal.WithLabelValues(entity).Inc()
		logger.CtxWarn(ctx, "Slug collision on write, regenerating", "entity", entity, "slug", s)

		if err := tx.RollbackTo(slugSavepoint).Error; err != nil {
			return err
		}
	}
}
