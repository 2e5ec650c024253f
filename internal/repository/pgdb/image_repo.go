package pgdb

import (
	"context"
	"errors"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/internal/repository/pgdb/converter"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ImageRepo реализует репозиторий изображений каталога поверх PostgreSQL.
type ImageRepo struct {
	pool *pgxpool.Pool
	conv converter.CatalogImageConverter
}

func NewImageRepo(pool *pgxpool.Pool, conv converter.CatalogImageConverter) *ImageRepo {
	return &ImageRepo{
		pool: pool,
		conv: conv,
	}
}

// ReplaceForItem заменяет набор изображений позиции целиком.
// CRM не присылает стабильных идентификаторов фото, поэтому
// частичное обновление набора невозможно в принципе.
func (r *ImageRepo) ReplaceForItem(ctx context.Context, itemID int64, images []domain.CatalogImage) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM catalog_images WHERE item_id = $1`, itemID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if len(images) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO catalog_images (item_id, source_url, position, is_primary)
		VALUES ($1, $2, $3, $4)
	`
	for i := range images {
		model := r.conv.ToModel(&images[i])
		batch.Queue(query, itemID, model.SourceURL, model.Position, model.IsPrimary)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range images {
		if _, err := results.Exec(); err != nil {
			return e.Wrap(whereami.WhereAmI(), err)
		}
	}

	return nil
}

// GetPrimary возвращает главное изображение позиции.
func (r *ImageRepo) GetPrimary(ctx context.Context, itemID int64) (*domain.CatalogImage, error) {
	query := `
		SELECT id, item_id, source_url, position, is_primary
		FROM catalog_images
		WHERE item_id = $1 AND is_primary = true
		ORDER BY position
		LIMIT 1
	`

	var model converter.CatalogImageModel
	err := r.pool.QueryRow(ctx, query, itemID).Scan(
		&model.ID, &model.ItemID, &model.SourceURL, &model.Position, &model.IsPrimary,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNoPrimaryImage)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}
