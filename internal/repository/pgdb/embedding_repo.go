package pgdb

import (
	"context"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/internal/repository/pgdb/converter"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// EmbeddingRepo хранит эталонные векторы позиций в PostgreSQL.
// Поисковый индекс (Qdrant) — производная от этих записей и
// может быть перестроен из них заново.
type EmbeddingRepo struct {
	pool *pgxpool.Pool
	conv converter.EmbeddingRecordConverter
}

func NewEmbeddingRepo(pool *pgxpool.Pool, conv converter.EmbeddingRecordConverter) *EmbeddingRepo {
	return &EmbeddingRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert записывает вектор позиции для конкретной версии модели.
// Повторная индексация той же пары (item_id, model_version) перезаписывает вектор.
func (r *EmbeddingRepo) Upsert(ctx context.Context, record *domain.EmbeddingRecord) (*domain.EmbeddingRecord, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(record)
	query := `
		INSERT INTO embedding_records (item_id, vector, model_version)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id, model_version)
		DO UPDATE SET
			vector = EXCLUDED.vector,
			created_at = NOW()
		RETURNING id, item_id, vector, model_version, created_at;
	`

	var stored converter.EmbeddingRecordModel
	err = tx.QueryRow(ctx, query, model.ItemID, model.Vector, model.ModelVersion).Scan(
		&stored.ID, &stored.ItemID, &stored.Vector, &stored.ModelVersion, &stored.CreatedAt,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&stored), nil
}
