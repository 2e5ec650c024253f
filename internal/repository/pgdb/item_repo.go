package pgdb

import (
	"context"
	"errors"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/internal/repository/pgdb/converter"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ItemRepo реализует репозиторий позиций каталога поверх PostgreSQL.
type ItemRepo struct {
	pool *pgxpool.Pool
	conv converter.CatalogItemConverter
}

func NewItemRepo(pool *pgxpool.Pool, conv converter.CatalogItemConverter) *ItemRepo {
	return &ItemRepo{
		pool: pool,
		conv: conv,
	}
}

// Upsert идемпотентно создаёт или обновляет позицию по паре (tenant_id, upstream_id).
// Запись обновляется только если уведомление не старее уже применённого:
// при неупорядоченной доставке побеждает последнее изменение по часам CRM.
// Для устаревшего уведомления возвращается текущее состояние со stale=true.
func (r *ItemRepo) Upsert(ctx context.Context, item *domain.CatalogItem) (*usecase.UpsertItemRes, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := r.conv.ToModel(item)
	query := `
		WITH upsert AS (
		INSERT INTO catalog_items (
			tenant_id, upstream_id, title, description, price,
			height_cm, width_cm, enabled, upstream_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant_id, upstream_id)
		DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			height_cm = EXCLUDED.height_cm,
			width_cm = EXCLUDED.width_cm,
			enabled = EXCLUDED.enabled,
			upstream_updated_at = COALESCE(EXCLUDED.upstream_updated_at, catalog_items.upstream_updated_at),
			updated_at = NOW()
		WHERE
			catalog_items.upstream_updated_at IS NULL OR
			EXCLUDED.upstream_updated_at IS NULL OR
			catalog_items.upstream_updated_at <= EXCLUDED.upstream_updated_at
		RETURNING
			id, tenant_id, upstream_id, title, description, price,
			height_cm, width_cm, enabled, upstream_updated_at,
			created_at, updated_at,
			(xmax = 0) AS inserted
		)
		SELECT
			id, tenant_id, upstream_id, title, description, price,
			height_cm, width_cm, enabled, upstream_updated_at,
			created_at, updated_at, inserted,
			false AS stale
		FROM upsert

		UNION ALL

		SELECT
			id, tenant_id, upstream_id, title, description, price,
			height_cm, width_cm, enabled, upstream_updated_at,
			created_at, updated_at,
			false AS inserted,
			true AS stale
		FROM catalog_items
		WHERE tenant_id = $1 AND upstream_id = $2
		  AND NOT EXISTS (SELECT 1 FROM upsert);
	`

	var stored converter.CatalogItemModel
	var inserted, stale bool
	err = tx.QueryRow(ctx, query,
		model.TenantID, model.UpstreamID, model.Title, model.Description, model.Price,
		model.HeightCm, model.WidthCm, model.Enabled, model.UpstreamUpdatedAt,
	).Scan(
		&stored.ID, &stored.TenantID, &stored.UpstreamID, &stored.Title, &stored.Description, &stored.Price,
		&stored.HeightCm, &stored.WidthCm, &stored.Enabled, &stored.UpstreamUpdatedAt,
		&stored.CreatedAt, &stored.UpdatedAt, &inserted, &stale,
	)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return usecase.NewUpsertItemRes(r.conv.ToEntity(&stored), inserted, stale), nil
}

// Disable мягко удаляет позицию: помечает её выключенной, не трогая строку.
func (r *ItemRepo) Disable(ctx context.Context, tenantID, upstreamID int64) (*domain.CatalogItem, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE catalog_items
		SET enabled = false, updated_at = NOW()
		WHERE tenant_id = $1 AND upstream_id = $2
		RETURNING
			id, tenant_id, upstream_id, title, description, price,
			height_cm, width_cm, enabled, upstream_updated_at,
			created_at, updated_at;
	`

	var model converter.CatalogItemModel
	err = tx.QueryRow(ctx, query, tenantID, upstreamID).Scan(
		&model.ID, &model.TenantID, &model.UpstreamID, &model.Title, &model.Description, &model.Price,
		&model.HeightCm, &model.WidthCm, &model.Enabled, &model.UpstreamUpdatedAt,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrItemNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	query := `
		SELECT
			id, tenant_id, upstream_id, title, description, price,
			height_cm, width_cm, enabled, upstream_updated_at,
			created_at, updated_at
		FROM catalog_items
		WHERE id = $1
	`

	var model converter.CatalogItemModel
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.TenantID, &model.UpstreamID, &model.Title, &model.Description, &model.Price,
		&model.HeightCm, &model.WidthCm, &model.Enabled, &model.UpstreamUpdatedAt,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrItemNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}

// GetItemsInfo возвращает карточки активных позиций по идентификаторам.
// Выключенные позиции не отдаются: для выдачи поиска их не существует.
func (r *ItemRepo) GetItemsInfo(ctx context.Context, tenantID int64, ids []int64) ([]usecase.ItemInfo, error) {
	query := `
		SELECT id, title, price
		FROM catalog_items
		WHERE tenant_id = $1 AND id = ANY($2) AND enabled = true
	`

	rows, err := r.pool.Query(ctx, query, tenantID, ids)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ItemInfo, 0)
	for rows.Next() {
		var item usecase.ItemInfo
		if err := rows.Scan(&item.ID, &item.Title, &item.Price); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, item)
	}

	return result, nil
}
