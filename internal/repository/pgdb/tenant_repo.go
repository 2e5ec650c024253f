package pgdb

import (
	"context"
	"errors"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/internal/repository/pgdb/converter"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// TenantRepo реализует реестр магазинов поверх PostgreSQL.
type TenantRepo struct {
	pool *pgxpool.Pool
	conv converter.TenantConverter
}

func NewTenantRepo(pool *pgxpool.Pool, conv converter.TenantConverter) *TenantRepo {
	return &TenantRepo{
		pool: pool,
		conv: conv,
	}
}

func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	query := `
		SELECT id, name, webhook_secret, is_active, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`

	var model converter.TenantModel
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&model.ID, &model.Name, &model.WebhookSecret, &model.IsActive,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrTenantNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return r.conv.ToEntity(&model), nil
}
