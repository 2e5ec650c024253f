package usecase

import (
	"context"

	"github.com/floralab/catalog-backend/internal/domain"
)

type TenantRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}

// UpsertItemRes — результат идемпотентного upsert'а позиции.
// Stale=true — запись не менялась, потому что пришло более старое уведомление.
type UpsertItemRes struct {
	Item     *domain.CatalogItem
	Inserted bool
	Stale    bool
}

func NewUpsertItemRes(item *domain.CatalogItem, inserted, stale bool) *UpsertItemRes {
	return &UpsertItemRes{
		Item:     item,
		Inserted: inserted,
		Stale:    stale,
	}
}

type ItemRepository interface {
	Upsert(ctx context.Context, item *domain.CatalogItem) (*UpsertItemRes, error)
	Disable(ctx context.Context, tenantID, upstreamID int64) (*domain.CatalogItem, error)
	GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error)
	GetItemsInfo(ctx context.Context, tenantID int64, ids []int64) ([]ItemInfo, error)
}

type ImageRepository interface {
	ReplaceForItem(ctx context.Context, itemID int64, images []domain.CatalogImage) error
	GetPrimary(ctx context.Context, itemID int64) (*domain.CatalogImage, error)
}

type EmbeddingRepository interface {
	Upsert(ctx context.Context, record *domain.EmbeddingRecord) (*domain.EmbeddingRecord, error)
}

type VectorIndexRepository interface {
	Upsert(ctx context.Context, points []domain.IndexPoint) error
	Search(ctx context.Context, req *VectorSearchReq) ([]VectorHit, error)
}

type CacheRepository interface {
	GetItems(ctx context.Context, tenantID int64, ids []int64) (map[int64]ItemInfo, error)
	SetItems(ctx context.Context, tenantID int64, items []ItemInfo) error
	DeleteItems(ctx context.Context, tenantID int64, ids []int64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}
