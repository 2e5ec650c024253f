package converter

import (
	"time"

	"github.com/floralab/catalog-backend/internal/usecase"
)

// TenantModel представляет запись таблицы tenants в PostgreSQL.
type TenantModel struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	WebhookSecret string     `db:"webhook_secret"`
	IsActive      bool       `db:"is_active"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     *time.Time `db:"updated_at"`
}

// CatalogItemModel представляет запись таблицы catalog_items в PostgreSQL.
type CatalogItemModel struct {
	ID                int64      `db:"id"`
	TenantID          int64      `db:"tenant_id"`
	UpstreamID        int64      `db:"upstream_id"`
	Title             string     `db:"title"`
	Description       string     `db:"description"`
	Price             *int64     `db:"price"`
	HeightCm          *int32     `db:"height_cm"`
	WidthCm           *int32     `db:"width_cm"`
	Enabled           bool       `db:"enabled"`
	UpstreamUpdatedAt *time.Time `db:"upstream_updated_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at"`
}

// CatalogImageModel представляет запись таблицы catalog_images в PostgreSQL.
type CatalogImageModel struct {
	ID        int64  `db:"id"`
	ItemID    int64  `db:"item_id"`
	SourceURL string `db:"source_url"`
	Position  int32  `db:"position"`
	IsPrimary bool   `db:"is_primary"`
}

// EmbeddingRecordModel представляет запись таблицы embedding_records в PostgreSQL.
type EmbeddingRecordModel struct {
	ID           int64     `db:"id"`
	ItemID       int64     `db:"item_id"`
	Vector       []float32 `db:"vector"`
	ModelVersion string    `db:"model_version"`
	CreatedAt    time.Time `db:"created_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64                   `db:"id"`
	EventID     string                  `db:"event_id"`
	EventType   usecase.OutboxEventType `db:"event_type"`
	TenantID    int64                   `db:"tenant_id"`
	ItemID      int64                   `db:"item_id"`
	Payload     []byte                  `db:"payload"`
	Status      usecase.OutboxStatus    `db:"status"`
	CreatedAt   time.Time               `db:"created_at"`
	ProcessedAt *time.Time              `db:"processed_at"`
}
