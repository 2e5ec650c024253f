package domain

import "time"

// CatalogItem описывает позицию каталога, зеркалируемую из внешней CRM.
// Идентичность задаётся парой (TenantID, UpstreamID); ID — локальный суррогатный ключ.
type CatalogItem struct {
	ID          int64
	TenantID    int64
	UpstreamID  int64
	Title       string
	Description string
	// Цена хранится в минорных единицах валюты (тиын).
	// nil — исходное значение не удалось разобрать.
	Price    *int64
	HeightCm *int32
	WidthCm  *int32
	Enabled  bool
	// UpstreamUpdatedAt — время последнего изменения по данным CRM,
	// используется для last-write-wins при неупорядоченной доставке.
	UpstreamUpdatedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

func NewCatalogItem(tenantID, upstreamID int64, title string) *CatalogItem {
	return &CatalogItem{
		TenantID:   tenantID,
		UpstreamID: upstreamID,
		Title:      title,
		Enabled:    true,
	}
}
