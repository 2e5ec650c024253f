package domain

// CatalogImage описывает изображение позиции каталога.
// Набор изображений заменяется целиком при каждом обновлении:
// CRM не даёт стабильных идентификаторов отдельных фото.
type CatalogImage struct {
	ID        int64
	ItemID    int64
	SourceURL string
	Position  int32
	IsPrimary bool
}

func NewCatalogImage(itemID int64, sourceURL string, position int32, isPrimary bool) *CatalogImage {
	return &CatalogImage{
		ItemID:    itemID,
		SourceURL: sourceURL,
		Position:  position,
		IsPrimary: isPrimary,
	}
}
