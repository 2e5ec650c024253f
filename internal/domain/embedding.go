package domain

import "time"

// EmbeddingRecord — вектор главного фото позиции для поиска по визуальному сходству.
// Запись уникальна по паре (ItemID, ModelVersion): при смене модели старые записи
// сохраняются и просто не участвуют в поиске.
type EmbeddingRecord struct {
	ID           int64
	ItemID       int64
	Vector       []float32
	ModelVersion string
	CreatedAt    time.Time
}

func NewEmbeddingRecord(itemID int64, vector []float32, modelVersion string) *EmbeddingRecord {
	return &EmbeddingRecord{
		ItemID:       itemID,
		Vector:       vector,
		ModelVersion: modelVersion,
	}
}
