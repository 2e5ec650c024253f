package domain

// Payload описывает дополнительную информацию вектора в поисковом индексе
type Payload map[string]any

// IndexPoint представляет запись поискового индекса (Qdrant)
type IndexPoint struct {
	ID      string
	Vector  []float32
	Payload Payload
}

func NewIndexPoint(id string, vector []float32, payload Payload) *IndexPoint {
	return &IndexPoint{
		ID:      id,
		Vector:  vector,
		Payload: payload,
	}
}

// NewIndexPayload собирает payload точки индекса: по нему фильтруется
// tenant и версия модели при поиске.
func NewIndexPayload(tenantID, itemID int64, modelVersion string) Payload {
	return Payload{
		"tenant_id":     tenantID,
		"item_id":       itemID,
		"model_version": modelVersion,
	}
}
