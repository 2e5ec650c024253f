package usecase

import "time"

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	EventItemCreated OutboxEventType = "item_created"
	EventItemUpdated OutboxEventType = "item_updated"
	EventItemDeleted OutboxEventType = "item_deleted"
)

// OutboxEvent — событие синхронизации, записываемое в той же транзакции,
// что и изменение каталога, и публикуемое в Kafka фоновым worker'ом.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	TenantID    int64
	ItemID      int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// ChangeEventPayload — JSON-тело события для внешних подписчиков.
type ChangeEventPayload struct {
	EventType  OutboxEventType `json:"event_type"`
	TenantID   int64           `json:"tenant_id"`
	ItemID     int64           `json:"item_id"`
	UpstreamID int64           `json:"upstream_id"`
	OccurredAt int64           `json:"occurred_at"`
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, tenantID, itemID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		TenantID:  tenantID,
		ItemID:    itemID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}
