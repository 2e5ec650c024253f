package usecase

import (
	"bytes"
	"encoding/json"
)

// SYNC USECASE

// Action — результат применения уведомления об изменении.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionSkipped Action = "skipped"
)

// ChangeNotification — уведомление об изменении позиции каталога из CRM.
// Доставка at-least-once: дубликаты и нарушение порядка — штатный вход.
type ChangeNotification struct {
	EventType string    `json:"event_type"`
	ItemData  *ItemData `json:"item_data"`
}

// ItemData — сырые данные позиции в том виде, в котором их шлёт CRM.
// Цена и габариты приходят то числом, то декорированной строкой ("5 000 ₸", "70 см"),
// поэтому разбираются в UpstreamScalar.
type ItemData struct {
	UpstreamID  int64          `json:"upstream_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       UpstreamScalar `json:"price"`
	Image       string         `json:"image"`
	Images      []string       `json:"images"`
	Height      UpstreamScalar `json:"height"`
	Width       UpstreamScalar `json:"width"`
	Available   *bool          `json:"available"`
	UpdatedAt   string         `json:"updated_at"`
}

// ScalarKind — вид значения, присланного CRM.
type ScalarKind int

const (
	ScalarAbsent ScalarKind = iota
	ScalarInt
	ScalarString
)

// UpstreamScalar — явный tagged-вариант для полей двойного формата.
// CRM непоследовательно присылает одно и то же поле числом или строкой.
type UpstreamScalar struct {
	Kind ScalarKind
	Int  int64
	Str  string
}

func (s *UpstreamScalar) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		s.Kind = ScalarAbsent
		return nil
	}

	if trimmed[0] == '"' {
		var str string
		if err := json.Unmarshal(trimmed, &str); err != nil {
			return err
		}
		s.Kind = ScalarString
		s.Str = str
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return err
	}

	if i, err := num.Int64(); err == nil {
		s.Kind = ScalarInt
		s.Int = i
		return nil
	}

	// Дробное число: сохраняем текстом, разбор делает parsePriceMinor.
	s.Kind = ScalarString
	s.Str = num.String()
	return nil
}

// ApplyChangeReq — запрос на применение уведомления к локальному каталогу.
type ApplyChangeReq struct {
	TenantID     int64
	Notification *ChangeNotification
}

// ApplyChangeRes — подтверждение применённого действия.
// ReindexTriggered=true означает лишь постановку задачи в очередь,
// не факт записи вектора.
type ApplyChangeRes struct {
	Action           Action
	ItemID           int64
	ReindexTriggered bool
}

// SEARCH USECASE

// SearchReq — запрос поиска по визуальному сходству.
// Изображение задаётся либо байтами, либо URL.
// Nil-порог означает выдачу без фильтрации по сходству.
type SearchReq struct {
	TenantID      int64
	ImageData     []byte
	ImageURL      string
	Limit         int
	MinSimilarity *float32
}

// SearchResult — одна позиция выдачи с косинусным сходством в [-1, 1].
type SearchResult struct {
	ItemID     int64
	Title      string
	Price      *int64
	Similarity float32
}

type SearchRes struct {
	Results []SearchResult
	Count   int
}

// ItemInfo — DTO с информацией о позиции для выдачи поиска и кэша.
type ItemInfo struct {
	ID    int64
	Title string
	Price *int64
}

// INDEX USECASE

// IndexOutcome — результат выполнения задачи индексации.
type IndexOutcome string

const (
	IndexOutcomeIndexed IndexOutcome = "indexed"
	IndexOutcomeSkipped IndexOutcome = "skipped"
)

// REPOSITORIES

// VectorSearchReq — запрос ближайших соседей к поисковому индексу.
// Nil-порог отключает отсечение по score на стороне индекса.
type VectorSearchReq struct {
	TenantID       int64
	ModelVersion   string
	Vector         []float32
	Limit          uint64
	ScoreThreshold *float32
}

// VectorHit — совпадение из поискового индекса.
type VectorHit struct {
	ItemID int64
	Score  float32
}

// INFRASTRUCTURE

// EmbedImageReq — запрос векторизации: байты изображения или URL.
type EmbedImageReq struct {
	Data []byte
	URL  string
}

// EmbedImageRes — вектор и версия модели, которой он посчитан.
type EmbedImageRes struct {
	Vector       []float32
	ModelVersion string
}

// PhotoPayload — скачанное фото позиции.
type PhotoPayload struct {
	Data        []byte
	ContentType string
}

// MirrorPhotoReq — запрос на архивирование фото в зеркало.
type MirrorPhotoReq struct {
	TenantID    int64
	ItemID      int64
	Data        []byte
	ContentType string
}

type WriteRawMessageReq struct {
	ItemID  int64
	Payload []byte
}

// MAPPERS

func NewApplyChangeRes(action Action, itemID int64, reindex bool) *ApplyChangeRes {
	return &ApplyChangeRes{
		Action:           action,
		ItemID:           itemID,
		ReindexTriggered: reindex,
	}
}

func NewSearchRes(results []SearchResult) *SearchRes {
	return &SearchRes{
		Results: results,
		Count:   len(results),
	}
}

func NewItemInfo(id int64, title string, price *int64) ItemInfo {
	return ItemInfo{
		ID:    id,
		Title: title,
		Price: price,
	}
}

func NewEmbedImageRes(vector []float32, modelVersion string) *EmbedImageRes {
	return &EmbedImageRes{
		Vector:       vector,
		ModelVersion: modelVersion,
	}
}

func NewWriteRawMessageReq(itemID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ItemID:  itemID,
		Payload: payload,
	}
}
