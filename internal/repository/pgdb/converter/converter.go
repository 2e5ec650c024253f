//go:generate goverter gen github.com/floralab/catalog-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/internal/usecase"
)

// TenantConverter преобразует сущности Tenant между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type TenantConverter interface {
	ToModel(entity *domain.Tenant) *TenantModel
	ToEntity(model *TenantModel) *domain.Tenant
}

// CatalogItemConverter преобразует сущности CatalogItem между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type CatalogItemConverter interface {
	ToModel(entity *domain.CatalogItem) *CatalogItemModel
	ToEntity(model *CatalogItemModel) *domain.CatalogItem
}

// CatalogImageConverter преобразует сущности CatalogImage между domain и моделью PostgreSQL.
// goverter:converter
type CatalogImageConverter interface {
	ToModel(entity *domain.CatalogImage) *CatalogImageModel
	ToEntity(model *CatalogImageModel) *domain.CatalogImage
}

// EmbeddingRecordConverter преобразует сущности EmbeddingRecord между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
type EmbeddingRecordConverter interface {
	ToModel(entity *domain.EmbeddingRecord) *EmbeddingRecordModel
	ToEntity(model *EmbeddingRecordModel) *domain.EmbeddingRecord
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}
