//go:generate goverter gen github.com/floralab/catalog-backend/internal/repository/redis/converter

package converter

import (
	"github.com/floralab/catalog-backend/internal/usecase"
)

// goverter:converter
type ItemInfoConverter interface {
	ToRedisModel(entity *usecase.ItemInfo) *ItemInfoRedisModel
	ToUseCase(model *ItemInfoRedisModel) *usecase.ItemInfo
	ToArrRedisModel(entities []usecase.ItemInfo) []ItemInfoRedisModel
	ToArrUseCase(models []ItemInfoRedisModel) []usecase.ItemInfo
}
