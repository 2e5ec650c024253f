package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/repository/redis/converter"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/clients"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

// CacheRepo кэширует карточки позиций для выдачи поиска.
// Ключи включают идентификатор магазина: каталоги изолированы и в кэше.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ItemInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ItemInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetItems возвращает закэшированные позиции по ID, игнорируя промахи и логируя их
func (r *CacheRepo) GetItems(ctx context.Context, tenantID int64, ids []int64) (map[int64]usecase.ItemInfo, error) {
	keys := r.buildItemCacheKeys(tenantID, ids)

	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Warnf("Redis MGET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[int64]usecase.ItemInfo, len(values))
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			r.logger.Warnf("%v", e.Wrap(whereami.WhereAmI(), err))
		}

		if data == nil {
			continue // cache miss
		}

		model, err := r.unmarshalItemFromCache(data)
		if err != nil {
			r.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		if model.ID != ids[i] {
			r.logger.Warnf("Cache ID mismatch: key_id: %d, model_id: %d", ids[i], model.ID)
			if err := r.client.Client.Del(context.Background(), keys[i]).Err(); err != nil {
				r.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
			}
			continue // cache miss
		}
		result[ids[i]] = *r.conv.ToUseCase(model)
	}

	return result, nil
}

// SetItems атомарно кэширует несколько позиций с заданным TTL.
// Игнорирует ошибки сериализации/записи, логируя их.
func (r *CacheRepo) SetItems(ctx context.Context, tenantID int64, items []usecase.ItemInfo) error {
	models := r.conv.ToArrRedisModel(items)

	pipeline := r.client.Client.Pipeline()
	for _, model := range models {
		data, err := r.marshalItemForCache(model)
		if err != nil {
			r.logger.Warnf("Failed to marshal item for caching (Item ID: %d): %v", model.ID, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		key := r.itemKey(tenantID, model.ID)
		pipeline.Set(ctx, key, data, r.cfg.ItemTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		r.logger.Warnf("Cache pipeline failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteItems удаляет позиции из кэша по ID
func (r *CacheRepo) DeleteItems(ctx context.Context, tenantID int64, ids []int64) error {
	keys := r.buildItemCacheKeys(tenantID, ids)

	if err := r.client.Client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// marshalItemForCache сериализует позицию в JSON для кэша
func (r *CacheRepo) marshalItemForCache(model converter.ItemInfoRedisModel) ([]byte, error) {
	data, err := json.Marshal(model)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// unmarshalItemFromCache десериализует JSON из кэша в модель позиции
func (r *CacheRepo) unmarshalItemFromCache(data []byte) (*converter.ItemInfoRedisModel, error) {
	var model converter.ItemInfoRedisModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, err
	}

	return &model, nil
}

// buildItemCacheKeys формирует Redis-ключи из ID позиций
func (r *CacheRepo) buildItemCacheKeys(tenantID int64, ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.itemKey(tenantID, id)
	}

	return keys
}

// itemKey возвращает Redis-ключ для одной позиции магазина
func (r *CacheRepo) itemKey(tenantID, id int64) string {
	return fmt.Sprintf("tenant:%d:item:%d", tenantID, id)
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val interface{}, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("unexpected Redis value type for key %s: %T", key, val)
	}
}
