package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
)

// overfetchFactor — запас кандидатов из индекса: часть точек может
// принадлежать отключённым позициям и отфильтруется при гидрации.
const overfetchFactor = 2

// SearchUseCase реализует поиск позиций каталога по визуальному сходству.
// Вектор запроса и векторы индекса обязаны происходить от одной версии модели,
// иначе косинусные расстояния не имеют смысла.
type SearchUseCase struct {
	itemRepo    ItemRepository
	vectorIndex VectorIndexRepository
	embedder    EmbedderInfra
	cacheRepo   CacheRepository
	searchCfg   *cfg.SearchCfg
	embedderCfg *cfg.EmbedderCfg
	logger      logger.Logger
}

func NewSearchUC(
	itemRepo ItemRepository,
	vectorIndex VectorIndexRepository,
	embedder EmbedderInfra,
	cacheRepo CacheRepository,
	searchCfg *cfg.SearchCfg,
	embedderCfg *cfg.EmbedderCfg,
	logger logger.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		itemRepo:    itemRepo,
		vectorIndex: vectorIndex,
		embedder:    embedder,
		cacheRepo:   cacheRepo,
		searchCfg:   searchCfg,
		embedderCfg: embedderCfg,
		logger:      logger,
	}
}

// SearchByImage ищет позиции, чьё главное фото похоже на изображение запроса.
// Ошибка векторизации запроса фатальна: без вектора выдать нечего.
// Пустая выдача ошибкой не является.
func (s *SearchUseCase) SearchByImage(ctx context.Context, req *SearchReq) (*SearchRes, error) {
	const op = "SearchUseCase.SearchByImage"

	limit, minSimilarity, err := s.validate(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	embedded, err := s.embedder.EmbedImage(ctx, &EmbedImageReq{Data: req.ImageData, URL: req.ImageURL})
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("%w: %v", e.ErrEmbeddingFailed, err))
	}
	if len(embedded.Vector) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyVector)
	}

	hits, err := s.vectorIndex.Search(ctx, &VectorSearchReq{
		TenantID:       req.TenantID,
		ModelVersion:   s.embedderCfg.ModelVersion,
		Vector:         embedded.Vector,
		Limit:          uint64(limit * overfetchFactor),
		ScoreThreshold: minSimilarity,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(hits) == 0 {
		return NewSearchRes([]SearchResult{}), nil
	}

	infoMap, err := s.hydrateItems(ctx, req.TenantID, hits)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	results := make([]SearchResult, 0, len(hits))
	for _, hit := range hits {
		info, ok := infoMap[hit.ItemID]
		if !ok {
			// Позиция отключена или исчезла: вектор остаётся в индексе,
			// но в выдачу не попадает.
			continue
		}
		if minSimilarity != nil && hit.Score < *minSimilarity {
			continue
		}
		results = append(results, SearchResult{
			ItemID:     hit.ItemID,
			Title:      info.Title,
			Price:      info.Price,
			Similarity: hit.Score,
		})
	}

	// Детерминированный порядок: по убыванию сходства,
	// при равных оценках — по возрастанию id.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].ItemID < results[j].ItemID
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return NewSearchRes(results), nil
}

func (s *SearchUseCase) validate(req *SearchReq) (int, *float32, error) {
	if len(req.ImageData) == 0 && req.ImageURL == "" {
		return 0, nil, e.ErrQueryImageRequired
	}

	limit := req.Limit
	switch {
	case limit < 0:
		return 0, nil, e.ErrInvalidLimit
	case limit == 0:
		limit = s.searchCfg.DefaultLimit
	case limit > s.searchCfg.MaxLimit:
		limit = s.searchCfg.MaxLimit
	}

	// Отсутствующий порог — отсутствие фильтрации: косинусное сходство
	// лежит в [-1, 1], и нулевой порог отрезал бы отрицательную половину.
	if req.MinSimilarity != nil && (*req.MinSimilarity < -1 || *req.MinSimilarity > 1) {
		return 0, nil, e.ErrInvalidThreshold
	}

	return limit, req.MinSimilarity, nil
}

// hydrateItems возвращает данные включённых позиций: сперва из кэша,
// промахи добираются из БД и фоном дописываются в кэш.
func (s *SearchUseCase) hydrateItems(ctx context.Context, tenantID int64, hits []VectorHit) (map[int64]ItemInfo, error) {
	const op = "SearchUseCase.hydrateItems"

	ids := make([]int64, 0, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.ItemID)
	}

	cached, err := s.cacheRepo.GetItems(ctx, tenantID, ids)
	if err != nil {
		s.logger.Warnf("item cache read failed, falling back to db: %v", e.Wrap(op, err))
		cached = nil
	}

	missed := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := cached[id]; !ok {
			missed = append(missed, id)
		}
	}

	result := make(map[int64]ItemInfo, len(ids))
	for id, info := range cached {
		result[id] = info
	}

	if len(missed) > 0 {
		fromDB, err := s.itemRepo.GetItemsInfo(ctx, tenantID, missed)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		for _, info := range fromDB {
			result[info.ID] = info
		}

		// Фоновое добавление позиций в кэш
		go func(items []ItemInfo) {
			bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			if err := s.cacheRepo.SetItems(bgCtx, tenantID, items); err != nil {
				s.logger.Warnf("failed to cache items in background: %v", e.Wrap(op, err))
			}
		}(fromDB)
	}

	return result, nil
}
