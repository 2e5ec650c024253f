package qdrant

import (
	"context"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/qdrant/go-client/qdrant"
)

// VectorRepo репозиторий поискового индекса в Qdrant
type VectorRepo struct {
	client *qdrant.Client
	cfg    *cfg.QdrantCfg
}

func NewVectorRepo(client *qdrant.Client, cfg *cfg.QdrantCfg) *VectorRepo {
	return &VectorRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upsert сохраняет или обновляет точки индекса в коллекции Qdrant.
// Идентификатор точки детерминированный, повторная индексация перезаписывает её.
func (q *VectorRepo) Upsert(ctx context.Context, points []domain.IndexPoint) error {
	reqPoints := make([]*qdrant.PointStruct, 0, len(points))
	for _, point := range points {
		reqPoints = append(reqPoints, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(point.ID),
			Vectors: qdrant.NewVectors(point.Vector...),
			Payload: qdrant.NewValueMap(point.Payload),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.cfg.CollectionName,
		Points:         reqPoints,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Search возвращает ближайшие к запросу точки индекса, отфильтрованные
// по магазину и версии модели: векторы разных моделей несравнимы.
func (q *VectorRepo) Search(ctx context.Context, req *usecase.VectorSearchReq) ([]usecase.VectorHit, error) {
	if len(req.Vector) == 0 {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrEmptyVector)
	}

	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatchInt("tenant_id", req.TenantID),
			qdrant.NewMatch("model_version", req.ModelVersion),
		},
	}

	limit := req.Limit
	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.cfg.CollectionName,
		Query:          qdrant.NewQuery(req.Vector...),
		Filter:         filter,
		Limit:          &limit,
		ScoreThreshold: req.ScoreThreshold,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	hits := make([]usecase.VectorHit, 0, len(points))
	for _, point := range points {
		payload := point.GetPayload()
		itemID := payload["item_id"].GetIntegerValue()
		if itemID == 0 {
			continue
		}

		hits = append(hits, usecase.VectorHit{
			ItemID: itemID,
			Score:  point.GetScore(),
		})
	}

	return hits, nil
}
