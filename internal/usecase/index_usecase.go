package usecase

import (
	"context"
	"errors"
	"fmt"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IndexUseCase выполняет задачу индексации одной позиции: скачивает главное фото,
// получает вектор у внешнего сервиса и сохраняет его в хранилище и поисковый индекс.
// Состояние позиции перечитывается в момент выполнения, а не берётся из задачи:
// позиция могла измениться, пока задача ждала в очереди.
type IndexUseCase struct {
	itemRepo      ItemRepository
	imageRepo     ImageRepository
	embeddingRepo EmbeddingRepository
	vectorIndex   VectorIndexRepository
	dbPool        transaction.Transactional
	embedder      EmbedderInfra
	photos        PhotosInfra
	embedderCfg   *cfg.EmbedderCfg
	logger        logger.Logger
}

func NewIndexUC(
	itemRepo ItemRepository,
	imageRepo ImageRepository,
	embeddingRepo EmbeddingRepository,
	vectorIndex VectorIndexRepository,
	dbPool transaction.Transactional,
	embedder EmbedderInfra,
	photos PhotosInfra,
	embedderCfg *cfg.EmbedderCfg,
	logger logger.Logger,
) *IndexUseCase {
	return &IndexUseCase{
		itemRepo:      itemRepo,
		imageRepo:     imageRepo,
		embeddingRepo: embeddingRepo,
		vectorIndex:   vectorIndex,
		dbPool:        dbPool,
		embedder:      embedder,
		photos:        photos,
		embedderCfg:   embedderCfg,
		logger:        logger,
	}
}

// IndexItem строит и сохраняет вектор главного фото позиции.
// Отключённая, исчезнувшая или оставшаяся без фото позиция — штатный no-op.
func (u *IndexUseCase) IndexItem(ctx context.Context, itemID int64) (IndexOutcome, error) {
	const op = "IndexUseCase.IndexItem"

	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, e.ErrItemNotFound) {
			return IndexOutcomeSkipped, nil
		}
		return "", e.Wrap(op, err)
	}

	if !item.Enabled {
		return IndexOutcomeSkipped, nil
	}

	primary, err := u.imageRepo.GetPrimary(ctx, item.ID)
	if err != nil {
		if errors.Is(err, e.ErrNoPrimaryImage) {
			return IndexOutcomeSkipped, nil
		}
		return "", e.Wrap(op, err)
	}

	photo, err := u.photos.FetchPhoto(ctx, primary.SourceURL)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	// Зеркалирование в MinIO не критично для индексации:
	// эмбеддинг считается по уже скачанным байтам.
	if _, merr := u.photos.MirrorPhoto(ctx, &MirrorPhotoReq{
		TenantID:    item.TenantID,
		ItemID:      item.ID,
		Data:        photo.Data,
		ContentType: photo.ContentType,
	}); merr != nil {
		u.logger.Warnf("photo mirror failed, item_id %d: %v", item.ID, merr)
	}

	embedded, err := u.embedder.EmbedImage(ctx, &EmbedImageReq{Data: photo.Data})
	if err != nil {
		return "", e.Wrap(op, err)
	}
	if len(embedded.Vector) == 0 {
		return "", e.Wrap(op, e.ErrEmptyVector)
	}

	modelVersion := embedded.ModelVersion
	if modelVersion == "" {
		modelVersion = u.embedderCfg.ModelVersion
	}

	if err := u.persistRecord(ctx, item, embedded.Vector, modelVersion); err != nil {
		return "", e.Wrap(op, err)
	}

	point := domain.NewIndexPoint(
		indexPointID(item.TenantID, item.ID, modelVersion),
		embedded.Vector,
		domain.NewIndexPayload(item.TenantID, item.ID, modelVersion),
	)
	if err := u.vectorIndex.Upsert(ctx, []domain.IndexPoint{*point}); err != nil {
		return "", e.Wrap(op, err)
	}

	return IndexOutcomeIndexed, nil
}

// persistRecord перезаписывает EmbeddingRecord позиции в одной транзакции:
// наполовину записанный вектор не наблюдаем, сорванная попытка
// оставляет прежнюю запись нетронутой.
func (u *IndexUseCase) persistRecord(ctx context.Context, item *domain.CatalogItem, vector []float32, modelVersion string) error {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if _, err = u.embeddingRepo.Upsert(ctx, domain.NewEmbeddingRecord(item.ID, vector, modelVersion)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// indexPointID детерминированно выводит id точки индекса из идентичности записи,
// поэтому повторная индексация перезаписывает точку, а не плодит дубликаты.
func indexPointID(tenantID, itemID int64, modelVersion string) string {
	name := fmt.Sprintf("catalog://tenants/%d/items/%d/%s", tenantID, itemID, modelVersion)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}
