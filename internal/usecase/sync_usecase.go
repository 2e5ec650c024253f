package usecase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SyncUseCase реализует приём уведомлений об изменениях каталога из CRM.
// Доставка at-least-once, поэтому применение строится как идемпотентный upsert,
// а индексация вынесена за транзакцию в fire-and-forget очередь.
type SyncUseCase struct {
	tenantRepo TenantRepository
	itemRepo   ItemRepository
	imageRepo  ImageRepository
	outboxRepo OutboxRepository
	dbPool     transaction.Transactional
	scheduler  IndexScheduler
	cacheRepo  CacheRepository
	logger     logger.Logger
}

func NewSyncUC(
	tenantRepo TenantRepository,
	itemRepo ItemRepository,
	imageRepo ImageRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	scheduler IndexScheduler,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		tenantRepo: tenantRepo,
		itemRepo:   itemRepo,
		imageRepo:  imageRepo,
		outboxRepo: outboxRepo,
		dbPool:     dbPool,
		scheduler:  scheduler,
		cacheRepo:  cacheRepo,
		logger:     logger,
	}
}

// Authorize проверяет секрет вебхука до какого-либо разбора payload'а.
func (s *SyncUseCase) Authorize(ctx context.Context, tenantID int64, secret string) error {
	const op = "SyncUseCase.Authorize"

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if !tenant.IsActive {
		return e.Wrap(op, e.ErrTenantNotFound)
	}

	if subtle.ConstantTimeCompare([]byte(tenant.WebhookSecret), []byte(secret)) != 1 {
		return e.Wrap(op, e.ErrWebhookUnauthorized)
	}

	return nil
}

// ApplyChange применяет одно уведомление. Повторное применение того же
// уведомления сходится к тому же состоянию хранилища.
func (s *SyncUseCase) ApplyChange(ctx context.Context, req *ApplyChangeReq) (*ApplyChangeRes, error) {
	const op = "SyncUseCase.ApplyChange"

	if req.Notification == nil {
		return nil, e.Wrap(op, e.ErrStatusBadRequest)
	}

	switch req.Notification.EventType {
	case "created", "updated":
		return s.applyUpsert(ctx, req.TenantID, req.Notification.ItemData)
	case "deleted":
		return s.applyDelete(ctx, req.TenantID, req.Notification.ItemData)
	default:
		return nil, e.Wrap(op, e.ErrUnknownEventType)
	}
}

// applyUpsert создаёт или обновляет позицию вместе с полной заменой набора
// изображений в одной транзакции, затем при необходимости ставит задачу индексации.
func (s *SyncUseCase) applyUpsert(ctx context.Context, tenantID int64, data *ItemData) (*ApplyChangeRes, error) {
	const op = "SyncUseCase.applyUpsert"

	norm, parseErrs, err := normalizeItemData(tenantID, data)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	// Частичный разбор допустим для синхронизации: нечитаемое поле
	// остаётся пустым, уведомление применяется дальше.
	for _, perr := range parseErrs {
		s.logger.Warnf("upstream_id %d: field left empty: %v", data.UpstreamID, perr)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	res, err := s.itemRepo.Upsert(ctx, norm.item)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if res.Stale {
		// Более старое уведомление: last-write-wins по времени CRM,
		// состояние не регрессирует.
		if err = tx.Commit(ctx); err != nil {
			return nil, e.Wrap(op, err)
		}
		return NewApplyChangeRes(ActionSkipped, res.Item.ID, false), nil
	}

	oldPrimaryURL := ""
	if !res.Inserted {
		primary, perr := s.imageRepo.GetPrimary(ctx, res.Item.ID)
		switch {
		case perr == nil:
			oldPrimaryURL = primary.SourceURL
		case errors.Is(perr, e.ErrNoPrimaryImage):
			// изображений ещё нет
		default:
			err = perr
			return nil, e.Wrap(op, err)
		}
	}

	newPrimaryURL := ""
	if len(norm.images) > 0 {
		newPrimaryURL = norm.images[0].SourceURL
		for i := range norm.images {
			norm.images[i].ItemID = res.Item.ID
		}
		if err = s.imageRepo.ReplaceForItem(ctx, res.Item.ID, norm.images); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	action := ActionUpdated
	eventType := EventItemUpdated
	if res.Inserted {
		action = ActionCreated
		eventType = EventItemCreated
	}

	if err = s.createOutboxEvent(ctx, eventType, res.Item); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	// Инвалидация кэша и постановка индексации уже вне транзакции:
	// их отказ не должен превращаться в ошибку для отправителя.
	if cerr := s.cacheRepo.DeleteItems(ctx, tenantID, []int64{res.Item.ID}); cerr != nil {
		s.logger.Warnf("failed to invalidate item cache: %v", e.Wrap(op, cerr))
	}

	reindex := false
	if norm.item.Enabled && newPrimaryURL != "" && (res.Inserted || newPrimaryURL != oldPrimaryURL) {
		reindex = s.scheduler.Enqueue(res.Item.ID)
		if !reindex {
			s.logger.Warnf("index task rejected, item_id: %d", res.Item.ID)
		}
	}

	return NewApplyChangeRes(action, res.Item.ID, reindex), nil
}

// applyDelete помечает позицию отключённой; строка и её история сохраняются.
// Отсутствие позиции — не ошибка, а подтверждение "уже отсутствует".
func (s *SyncUseCase) applyDelete(ctx context.Context, tenantID int64, data *ItemData) (*ApplyChangeRes, error) {
	const op = "SyncUseCase.applyDelete"

	if data == nil || data.UpstreamID == 0 {
		return nil, e.Wrap(op, e.ErrUpstreamIDMissed)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, s.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	item, err := s.itemRepo.Disable(ctx, tenantID, data.UpstreamID)
	if err != nil {
		if errors.Is(err, e.ErrItemNotFound) {
			err = nil
			if cerr := tx.Commit(ctx); cerr != nil {
				return nil, e.Wrap(op, cerr)
			}
			return NewApplyChangeRes(ActionSkipped, 0, false), nil
		}
		return nil, e.Wrap(op, err)
	}

	if err = s.createOutboxEvent(ctx, EventItemDeleted, item); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	if cerr := s.cacheRepo.DeleteItems(ctx, tenantID, []int64{item.ID}); cerr != nil {
		s.logger.Warnf("failed to invalidate item cache: %v", e.Wrap(op, cerr))
	}

	return NewApplyChangeRes(ActionDeleted, item.ID, false), nil
}

// createOutboxEvent записывает событие синхронизации в outbox внутри текущей транзакции.
func (s *SyncUseCase) createOutboxEvent(ctx context.Context, eventType OutboxEventType, item *domain.CatalogItem) error {
	payload, err := json.Marshal(ChangeEventPayload{
		EventType:  eventType,
		TenantID:   item.TenantID,
		ItemID:     item.ID,
		UpstreamID: item.UpstreamID,
		OccurredAt: time.Now().UTC().UnixNano(),
	})
	if err != nil {
		return err
	}

	_, err = s.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), eventType, item.TenantID, item.ID, payload))
	return err
}
