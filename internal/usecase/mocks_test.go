package usecase

import (
	"context"
	"sync"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// nopLogger глушит вывод в тестах.
type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeTx удовлетворяет pgx.Tx, не трогая базу.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (t *fakeTx) Conn() *pgx.Conn { return nil }

// fakePool выдаёт fakeTx вместо соединения с postgres.
type fakePool struct {
	tx *fakeTx
}

func newFakePool() *fakePool {
	return &fakePool{tx: &fakeTx{}}
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) { return p.tx, nil }

func (p *fakePool) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return p.tx, nil
}

type fakeTenantRepo struct {
	tenant *domain.Tenant
	err    error
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tenant, nil
}

type fakeItemRepo struct {
	upsertRes  *UpsertItemRes
	upsertErr  error
	upserted   []*domain.CatalogItem
	disabled   *domain.CatalogItem
	disableErr error
	item       *domain.CatalogItem
	getErr     error
	infos      []ItemInfo
	infosErr   error
	infoIDs    []int64
}

func (f *fakeItemRepo) Upsert(ctx context.Context, item *domain.CatalogItem) (*UpsertItemRes, error) {
	f.upserted = append(f.upserted, item)
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	return f.upsertRes, nil
}

func (f *fakeItemRepo) Disable(ctx context.Context, tenantID, upstreamID int64) (*domain.CatalogItem, error) {
	if f.disableErr != nil {
		return nil, f.disableErr
	}
	return f.disabled, nil
}

func (f *fakeItemRepo) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.item, nil
}

func (f *fakeItemRepo) GetItemsInfo(ctx context.Context, tenantID int64, ids []int64) ([]ItemInfo, error) {
	f.infoIDs = append(f.infoIDs, ids...)
	if f.infosErr != nil {
		return nil, f.infosErr
	}
	return f.infos, nil
}

// statefulItemRepo хранит позиции в памяти и воспроизводит семантику
// идемпотентного upsert'а по ключу (tenant_id, upstream_id): повторное
// применение сходится к тому же состоянию, более старое уведомление по
// часам CRM помечается как stale, уведомление без updated_at не
// затирает сохранённый водяной знак.
type statefulItemRepo struct {
	nextID int64
	items  map[[2]int64]*domain.CatalogItem
}

func newStatefulItemRepo() *statefulItemRepo {
	return &statefulItemRepo{items: make(map[[2]int64]*domain.CatalogItem)}
}

func (f *statefulItemRepo) Upsert(ctx context.Context, item *domain.CatalogItem) (*UpsertItemRes, error) {
	key := [2]int64{item.TenantID, item.UpstreamID}
	existing, ok := f.items[key]
	if !ok {
		f.nextID++
		stored := *item
		stored.ID = f.nextID
		f.items[key] = &stored
		out := stored
		return NewUpsertItemRes(&out, true, false), nil
	}

	if existing.UpstreamUpdatedAt != nil && item.UpstreamUpdatedAt != nil &&
		item.UpstreamUpdatedAt.Before(*existing.UpstreamUpdatedAt) {
		out := *existing
		return NewUpsertItemRes(&out, false, true), nil
	}

	stored := *item
	stored.ID = existing.ID
	if stored.UpstreamUpdatedAt == nil {
		stored.UpstreamUpdatedAt = existing.UpstreamUpdatedAt
	}
	f.items[key] = &stored
	out := stored
	return NewUpsertItemRes(&out, false, false), nil
}

func (f *statefulItemRepo) Disable(ctx context.Context, tenantID, upstreamID int64) (*domain.CatalogItem, error) {
	existing, ok := f.items[[2]int64{tenantID, upstreamID}]
	if !ok {
		return nil, e.ErrItemNotFound
	}
	existing.Enabled = false
	out := *existing
	return &out, nil
}

func (f *statefulItemRepo) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	for _, item := range f.items {
		if item.ID == id {
			out := *item
			return &out, nil
		}
	}
	return nil, e.ErrItemNotFound
}

func (f *statefulItemRepo) GetItemsInfo(ctx context.Context, tenantID int64, ids []int64) ([]ItemInfo, error) {
	infos := make([]ItemInfo, 0, len(ids))
	for _, id := range ids {
		for _, item := range f.items {
			if item.ID == id && item.TenantID == tenantID && item.Enabled {
				infos = append(infos, NewItemInfo(item.ID, item.Title, item.Price))
			}
		}
	}
	return infos, nil
}

// statefulImageRepo хранит наборы изображений в памяти; замена набора
// перезаписывает его целиком, как и табличный репозиторий.
type statefulImageRepo struct {
	byItem map[int64][]domain.CatalogImage
}

func newStatefulImageRepo() *statefulImageRepo {
	return &statefulImageRepo{byItem: make(map[int64][]domain.CatalogImage)}
}

func (f *statefulImageRepo) ReplaceForItem(ctx context.Context, itemID int64, images []domain.CatalogImage) error {
	f.byItem[itemID] = append([]domain.CatalogImage(nil), images...)
	return nil
}

func (f *statefulImageRepo) GetPrimary(ctx context.Context, itemID int64) (*domain.CatalogImage, error) {
	for _, img := range f.byItem[itemID] {
		if img.IsPrimary {
			out := img
			return &out, nil
		}
	}
	return nil, e.ErrNoPrimaryImage
}

type fakeImageRepo struct {
	primary    *domain.CatalogImage
	primaryErr error
	replaced   [][]domain.CatalogImage
	replaceErr error
}

func (f *fakeImageRepo) ReplaceForItem(ctx context.Context, itemID int64, images []domain.CatalogImage) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = append(f.replaced, images)
	return nil
}

func (f *fakeImageRepo) GetPrimary(ctx context.Context, itemID int64) (*domain.CatalogImage, error) {
	if f.primaryErr != nil {
		return nil, f.primaryErr
	}
	return f.primary, nil
}

type fakeOutboxRepo struct {
	created   []*OutboxEvent
	createErr error
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error { return nil }

type fakeCacheRepo struct {
	mu      sync.Mutex
	stored  map[int64]ItemInfo
	set     []ItemInfo
	deleted []int64
	getErr  error
	setErr  error
	delErr  error
}

func (f *fakeCacheRepo) GetItems(ctx context.Context, tenantID int64, ids []int64) (map[int64]ItemInfo, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[int64]ItemInfo)
	for _, id := range ids {
		if info, ok := f.stored[id]; ok {
			out[id] = info
		}
	}
	return out, nil
}

func (f *fakeCacheRepo) SetItems(ctx context.Context, tenantID int64, items []ItemInfo) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set = append(f.set, items...)
	return nil
}

func (f *fakeCacheRepo) DeleteItems(ctx context.Context, tenantID int64, ids []int64) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, ids...)
	return nil
}

type fakeScheduler struct {
	accept   bool
	enqueued []int64
}

func (f *fakeScheduler) Enqueue(itemID int64) bool {
	if !f.accept {
		return false
	}
	f.enqueued = append(f.enqueued, itemID)
	return true
}

type fakeEmbedder struct {
	res  *EmbedImageRes
	err  error
	reqs []*EmbedImageReq
}

func (f *fakeEmbedder) EmbedImage(ctx context.Context, req *EmbedImageReq) (*EmbedImageRes, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

type fakeVectorIndex struct {
	hits      []VectorHit
	searchErr error
	lastReq   *VectorSearchReq
	upserted  [][]domain.IndexPoint
	upsertErr error
}

func (f *fakeVectorIndex) Upsert(ctx context.Context, points []domain.IndexPoint) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, points)
	return nil
}

func (f *fakeVectorIndex) Search(ctx context.Context, req *VectorSearchReq) ([]VectorHit, error) {
	f.lastReq = req
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits, nil
}
