package usecase

import (
	"context"
	"testing"

	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncFixture struct {
	uc        *SyncUseCase
	tenants   *fakeTenantRepo
	items     *fakeItemRepo
	images    *fakeImageRepo
	outbox    *fakeOutboxRepo
	cache     *fakeCacheRepo
	scheduler *fakeScheduler
	pool      *fakePool
}

func newSyncFixture() *syncFixture {
	f := &syncFixture{
		tenants: &fakeTenantRepo{
			tenant: &domain.Tenant{ID: 1, WebhookSecret: "s3cret", IsActive: true},
		},
		items:     &fakeItemRepo{},
		images:    &fakeImageRepo{primaryErr: e.ErrNoPrimaryImage},
		outbox:    &fakeOutboxRepo{},
		cache:     &fakeCacheRepo{},
		scheduler: &fakeScheduler{accept: true},
		pool:      newFakePool(),
	}
	f.uc = NewSyncUC(f.tenants, f.items, f.images, f.outbox, f.pool, f.scheduler, f.cache, nopLogger{})
	return f
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	t.Run("valid secret", func(t *testing.T) {
		f := newSyncFixture()
		require.NoError(t, f.uc.Authorize(ctx, 1, "s3cret"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		f := newSyncFixture()
		err := f.uc.Authorize(ctx, 1, "guess")
		require.ErrorIs(t, err, e.ErrWebhookUnauthorized)
	})

	t.Run("inactive tenant hidden as not found", func(t *testing.T) {
		f := newSyncFixture()
		f.tenants.tenant.IsActive = false
		err := f.uc.Authorize(ctx, 1, "s3cret")
		require.ErrorIs(t, err, e.ErrTenantNotFound)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		f := newSyncFixture()
		f.tenants.err = e.ErrTenantNotFound
		err := f.uc.Authorize(ctx, 99, "s3cret")
		require.ErrorIs(t, err, e.ErrTenantNotFound)
	})
}

func TestApplyChangeCreated(t *testing.T) {
	f := newSyncFixture()
	f.items.upsertRes = &UpsertItemRes{
		Item:     &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Букет", Enabled: true},
		Inserted: true,
	}

	res, err := f.uc.ApplyChange(context.Background(), &ApplyChangeReq{
		TenantID: 1,
		Notification: &ChangeNotification{
			EventType: "created",
			ItemData: &ItemData{
				UpstreamID: 7,
				Title:      "Букет",
				Image:      "https://cdn.example.com/a.jpg",
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ActionCreated, res.Action)
	assert.Equal(t, int64(10), res.ItemID)
	assert.True(t, res.ReindexTriggered)
	assert.Equal(t, []int64{10}, f.scheduler.enqueued)

	require.Len(t, f.outbox.created, 1)
	assert.Equal(t, EventItemCreated, f.outbox.created[0].EventType)
	assert.Equal(t, int64(10), f.outbox.created[0].ItemID)

	require.Len(t, f.images.replaced, 1)
	assert.Equal(t, int64(10), f.images.replaced[0][0].ItemID)

	assert.Equal(t, []int64{10}, f.cache.deleted)
	assert.True(t, f.pool.tx.committed)
}

func TestApplyChangeUpdated(t *testing.T) {
	t.Run("same primary skips reindex", func(t *testing.T) {
		f := newSyncFixture()
		f.items.upsertRes = &UpsertItemRes{
			Item: &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Букет", Enabled: true},
		}
		f.images.primaryErr = nil
		f.images.primary = &domain.CatalogImage{ItemID: 10, SourceURL: "https://cdn.example.com/a.jpg", IsPrimary: true}

		res, err := f.uc.ApplyChange(context.Background(), &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "updated",
				ItemData: &ItemData{
					UpstreamID: 7,
					Title:      "Букет",
					Image:      "https://cdn.example.com/a.jpg",
				},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, ActionUpdated, res.Action)
		assert.False(t, res.ReindexTriggered)
		assert.Empty(t, f.scheduler.enqueued)
		require.Len(t, f.outbox.created, 1)
		assert.Equal(t, EventItemUpdated, f.outbox.created[0].EventType)
	})

	t.Run("new primary triggers reindex", func(t *testing.T) {
		f := newSyncFixture()
		f.items.upsertRes = &UpsertItemRes{
			Item: &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Букет", Enabled: true},
		}
		f.images.primaryErr = nil
		f.images.primary = &domain.CatalogImage{ItemID: 10, SourceURL: "https://cdn.example.com/old.jpg", IsPrimary: true}

		res, err := f.uc.ApplyChange(context.Background(), &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "updated",
				ItemData: &ItemData{
					UpstreamID: 7,
					Title:      "Букет",
					Image:      "https://cdn.example.com/new.jpg",
				},
			},
		})
		require.NoError(t, err)

		assert.True(t, res.ReindexTriggered)
		assert.Equal(t, []int64{10}, f.scheduler.enqueued)
	})

	t.Run("disabled item never reindexed", func(t *testing.T) {
		f := newSyncFixture()
		f.items.upsertRes = &UpsertItemRes{
			Item:     &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Букет"},
			Inserted: true,
		}
		available := false

		res, err := f.uc.ApplyChange(context.Background(), &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "created",
				ItemData: &ItemData{
					UpstreamID: 7,
					Title:      "Букет",
					Image:      "https://cdn.example.com/a.jpg",
					Available:  &available,
				},
			},
		})
		require.NoError(t, err)

		assert.False(t, res.ReindexTriggered)
		assert.Empty(t, f.scheduler.enqueued)
	})

	t.Run("full queue degrades to reindex false", func(t *testing.T) {
		f := newSyncFixture()
		f.scheduler.accept = false
		f.items.upsertRes = &UpsertItemRes{
			Item:     &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Букет", Enabled: true},
			Inserted: true,
		}

		res, err := f.uc.ApplyChange(context.Background(), &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "created",
				ItemData: &ItemData{
					UpstreamID: 7,
					Title:      "Букет",
					Image:      "https://cdn.example.com/a.jpg",
				},
			},
		})
		require.NoError(t, err)
		assert.False(t, res.ReindexTriggered)
	})
}

func TestApplyChangeStale(t *testing.T) {
	f := newSyncFixture()
	f.items.upsertRes = &UpsertItemRes{
		Item:  &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Старый букет", Enabled: true},
		Stale: true,
	}

	res, err := f.uc.ApplyChange(context.Background(), &ApplyChangeReq{
		TenantID: 1,
		Notification: &ChangeNotification{
			EventType: "updated",
			ItemData: &ItemData{
				UpstreamID: 7,
				Title:      "Старый букет",
				UpdatedAt:  "2020-01-01T00:00:00Z",
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ActionSkipped, res.Action)
	assert.False(t, res.ReindexTriggered)
	assert.Empty(t, f.outbox.created, "stale notification must not produce events")
	assert.Empty(t, f.images.replaced)
	assert.Empty(t, f.cache.deleted)
	assert.True(t, f.pool.tx.committed)
}

func TestApplyChangeValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil notification", func(t *testing.T) {
		f := newSyncFixture()
		_, err := f.uc.ApplyChange(ctx, &ApplyChangeReq{TenantID: 1})
		require.ErrorIs(t, err, e.ErrStatusBadRequest)
	})

	t.Run("unknown event type", func(t *testing.T) {
		f := newSyncFixture()
		_, err := f.uc.ApplyChange(ctx, &ApplyChangeReq{
			TenantID:     1,
			Notification: &ChangeNotification{EventType: "archived"},
		})
		require.ErrorIs(t, err, e.ErrUnknownEventType)
	})

	t.Run("missing upstream id", func(t *testing.T) {
		f := newSyncFixture()
		_, err := f.uc.ApplyChange(ctx, &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "created",
				ItemData:  &ItemData{Title: "Букет"},
			},
		})
		require.ErrorIs(t, err, e.ErrUpstreamIDMissed)
	})

	t.Run("missing title", func(t *testing.T) {
		f := newSyncFixture()
		_, err := f.uc.ApplyChange(ctx, &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "created",
				ItemData:  &ItemData{UpstreamID: 7},
			},
		})
		require.ErrorIs(t, err, e.ErrTitleRequired)
	})
}

func TestApplyChangeDeleted(t *testing.T) {
	ctx := context.Background()

	t.Run("existing item disabled", func(t *testing.T) {
		f := newSyncFixture()
		f.items.disabled = &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Букет"}

		res, err := f.uc.ApplyChange(ctx, &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "deleted",
				ItemData:  &ItemData{UpstreamID: 7},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, ActionDeleted, res.Action)
		assert.Equal(t, int64(10), res.ItemID)
		require.Len(t, f.outbox.created, 1)
		assert.Equal(t, EventItemDeleted, f.outbox.created[0].EventType)
		assert.Equal(t, []int64{10}, f.cache.deleted)
	})

	t.Run("missing item acknowledged as skipped", func(t *testing.T) {
		f := newSyncFixture()
		f.items.disableErr = e.ErrItemNotFound

		res, err := f.uc.ApplyChange(ctx, &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "deleted",
				ItemData:  &ItemData{UpstreamID: 404},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, ActionSkipped, res.Action)
		assert.Zero(t, res.ItemID)
		assert.Empty(t, f.outbox.created)
	})

	t.Run("missing upstream id", func(t *testing.T) {
		f := newSyncFixture()
		_, err := f.uc.ApplyChange(ctx, &ApplyChangeReq{
			TenantID:     1,
			Notification: &ChangeNotification{EventType: "deleted", ItemData: &ItemData{}},
		})
		require.ErrorIs(t, err, e.ErrUpstreamIDMissed)
	})
}

// TestApplyChangeReplay проверяет сходимость при at-least-once доставке:
// повторное применение того же уведомления даёт то же состояние хранилища
// без дублей изображений, а устаревшее по часам CRM уведомление
// не регрессирует запись.
func TestApplyChangeReplay(t *testing.T) {
	ctx := context.Background()

	newReplayFixture := func() (*SyncUseCase, *statefulItemRepo, *statefulImageRepo) {
		items := newStatefulItemRepo()
		images := newStatefulImageRepo()
		uc := NewSyncUC(
			&fakeTenantRepo{tenant: &domain.Tenant{ID: 1, WebhookSecret: "s3cret", IsActive: true}},
			items,
			images,
			&fakeOutboxRepo{},
			newFakePool(),
			&fakeScheduler{accept: true},
			&fakeCacheRepo{},
			nopLogger{},
		)
		return uc, items, images
	}

	notification := func(updatedAt string) *ApplyChangeReq {
		return &ApplyChangeReq{
			TenantID: 1,
			Notification: &ChangeNotification{
				EventType: "updated",
				ItemData: &ItemData{
					UpstreamID: 7,
					Title:      "Букет",
					Images:     []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
					UpdatedAt:  updatedAt,
				},
			},
		}
	}

	t.Run("same notification twice converges", func(t *testing.T) {
		uc, items, images := newReplayFixture()

		first, err := uc.ApplyChange(ctx, notification("2026-08-30T12:00:00Z"))
		require.NoError(t, err)
		assert.Equal(t, ActionCreated, first.Action)

		second, err := uc.ApplyChange(ctx, notification("2026-08-30T12:00:00Z"))
		require.NoError(t, err)
		assert.Equal(t, ActionUpdated, second.Action)
		assert.Equal(t, first.ItemID, second.ItemID)

		require.Len(t, items.items, 1, "replay must not create a second row")
		stored := items.items[[2]int64{1, 7}]
		assert.Equal(t, "Букет", stored.Title)

		require.Len(t, images.byItem[first.ItemID], 2, "replay must not duplicate images")
		primary, err := images.GetPrimary(ctx, first.ItemID)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.jpg", primary.SourceURL)
	})

	t.Run("stale notification leaves state intact", func(t *testing.T) {
		uc, items, _ := newReplayFixture()

		_, err := uc.ApplyChange(ctx, notification("2026-08-30T12:00:00Z"))
		require.NoError(t, err)

		stale := notification("2026-08-30T11:00:00Z")
		stale.Notification.ItemData.Title = "Старый букет"
		res, err := uc.ApplyChange(ctx, stale)
		require.NoError(t, err)

		assert.Equal(t, ActionSkipped, res.Action)
		assert.Equal(t, "Букет", items.items[[2]int64{1, 7}].Title)
	})

	t.Run("notification without timestamp keeps watermark", func(t *testing.T) {
		uc, items, _ := newReplayFixture()

		_, err := uc.ApplyChange(ctx, notification("2026-08-30T12:00:00Z"))
		require.NoError(t, err)

		// уведомление без updated_at применяется, но водяной знак CRM
		// сохраняется, и последующий устаревший дубль всё ещё отсекается
		bare := notification("")
		bare.Notification.ItemData.Title = "Свежий букет"
		res, err := uc.ApplyChange(ctx, bare)
		require.NoError(t, err)
		assert.Equal(t, ActionUpdated, res.Action)
		require.NotNil(t, items.items[[2]int64{1, 7}].UpstreamUpdatedAt)

		stale := notification("2026-08-30T11:00:00Z")
		stale.Notification.ItemData.Title = "Старый букет"
		skipped, err := uc.ApplyChange(ctx, stale)
		require.NoError(t, err)

		assert.Equal(t, ActionSkipped, skipped.Action)
		assert.Equal(t, "Свежий букет", items.items[[2]int64{1, 7}].Title)
	})
}
