package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/domain"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePhotos struct {
	payload   *PhotoPayload
	fetchErr  error
	mirrorErr error
	mirrored  []*MirrorPhotoReq
}

func (f *fakePhotos) FetchPhoto(ctx context.Context, url string) (*PhotoPayload, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.payload, nil
}

func (f *fakePhotos) MirrorPhoto(ctx context.Context, req *MirrorPhotoReq) (string, error) {
	if f.mirrorErr != nil {
		return "", f.mirrorErr
	}
	f.mirrored = append(f.mirrored, req)
	return fmt.Sprintf("tenants/%d/items/%d/primary.jpg", req.TenantID, req.ItemID), nil
}

type fakeEmbeddingRepo struct {
	upserted []*domain.EmbeddingRecord
	err      error
}

func (f *fakeEmbeddingRepo) Upsert(ctx context.Context, record *domain.EmbeddingRecord) (*domain.EmbeddingRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.upserted = append(f.upserted, record)
	return record, nil
}

type indexFixture struct {
	uc         *IndexUseCase
	items      *fakeItemRepo
	images     *fakeImageRepo
	embeddings *fakeEmbeddingRepo
	index      *fakeVectorIndex
	embedder   *fakeEmbedder
	photos     *fakePhotos
}

func newIndexFixture() *indexFixture {
	f := &indexFixture{
		items: &fakeItemRepo{
			item: &domain.CatalogItem{ID: 10, TenantID: 1, UpstreamID: 7, Title: "Букет", Enabled: true},
		},
		images: &fakeImageRepo{
			primary: &domain.CatalogImage{ItemID: 10, SourceURL: "https://cdn.example.com/a.jpg", IsPrimary: true},
		},
		embeddings: &fakeEmbeddingRepo{},
		index:      &fakeVectorIndex{},
		embedder: &fakeEmbedder{
			res: &EmbedImageRes{Vector: []float32{0.1, 0.2}, ModelVersion: "clip-vit-b32-v1"},
		},
		photos: &fakePhotos{
			payload: &PhotoPayload{Data: []byte{0xFF, 0xD8}, ContentType: "image/jpeg"},
		},
	}
	f.uc = NewIndexUC(
		f.items,
		f.images,
		f.embeddings,
		f.index,
		newFakePool(),
		f.embedder,
		f.photos,
		&cfg.EmbedderCfg{ModelVersion: "clip-vit-b32-v1"},
		nopLogger{},
	)
	return f
}

func TestIndexItem(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		f := newIndexFixture()

		outcome, err := f.uc.IndexItem(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, IndexOutcomeIndexed, outcome)

		require.Len(t, f.embeddings.upserted, 1)
		rec := f.embeddings.upserted[0]
		assert.Equal(t, int64(10), rec.ItemID)
		assert.Equal(t, "clip-vit-b32-v1", rec.ModelVersion)
		assert.Equal(t, []float32{0.1, 0.2}, rec.Vector)

		require.Len(t, f.index.upserted, 1)
		require.Len(t, f.index.upserted[0], 1)
		point := f.index.upserted[0][0]
		assert.Equal(t, int64(1), point.Payload["tenant_id"])
		assert.Equal(t, int64(10), point.Payload["item_id"])
		assert.Equal(t, "clip-vit-b32-v1", point.Payload["model_version"])

		require.Len(t, f.photos.mirrored, 1)
	})

	t.Run("missing item is a no-op", func(t *testing.T) {
		f := newIndexFixture()
		f.items.getErr = e.ErrItemNotFound

		outcome, err := f.uc.IndexItem(ctx, 404)
		require.NoError(t, err)
		assert.Equal(t, IndexOutcomeSkipped, outcome)
		assert.Empty(t, f.embeddings.upserted)
	})

	t.Run("disabled item is a no-op", func(t *testing.T) {
		f := newIndexFixture()
		f.items.item.Enabled = false

		outcome, err := f.uc.IndexItem(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, IndexOutcomeSkipped, outcome)
	})

	t.Run("no primary image is a no-op", func(t *testing.T) {
		f := newIndexFixture()
		f.images.primary = nil
		f.images.primaryErr = e.ErrNoPrimaryImage

		outcome, err := f.uc.IndexItem(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, IndexOutcomeSkipped, outcome)
	})

	t.Run("photo fetch failure propagates", func(t *testing.T) {
		f := newIndexFixture()
		f.photos.fetchErr = fmt.Errorf("cdn timeout")

		_, err := f.uc.IndexItem(ctx, 10)
		require.Error(t, err)
		assert.Empty(t, f.embeddings.upserted)
	})

	t.Run("mirror failure does not block indexing", func(t *testing.T) {
		f := newIndexFixture()
		f.photos.mirrorErr = fmt.Errorf("minio down")

		outcome, err := f.uc.IndexItem(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, IndexOutcomeIndexed, outcome)
	})

	t.Run("empty vector is an error", func(t *testing.T) {
		f := newIndexFixture()
		f.embedder.res = &EmbedImageRes{Vector: nil, ModelVersion: "clip-vit-b32-v1"}

		_, err := f.uc.IndexItem(ctx, 10)
		require.ErrorIs(t, err, e.ErrEmptyVector)
	})

	t.Run("model version falls back to config", func(t *testing.T) {
		f := newIndexFixture()
		f.embedder.res = &EmbedImageRes{Vector: []float32{0.1}}

		_, err := f.uc.IndexItem(ctx, 10)
		require.NoError(t, err)
		require.Len(t, f.embeddings.upserted, 1)
		assert.Equal(t, "clip-vit-b32-v1", f.embeddings.upserted[0].ModelVersion)
	})
}

func TestIndexPointIDDeterminism(t *testing.T) {
	a := indexPointID(1, 10, "clip-vit-b32-v1")
	b := indexPointID(1, 10, "clip-vit-b32-v1")
	c := indexPointID(1, 10, "clip-vit-b32-v2")

	assert.Equal(t, a, b, "same identity must map to the same point")
	assert.NotEqual(t, a, c, "model version is part of the identity")
}
