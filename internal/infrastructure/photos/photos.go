// Package photos скачивает фотографии позиций из CRM и архивирует их в зеркало.
package photos

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/infrastructure"
	minioRepo "github.com/floralab/catalog-backend/internal/repository/minio"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
)

// maxPhotoSize ограничивает размер скачиваемого фото.
const maxPhotoSize = 20 << 20 // 20 MiB

// PhotosInfrastructure скачивает главное фото по URL из уведомления CRM
// и кладёт копию в MinIO, чтобы вектор оставался воспроизводимым
// после удаления фото на стороне CRM.
type PhotosInfrastructure struct {
	httpClient *http.Client
	repo       *minioRepo.PhotoRepo
	logger     logger.Logger
}

func NewPhotosInfrastructure(cfg *cfg.IndexerCfg, repo *minioRepo.PhotoRepo, logger logger.Logger) *PhotosInfrastructure {
	return &PhotosInfrastructure{
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		repo:       repo,
		logger:     logger,
	}
}

// FetchPhoto скачивает фото по URL. Хосты CRM бывают медленными и
// недоступными, таймаут клиента строго ограничен.
func (p *PhotosInfrastructure) FetchPhoto(ctx context.Context, url string) (*usecase.PhotoPayload, error) {
	const op = "PhotosInfrastructure.FetchPhoto"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %d for %s", op, resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoSize+1))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(data) > maxPhotoSize {
		return nil, e.Wrap(op, e.ErrFileTooLarge)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty body for %s", op, url)
	}

	return &usecase.PhotoPayload{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// MirrorPhoto кладёт копию фото в бакет зеркала и возвращает ключ объекта.
func (p *PhotosInfrastructure) MirrorPhoto(ctx context.Context, req *usecase.MirrorPhotoReq) (string, error) {
	const op = "PhotosInfrastructure.MirrorPhoto"

	ext, err := infrastructure.GetExtensionFromMIME(req.ContentType)
	if err != nil {
		// Неизвестный MIME не блокирует архивирование, ключ получает .bin
		p.logger.Warnf("unknown photo mime type %q, item_id: %d", req.ContentType, req.ItemID)
	}

	objKey := fmt.Sprintf("tenants/%d/items/%d/primary.%s", req.TenantID, req.ItemID, ext)
	key, err := p.repo.Upload(ctx, objKey, req.Data, req.ContentType)
	if err != nil {
		return "", e.Wrap(op, err)
	}

	return key, nil
}
