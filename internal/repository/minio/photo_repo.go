package minio

import (
	"bytes"
	"context"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// PhotoRepo хранит копии главных фото позиций в MinIO.
// Зеркало переживает удаление фото на стороне CRM: вектор остаётся
// воспроизводимым из исходных байтов.
type PhotoRepo struct {
	client *minio.Client
	cfg    *cfg.MinIOCfg
}

func NewPhotoRepo(client *minio.Client, cfg *cfg.MinIOCfg) *PhotoRepo {
	return &PhotoRepo{
		client: client,
		cfg:    cfg,
	}
}

// Upload загружает фото в бакет зеркала и возвращает ключ объекта.
func (r *PhotoRepo) Upload(ctx context.Context, objKey string, data []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, r.cfg.BucketName, objKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return objKey, nil
}
