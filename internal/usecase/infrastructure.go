package usecase

import "context"

// EmbedderInfra — клиент внешнего сервиса генерации эмбеддингов.
type EmbedderInfra interface {
	EmbedImage(ctx context.Context, req *EmbedImageReq) (*EmbedImageRes, error)
}

// PhotosInfra скачивает фото позиции и архивирует их в зеркало (MinIO).
type PhotosInfra interface {
	FetchPhoto(ctx context.Context, url string) (*PhotoPayload, error)
	MirrorPhoto(ctx context.Context, req *MirrorPhotoReq) (string, error)
}

// IndexScheduler принимает задачи индексации fire-and-forget:
// отказ постановки в очередь не должен ронять путь синхронизации.
type IndexScheduler interface {
	Enqueue(itemID int64) bool
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}
