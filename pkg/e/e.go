package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки с векторами
	ErrEmptyVector          = fmt.Errorf("embedding vector is empty")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки синхронизации каталога
	ErrUnknownEventType = fmt.Errorf("unknown event type")
	ErrUpstreamIDMissed = fmt.Errorf("upstream id is required")
	ErrTitleRequired    = fmt.Errorf("item title is required")

	// Ошибки индексации и поиска
	ErrItemNotFound       = fmt.Errorf("catalog item not found")
	ErrNoPrimaryImage     = fmt.Errorf("item has no primary image")
	ErrEmbeddingFailed    = fmt.Errorf("embedding generation failed")
	ErrQueryImageRequired = fmt.Errorf("query image is required")

	// 401/404 на границе вебхука
	ErrTenantNotFound      = fmt.Errorf("tenant not found")
	ErrWebhookUnauthorized = fmt.Errorf("webhook secret mismatch")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrInvalidLimit         = fmt.Errorf("invalid limit")
	ErrInvalidThreshold     = fmt.Errorf("invalid min_similarity")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrFileTooLarge         = fmt.Errorf("file too large")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
