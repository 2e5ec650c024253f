// Package embedder — клиент внешнего сервиса векторизации изображений.
package embedder

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/jitter"
	"github.com/floralab/catalog-backend/pkg/logger"
)

// Embedder отправляет изображение сервису векторизации и получает вектор
// вместе с версией модели. Сервис принимает либо байты изображения
// (base64), либо URL — тот же контракт, что и у вебхука поиска.
type Embedder struct {
	httpClient *http.Client
	cfg        *cfg.EmbedderCfg
	logger     logger.Logger
}

type embedRequest struct {
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type embedResponse struct {
	Vector       []float32 `json:"vector"`
	ModelVersion string    `json:"model_version"`
}

func NewEmbedder(cfg *cfg.EmbedderCfg, logger logger.Logger) *Embedder {
	return &Embedder{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// EmbedImage выполняет векторизацию изображения с retry-логикой и экспоненциальной задержкой
func (m *Embedder) EmbedImage(ctx context.Context, req *usecase.EmbedImageReq) (*usecase.EmbedImageRes, error) {
	const (
		op         = "Embedder.EmbedImage"
		baseJitter = 1 * time.Second
		maxJitter  = 30 * time.Second
	)

	if len(req.Data) == 0 && req.URL == "" {
		return nil, e.Wrap(op, e.ErrQueryImageRequired)
	}

	for attempt := 0; attempt < m.cfg.MaxRetries; attempt++ {
		res, err := m.embedOnce(ctx, req)
		if err == nil {
			return res, nil
		}

		if attempt == m.cfg.MaxRetries-1 {
			return nil, e.Wrap(op, fmt.Errorf("all %d attempts failed: %w", m.cfg.MaxRetries, err))
		}

		sleepTime := jitter.ExponentialBackoff(
			baseJitter,
			maxJitter,
			attempt,
			jitter.DefaultJitter,
		)

		m.logger.Warnf("embedding failed, retrying in %v (attempt %d)", sleepTime, attempt+1)
		select {
		case <-time.After(sleepTime):
		case <-ctx.Done():
			return nil, e.Wrap(op, ctx.Err())
		}
	}

	return nil, e.Wrap(op, fmt.Errorf("unreachable"))
}

// embedOnce выполняет один запрос к сервису векторизации.
func (m *Embedder) embedOnce(ctx context.Context, req *usecase.EmbedImageReq) (*usecase.EmbedImageRes, error) {
	const op = "Embedder.embedOnce"

	body := embedRequest{ImageURL: req.URL}
	if len(req.Data) > 0 {
		body.ImageBase64 = base64.StdEncoding.EncodeToString(req.Data)
		body.ImageURL = ""
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.BaseURL+"/v1/embed", bytes.NewReader(payload))
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(httpReq)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode, data)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(parsed.Vector) == 0 {
		return nil, e.Wrap(op, e.ErrEmptyVector)
	}

	modelVersion := parsed.ModelVersion
	if modelVersion == "" {
		modelVersion = m.cfg.ModelVersion
	}

	return usecase.NewEmbedImageRes(parsed.Vector, modelVersion), nil
}
