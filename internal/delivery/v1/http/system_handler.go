package http

import (
	"net/http"

	"github.com/floralab/catalog-backend/internal/indexer"
	"github.com/floralab/catalog-backend/pkg/logger"
)

// MetricsProvider отдаёт снимок счётчиков очереди индексации.
type MetricsProvider interface {
	Metrics() indexer.Metrics
}

// HealthChecker проверяет доступность базы данных.
type HealthChecker interface {
	Ping() error
}

type SystemHandler struct {
	metrics MetricsProvider
	health  HealthChecker
	logger  logger.Logger
}

func NewSystemHandler(metrics MetricsProvider, health HealthChecker, logger logger.Logger) *SystemHandler {
	return &SystemHandler{metrics: metrics, health: health, logger: logger}
}

// getMetrics
//
//	@Summary	Счётчики конвейера индексации
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	indexer.Metrics
//	@Router		/metrics [get]
func (h *SystemHandler) getMetrics(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, http.StatusOK, h.metrics.Metrics())
}

// getHealth
//
//	@Summary	Проверка живости сервиса
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *SystemHandler) getHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(); err != nil {
		h.logger.Warnf("health check failed: %s", err.Error())
		WriteSuccess(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
