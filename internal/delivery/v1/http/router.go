package http

import (
	_ "github.com/floralab/catalog-backend/docs" // Импорт сгенерированных файлов
	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(syncUC usecase.SyncUC, searchUC usecase.SearchUC, metrics MetricsProvider, health HealthChecker) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	systemHandler := NewSystemHandler(metrics, health, r.logger)
	r.router.Get("/health", systemHandler.getHealth)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		webhookHandler := NewWebhookHandler(syncUC, r.logger)
		searchHandler := NewSearchHandler(searchUC, r.logger)
		registerCatalogRoutes(v1, webhookHandler, searchHandler)

		v1.Get("/metrics", systemHandler.getMetrics)
	})
}

func registerCatalogRoutes(router chi.Router, webhookHandler *WebhookHandler, searchHandler *SearchHandler) {
	router.Route("/tenants/{tenantID}/catalog", func(ct chi.Router) {
		ct.Post("/events", webhookHandler.applyChange)
		ct.Post("/search", searchHandler.searchByImage)
	})
}
