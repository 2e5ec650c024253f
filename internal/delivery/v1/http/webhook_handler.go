package http

import (
	"encoding/json"
	"net/http"

	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
)

// webhookSecretHeader несёт общий секрет магазина.
const webhookSecretHeader = "X-Webhook-Secret"

type WebhookHandler struct {
	syncUsecase usecase.SyncUC
	logger      logger.Logger
}

func NewWebhookHandler(syncUsecase usecase.SyncUC, logger logger.Logger) *WebhookHandler {
	return &WebhookHandler{syncUsecase: syncUsecase, logger: logger}
}

type applyChangeResponse struct {
	Status           string `json:"status"`
	Action           string `json:"action"`
	ItemID           int64  `json:"item_id"`
	ReindexTriggered bool   `json:"reindex_triggered"`
}

// applyChange
//
//	@Summary		Приём уведомления об изменении каталога
//	@Description	Применяет событие создания, изменения или удаления позиции из CRM
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			tenantID			path	int		true	"ID магазина"
//	@Param			X-Webhook-Secret	header	string	true	"Секрет вебхука магазина"
//	@Success		200	{object}	applyChangeResponse	"Применённое действие"
//	@Failure		400	{object}	ErrorResponse		"Ошибка валидации"
//	@Failure		401	{object}	ErrorResponse		"Неверный секрет"
//	@Failure		404	{object}	ErrorResponse		"Магазин не найден"
//	@Router			/tenants/{tenantID}/catalog/events [post]
func (h *WebhookHandler) applyChange(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 1 << 20

	tenantID, err := parseTenantID(r)
	if err != nil {
		h.logger.Warnf("%d %s: bad tenant id", http.StatusBadRequest, e.ErrStatusBadRequest.Error())
		WriteError(w, err)
		return
	}

	// Аутентификация строго до чтения тела: неавторизованный отправитель
	// не должен влиять на разбор.
	if err := h.syncUsecase.Authorize(r.Context(), tenantID, r.Header.Get(webhookSecretHeader)); err != nil {
		h.logger.Warnf("webhook auth failed, tenant_id: %d: %s", tenantID, err.Error())
		WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var notification usecase.ChangeNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, e.Wrap("malformed notification", e.ErrStatusBadRequest))
		return
	}

	res, err := h.syncUsecase.ApplyChange(r.Context(), &usecase.ApplyChangeReq{
		TenantID:     tenantID,
		Notification: &notification,
	})
	if err != nil {
		h.logger.Warnf("apply change failed, tenant_id: %d: %s", tenantID, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, applyChangeResponse{
		Status:           "success",
		Action:           string(res.Action),
		ItemID:           res.ItemID,
		ReindexTriggered: res.ReindexTriggered,
	})
}
