package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/floralab/catalog-backend/internal/usecase"
	"github.com/floralab/catalog-backend/pkg/e"
	"github.com/floralab/catalog-backend/pkg/logger"
)

type SearchHandler struct {
	searchUsecase usecase.SearchUC
	logger        logger.Logger
}

func NewSearchHandler(searchUsecase usecase.SearchUC, logger logger.Logger) *SearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase, logger: logger}
}

type searchJSONRequest struct {
	ImageURL      string   `json:"image_url"`
	Limit         *int     `json:"limit"`
	MinSimilarity *float32 `json:"min_similarity"`
}

type searchResultResponse struct {
	ItemID     int64   `json:"item_id"`
	Title      string  `json:"title"`
	Price      *int64  `json:"price"`
	Similarity float32 `json:"similarity"`
}

type searchResponse struct {
	Results []searchResultResponse `json:"results"`
	Count   int                    `json:"count"`
}

// searchByImage
//
//	@Summary		Поиск похожих позиций по изображению
//	@Description	Принимает файл изображения (multipart) или JSON с image_url и возвращает визуально похожие позиции каталога
//	@Tags			catalog
//	@Accept			multipart/form-data
//	@Accept			json
//	@Produce		json
//	@Param			tenantID		path		int		true	"ID магазина"
//	@Param			image			formData	file	false	"Изображение запроса"
//	@Param			limit			formData	int		false	"Размер выдачи (1-100)"
//	@Param			min_similarity	formData	number	false	"Минимальное сходство [-1, 1]"
//	@Success		200	{object}	searchResponse	"Выдача поиска"
//	@Failure		400	{object}	ErrorResponse	"Ошибка валидации"
//	@Failure		502	{object}	ErrorResponse	"Сервис векторизации недоступен"
//	@Router			/tenants/{tenantID}/catalog/search [post]
func (h *SearchHandler) searchByImage(w http.ResponseWriter, r *http.Request) {
	tenantID, err := parseTenantID(r)
	if err != nil {
		h.logger.Warnf("%d %s: bad tenant id", http.StatusBadRequest, e.ErrStatusBadRequest.Error())
		WriteError(w, err)
		return
	}

	req, err := h.parseSearchRequest(r, tenantID)
	if err != nil {
		h.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	res, err := h.searchUsecase.SearchByImage(r.Context(), req)
	if err != nil {
		h.logger.Warnf("search failed, tenant_id: %d: %s", tenantID, err.Error())
		WriteError(w, err)
		return
	}

	results := make([]searchResultResponse, 0, len(res.Results))
	for _, result := range res.Results {
		results = append(results, searchResultResponse{
			ItemID:     result.ItemID,
			Title:      result.Title,
			Price:      result.Price,
			Similarity: result.Similarity,
		})
	}

	WriteSuccess(w, http.StatusOK, searchResponse{
		Results: results,
		Count:   res.Count,
	})
}

// parseSearchRequest разбирает запрос в обеих формах: multipart с файлом
// изображения и JSON с URL изображения.
func (h *SearchHandler) parseSearchRequest(r *http.Request, tenantID int64) (*usecase.SearchReq, error) {
	const (
		maxTotalRequestSize = 32 << 20
		maxMemory           = 16 << 20
		maxImageSize        = 15 << 20
	)

	r.Body = http.MaxBytesReader(nil, r.Body, maxTotalRequestSize)
	req := &usecase.SearchReq{TenantID: tenantID}

	if !isMultipart(r) {
		var body searchJSONRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, e.Wrap("malformed search request", e.ErrStatusBadRequest)
		}

		req.ImageURL = body.ImageURL
		if body.Limit != nil {
			req.Limit = *body.Limit
		}
		req.MinSimilarity = body.MinSimilarity

		return req, nil
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		return nil, e.Wrap("malformed multipart form", e.ErrStatusBadRequest)
	}

	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		data, err := readFile(files[0], maxImageSize)
		if err != nil {
			return nil, err
		}
		req.ImageData = data
	}

	if raw := r.FormValue("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, e.Wrap(raw, e.ErrInvalidLimit)
		}
		req.Limit = limit
	}

	if raw := r.FormValue("min_similarity"); raw != "" {
		threshold, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, e.Wrap(raw, e.ErrInvalidThreshold)
		}
		minSimilarity := float32(threshold)
		req.MinSimilarity = &minSimilarity
	}

	return req, nil
}
