package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/usecase"
	"github.com/Chiranjit680/FinAdvisor/pkg/response"
)

type StockHandler struct {
	uc       *usecase.StockUsecase
	screener *usecase.Screener
	logger   *zap.Logger
}

func NewStockHandler(uc *usecase.StockUsecase, screener *usecase.Screener, logger *zap.Logger) *StockHandler {
	return &StockHandler{uc: uc, screener: screener, logger: logger}
}

// FetchStockData handles GET /stock/fetch_stock_data/{ticker}.
func (h *StockHandler) FetchStockData(w http.ResponseWriter, r *http.Request) {
	stock, err := h.uc.FetchStockData(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stock)
}

// DisplayNews handles GET /stock/display_news/{ticker}.
func (h *StockHandler) DisplayNews(w http.ResponseWriter, r *http.Request) {
	articles, err := h.uc.DisplayNews(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, articles)
}

// NewsSentiment handles GET /stock/sentiment/{ticker}.
func (h *StockHandler) NewsSentiment(w http.ResponseWriter, r *http.Request) {
	labels, err := h.uc.NewsSentiment(r.Context(), chi.URLParam(r, "ticker"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, labels)
}

// LoadStockData handles POST /stock/load_stock_data and
// PUT /stock/update_stock_data; both run one screener pass and return its
// structured result. An already-running job is a conflict.
func (h *StockHandler) LoadStockData(w http.ResponseWriter, r *http.Request) {
	result, err := h.screener.UploadStockData(r.Context())
	if err != nil {
		if result != nil {
			h.logger.Error("stock upload aborted", zap.String("message", result.Message))
			response.Error(w, http.StatusInternalServerError, result.Message)
			return
		}
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}
