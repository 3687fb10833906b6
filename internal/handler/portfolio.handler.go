package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/internal/usecase"
	"github.com/Chiranjit680/FinAdvisor/pkg/response"
)

type PortfolioHandler struct {
	uc     *usecase.PortfolioUsecase
	logger *zap.Logger
}

func NewPortfolioHandler(uc *usecase.PortfolioUsecase, logger *zap.Logger) *PortfolioHandler {
	return &PortfolioHandler{uc: uc, logger: logger}
}

// Add handles POST /portfolio/secure/add_portfolio.
func (h *PortfolioHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in domain.Portfolio
	if err := decodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.uc.Create(r.Context(), userID, &in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.logger.Info("portfolio created", zap.String("user_id", userID.String()))
	response.JSON(w, http.StatusCreated, created)
}

// My handles GET /portfolio/secure/my_portfolio.
func (h *PortfolioHandler) My(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	p, err := h.uc.Get(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}

// Update handles PUT /portfolio/secure/update_portfolio with a partial
// field merge.
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var upd domain.PortfolioUpdate
	if err := decodeJSON(r, &upd); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.uc.Update(r.Context(), userID, &upd)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, p)
}
