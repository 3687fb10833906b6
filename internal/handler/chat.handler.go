package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/middleware"
	"github.com/Chiranjit680/FinAdvisor/internal/service/llm"
	"github.com/Chiranjit680/FinAdvisor/internal/service/ticker"
	"github.com/Chiranjit680/FinAdvisor/internal/usecase"
	"github.com/Chiranjit680/FinAdvisor/pkg/response"
)

type ChatHandler struct {
	advice   *usecase.AdviceUsecase
	stocks   *usecase.StockUsecase
	resolver *ticker.Resolver
	complete llm.Completer
	logger   *zap.Logger
}

func NewChatHandler(advice *usecase.AdviceUsecase, stocks *usecase.StockUsecase, resolver *ticker.Resolver, complete llm.Completer, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		advice:   advice,
		stocks:   stocks,
		resolver: resolver,
		complete: complete,
		logger:   logger,
	}
}

type adviceRequest struct {
	Message string `json:"message"`
}

type adviceResponse struct {
	Response string `json:"response"`
}

// SecureAdvice handles POST /chat/secure-advice.
func (h *ChatHandler) SecureAdvice(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in adviceRequest
	if err := decodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	chat, err := h.advice.Advise(r.Context(), userID, in.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.logger.Info("advice served",
		zap.String("username", middleware.UsernameFromContext(r.Context())),
		zap.Int64("chat_id", chat.ID))
	response.JSON(w, http.StatusOK, adviceResponse{Response: chat.AIMessage})
}

// History handles GET /chat/history?limit=N, most recent first.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	chats, err := h.advice.History(r.Context(), userID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, chats)
}

// CompanyQuery handles POST /chat/company-query: resolve the mentioned
// company to a ticker, pull its stored data and answer the question with
// that data as context.
func (h *ChatHandler) CompanyQuery(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var in adviceRequest
	if err := decodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tickerSym, err := h.resolver.Resolve(r.Context(), in.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	stock, err := h.stocks.FetchStockData(r.Context(), tickerSym)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	prompt := fmt.Sprintf(
		"This is the data of the stock the user is querying for: %+v. Use this to answer the user's query. Query: %s",
		stock, in.Message)
	answer, err := h.complete.Complete(r.Context(), prompt)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, adviceResponse{Response: answer})
}
