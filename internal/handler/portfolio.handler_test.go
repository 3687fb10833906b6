package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/internal/usecase"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

type fakePortfolioRepo struct {
	byUser map[uuid.UUID]*domain.Portfolio
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{byUser: map[uuid.UUID]*domain.Portfolio{}}
}

func (f *fakePortfolioRepo) Create(_ context.Context, p *domain.Portfolio) error {
	if _, ok := f.byUser[p.UserID]; ok {
		return xerrors.ErrPortfolioExists
	}
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

func (f *fakePortfolioRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, xerrors.ErrPortfolioNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePortfolioRepo) Update(_ context.Context, p *domain.Portfolio) error {
	if _, ok := f.byUser[p.UserID]; !ok {
		return xerrors.ErrPortfolioNotFound
	}
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

func newPortfolioHandlerHarness() *PortfolioHandler {
	uc := usecase.NewPortfolioUsecase(newFakePortfolioRepo(), zap.NewNop())
	return NewPortfolioHandler(uc, zap.NewNop())
}

func TestAddPortfolioOncePerUser(t *testing.T) {
	h := newPortfolioHandlerHarness()
	userID := uuid.New()
	body := `{"equity_amt": 5000, "cash_amt": 2000}`

	req := asUser(httptest.NewRequest(http.MethodPost, "/portfolio/secure/add_portfolio", strings.NewReader(body)), userID)
	rec := httptest.NewRecorder()
	h.Add(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", rec.Code, rec.Body)
	}

	req = asUser(httptest.NewRequest(http.MethodPost, "/portfolio/secure/add_portfolio", strings.NewReader(body)), userID)
	rec = httptest.NewRecorder()
	h.Add(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second add: got %d, want 409", rec.Code)
	}
}

func TestMyPortfolioNotFound(t *testing.T) {
	h := newPortfolioHandlerHarness()
	req := asUser(httptest.NewRequest(http.MethodGet, "/portfolio/secure/my_portfolio", nil), uuid.New())
	rec := httptest.NewRecorder()
	h.My(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rec.Code)
	}
}

func TestUpdatePortfolioMergesPartially(t *testing.T) {
	h := newPortfolioHandlerHarness()
	userID := uuid.New()

	req := asUser(httptest.NewRequest(http.MethodPost, "/portfolio/secure/add_portfolio",
		strings.NewReader(`{"equity_amt": 5000, "cash_amt": 2000, "bonds_amt": 800}`)), userID)
	rec := httptest.NewRecorder()
	h.Add(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("setup: %d %s", rec.Code, rec.Body)
	}

	req = asUser(httptest.NewRequest(http.MethodPut, "/portfolio/secure/update_portfolio",
		strings.NewReader(`{"equity_amt": 1000}`)), userID)
	rec = httptest.NewRecorder()
	h.Update(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d: %s", rec.Code, rec.Body)
	}

	var env struct {
		Data domain.Portfolio `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if env.Data.EquityAmt == nil || *env.Data.EquityAmt != 1000 {
		t.Fatalf("equity = %v, want 1000", env.Data.EquityAmt)
	}
	if env.Data.CashAmt == nil || *env.Data.CashAmt != 2000 {
		t.Fatalf("cash = %v, want untouched 2000", env.Data.CashAmt)
	}
	if env.Data.BondsAmt == nil || *env.Data.BondsAmt != 800 {
		t.Fatalf("bonds = %v, want untouched 800", env.Data.BondsAmt)
	}
}

func TestPortfolioRequiresIdentity(t *testing.T) {
	h := newPortfolioHandlerHarness()
	rec := httptest.NewRecorder()
	h.My(rec, httptest.NewRequest(http.MethodGet, "/portfolio/secure/my_portfolio", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401 without identity", rec.Code)
	}
}
