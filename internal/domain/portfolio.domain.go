package domain

import (
	"time"

	"github.com/google/uuid"
)

// Portfolio holds the seven optional asset-class balances for one user.
// At most one row exists per user.
type Portfolio struct {
	PortfolioID   uuid.UUID  `json:"portfolio_id"`
	UserID        uuid.UUID  `json:"user_id"`
	EquityAmt     *float64   `json:"equity_amt,omitempty"`
	CashAmt       *float64   `json:"cash_amt,omitempty"`
	FDAmt         *float64   `json:"fd_amt,omitempty"`
	DebtAmt       *float64   `json:"debt_amt,omitempty"`
	RealEstateAmt *float64   `json:"real_estate_amt,omitempty"`
	BondsAmt      *float64   `json:"bonds_amt,omitempty"`
	CryptoAmt     *float64   `json:"crypto_amt,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// PortfolioUpdate is a partial field merge: nil fields are left untouched.
type PortfolioUpdate struct {
	EquityAmt     *float64 `json:"equity_amt,omitempty"`
	CashAmt       *float64 `json:"cash_amt,omitempty"`
	FDAmt         *float64 `json:"fd_amt,omitempty"`
	DebtAmt       *float64 `json:"debt_amt,omitempty"`
	RealEstateAmt *float64 `json:"real_estate_amt,omitempty"`
	BondsAmt      *float64 `json:"bonds_amt,omitempty"`
	CryptoAmt     *float64 `json:"crypto_amt,omitempty"`
}

// Apply merges the non-nil fields of u into p.
func (u *PortfolioUpdate) Apply(p *Portfolio) {
	if u.EquityAmt != nil {
		p.EquityAmt = u.EquityAmt
	}
	if u.CashAmt != nil {
		p.CashAmt = u.CashAmt
	}
	if u.FDAmt != nil {
		p.FDAmt = u.FDAmt
	}
	if u.DebtAmt != nil {
		p.DebtAmt = u.DebtAmt
	}
	if u.RealEstateAmt != nil {
		p.RealEstateAmt = u.RealEstateAmt
	}
	if u.BondsAmt != nil {
		p.BondsAmt = u.BondsAmt
	}
	if u.CryptoAmt != nil {
		p.CryptoAmt = u.CryptoAmt
	}
}
