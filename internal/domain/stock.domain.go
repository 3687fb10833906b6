package domain

import (
	"time"

	"github.com/google/uuid"
)

// StockData is one row per ticker, upserted by the screener job and never
// user-mutated directly. stock_ticker is unique.
type StockData struct {
	StockID       uuid.UUID `json:"stock_id"`
	StockName     string    `json:"stock_name"`
	StockTicker   string    `json:"stock_ticker"`
	Sector        *string   `json:"sector,omitempty"`
	CurrentPrice  float64   `json:"current_price"`
	PERatio       *float64  `json:"pe_ratio,omitempty"`
	PBRatio       *float64  `json:"pb_ratio,omitempty"`
	DividendYield *float64  `json:"dividend_yield,omitempty"`
	EPS           *float64  `json:"eps,omitempty"`
	BookValue     *float64  `json:"book_value,omitempty"`
	MarketCap     *float64  `json:"market_cap,omitempty"`
	Volume        *int64    `json:"volume,omitempty"`
	LastUpdated   time.Time `json:"last_updated"`
}

// UploadResult is the structured outcome of one screener run.
type UploadResult struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	TotalStocks  int      `json:"total_stocks"`
	Processed    int      `json:"processed"`
	Errors       int      `json:"errors"`
	SuccessRate  string   `json:"success_rate"`
	SampleErrors []string `json:"sample_errors,omitempty"`
}
