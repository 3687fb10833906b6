package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/internal/usecase"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

type StockRepository struct {
	db *pgxpool.Pool
}

func NewStockRepository(db *pgxpool.Pool) *StockRepository {
	return &StockRepository{db: db}
}

const stockColumns = `stock_id, stock_name, stock_ticker, sector, current_price, pe_ratio,
	pb_ratio, dividend_yield, eps, book_value, market_cap, volume, last_updated`

func (r *StockRepository) GetByTicker(ctx context.Context, tickerSym string) (*domain.StockData, error) {
	return scanStock(r.db.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock_data WHERE stock_ticker = $1`, tickerSym))
}

type stockRow interface {
	Scan(dest ...any) error
}

func scanStock(row stockRow) (*domain.StockData, error) {
	var s domain.StockData
	err := row.Scan(&s.StockID, &s.StockName, &s.StockTicker, &s.Sector, &s.CurrentPrice,
		&s.PERatio, &s.PBRatio, &s.DividendYield, &s.EPS, &s.BookValue,
		&s.MarketCap, &s.Volume, &s.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrTickerNotFound
		}
		return nil, err
	}
	return &s, nil
}

// BeginBatch opens one transaction for a screener batch. All lookups and
// writes inside the batch see each other; Commit or Rollback ends it.
func (r *StockRepository) BeginBatch(ctx context.Context) (usecase.StockBatch, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &stockBatch{tx: tx}, nil
}

type stockBatch struct {
	tx pgx.Tx
}

func (b *stockBatch) GetByTicker(ctx context.Context, tickerSym string) (*domain.StockData, error) {
	return scanStock(b.tx.QueryRow(ctx,
		`SELECT `+stockColumns+` FROM stock_data WHERE stock_ticker = $1`, tickerSym))
}

func (b *stockBatch) Insert(ctx context.Context, s *domain.StockData) error {
	_, err := b.tx.Exec(ctx, `
		INSERT INTO stock_data (stock_id, stock_name, stock_ticker, sector, current_price,
			pe_ratio, pb_ratio, dividend_yield, eps, book_value, market_cap, volume, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.StockID, s.StockName, s.StockTicker, s.Sector, s.CurrentPrice,
		s.PERatio, s.PBRatio, s.DividendYield, s.EPS, s.BookValue,
		s.MarketCap, s.Volume, s.LastUpdated)
	return err
}

func (b *stockBatch) Update(ctx context.Context, s *domain.StockData) error {
	_, err := b.tx.Exec(ctx, `
		UPDATE stock_data SET
			stock_name     = $2,
			sector         = $3,
			current_price  = $4,
			pe_ratio       = $5,
			pb_ratio       = $6,
			dividend_yield = $7,
			eps            = $8,
			book_value     = $9,
			market_cap     = $10,
			volume         = $11,
			last_updated   = $12
		WHERE stock_ticker = $1`,
		s.StockTicker, s.StockName, s.Sector, s.CurrentPrice,
		s.PERatio, s.PBRatio, s.DividendYield, s.EPS, s.BookValue,
		s.MarketCap, s.Volume, s.LastUpdated)
	return err
}

func (b *stockBatch) Commit(ctx context.Context) error {
	return b.tx.Commit(ctx)
}

func (b *stockBatch) Rollback(ctx context.Context) error {
	return b.tx.Rollback(ctx)
}
