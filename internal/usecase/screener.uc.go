package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/internal/service/marketdata"
	"github.com/Chiranjit680/FinAdvisor/internal/service/ticker"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// StockBatch is one transaction's worth of screener writes. Commit failure
// is fatal for the run; everything else is recovered per ticker.
type StockBatch interface {
	GetByTicker(ctx context.Context, tickerSym string) (*domain.StockData, error)
	Insert(ctx context.Context, s *domain.StockData) error
	Update(ctx context.Context, s *domain.StockData) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// StockStore hands out screener batches.
type StockStore interface {
	BeginBatch(ctx context.Context) (StockBatch, error)
}

const maxSampleErrors = 10

// Screener reconciles the fixed ticker universe against the market-data
// collaborator into the stock_data table, in batches. A single run may be in
// flight at a time; overlapping invocations are refused.
type Screener struct {
	store     StockStore
	quoter    marketdata.Quoter
	universe  []string
	batchSize int
	logger    *zap.Logger

	running atomic.Bool
	now     func() time.Time
}

func NewScreener(store StockStore, quoter marketdata.Quoter, batchSize int, logger *zap.Logger) *Screener {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Screener{
		store:     store,
		quoter:    quoter,
		universe:  ticker.Universe(),
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}
}

// UploadStockData runs one full reconciliation pass. Per-ticker failures are
// counted and skipped; a batch commit failure rolls that batch back and
// aborts the remaining run. Thin quotes (fewer than 5 populated fields) are
// skipped without counting as success or error.
func (s *Screener) UploadStockData(ctx context.Context) (*domain.UploadResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, xerrors.ErrJobInProgress
	}
	defer s.running.Store(false)

	s.logger.Info("starting stock data upload", zap.Int("universe", len(s.universe)))

	if len(s.universe) == 0 {
		return &domain.UploadResult{
			Success:     false,
			Message:     xerrors.ErrEmptyUniverse.Error(),
			SuccessRate: "0%",
		}, nil
	}

	total := len(s.universe)
	processed := 0
	errorCount := 0
	var sampleErrors []string

	for start := 0; start < total; start += s.batchSize {
		end := start + s.batchSize
		if end > total {
			end = total
		}
		batchNo := start/s.batchSize + 1

		batch, err := s.store.BeginBatch(ctx)
		if err != nil {
			return s.failedResult(total, processed, errorCount+1, sampleErrors,
				fmt.Sprintf("failed to open batch %d: %v", batchNo, err)), err
		}

		for _, symbol := range s.universe[start:end] {
			ok, perr := s.processTicker(ctx, batch, symbol)
			if perr != nil {
				errorCount++
				msg := fmt.Sprintf("error processing %s: %v", symbol, perr)
				s.logger.Error("ticker failed", zap.String("symbol", symbol), zap.Error(perr))
				if len(sampleErrors) < maxSampleErrors {
					sampleErrors = append(sampleErrors, msg)
				}
				continue
			}
			if ok {
				processed++
			}
		}

		if err := batch.Commit(ctx); err != nil {
			_ = batch.Rollback(ctx)
			s.logger.Error("batch commit failed", zap.Int("batch", batchNo), zap.Error(err))
			return s.failedResult(total, processed, errorCount+1, sampleErrors,
				fmt.Sprintf("batch %d commit failed: %v", batchNo, err)), err
		}
		s.logger.Info("batch committed",
			zap.Int("batch", batchNo),
			zap.Int("processed", processed),
			zap.Int("errors", errorCount))
	}

	result := &domain.UploadResult{
		Success:      true,
		Message:      "Stock data upload completed successfully",
		TotalStocks:  total,
		Processed:    processed,
		Errors:       errorCount,
		SuccessRate:  successRate(processed, total),
		SampleErrors: sampleErrors,
	}
	s.logger.Info("stock data upload finished",
		zap.Int("processed", processed), zap.Int("errors", errorCount))
	return result, nil
}

// processTicker fetches and upserts one symbol. (false, nil) means the quote
// was too thin and the ticker was skipped.
func (s *Screener) processTicker(ctx context.Context, batch StockBatch, symbol string) (bool, error) {
	info, err := s.quoter.Quote(ctx, yahooSymbol(symbol))
	if err != nil {
		return false, err
	}
	if info.Populated() < 5 {
		s.logger.Warn("no valid data for symbol", zap.String("symbol", symbol))
		return false, nil
	}

	stock := extractStock(symbol, info, s.now())

	existing, err := batch.GetByTicker(ctx, stock.StockTicker)
	switch {
	case err == nil:
		stock.StockID = existing.StockID
		if err := batch.Update(ctx, stock); err != nil {
			return false, err
		}
	case errors.Is(err, xerrors.ErrTickerNotFound):
		stock.StockID = uuid.New()
		if err := batch.Insert(ctx, stock); err != nil {
			return false, err
		}
	default:
		return false, err
	}
	return true, nil
}

// extractStock maps a quote bundle onto a stock row, preferring the
// source-reported symbol and live price, with the documented fallbacks.
func extractStock(requested string, info *marketdata.Info, now time.Time) *domain.StockData {
	name := info.ShortName
	if name == "" {
		name = info.LongName
	}
	if name == "" {
		name = requested
	}
	if name == "" {
		name = "Unknown"
	}

	tickerSym := info.Symbol
	if tickerSym == "" {
		tickerSym = requested
	}

	sector := info.Sector
	if sector == "" {
		sector = "Unknown"
	}

	var price float64
	if info.CurrentPrice != nil {
		price = *info.CurrentPrice
	} else if info.PreviousClose != nil {
		price = *info.PreviousClose
	}

	eps := info.ForwardEPS
	if eps == nil {
		eps = info.TrailingEPS
	}

	return &domain.StockData{
		StockName:     name,
		StockTicker:   tickerSym,
		Sector:        &sector,
		CurrentPrice:  price,
		PERatio:       info.TrailingPE,
		PBRatio:       info.PriceToBook,
		DividendYield: info.DividendYield,
		EPS:           eps,
		BookValue:     info.BookValue,
		MarketCap:     info.MarketCap,
		Volume:        info.Volume,
		LastUpdated:   now.UTC(),
	}
}

func (s *Screener) failedResult(total, processed, errs int, samples []string, msg string) *domain.UploadResult {
	return &domain.UploadResult{
		Success:      false,
		Message:      msg,
		TotalStocks:  total,
		Processed:    processed,
		Errors:       errs,
		SuccessRate:  successRate(processed, total),
		SampleErrors: samples,
	}
}

func successRate(processed, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.2f%%", float64(processed)/float64(total)*100)
}

// yahooSymbol appends the NSE suffix the quote source expects.
func yahooSymbol(symbol string) string {
	if strings.HasSuffix(symbol, ".NS") {
		return symbol
	}
	return symbol + ".NS"
}
