package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/internal/service/marketdata"
	"github.com/Chiranjit680/FinAdvisor/internal/service/news"
	"github.com/Chiranjit680/FinAdvisor/internal/service/sentiment"
	"github.com/Chiranjit680/FinAdvisor/pkg/cache"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// StockReader looks up persisted stock rows.
type StockReader interface {
	GetByTicker(ctx context.Context, tickerSym string) (*domain.StockData, error)
}

const (
	newsLookback      = 30 * 24 * time.Hour
	quoteCacheTTL     = 5 * time.Minute
	maxSentimentHeads = 10
)

// HeadlineSentiment pairs one article title with its sentiment label.
type HeadlineSentiment struct {
	Title string  `json:"title"`
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type StockUsecase struct {
	stocks   StockReader
	quoter   marketdata.Quoter
	news     news.Fetcher
	analyzer sentiment.Analyzer
	cache    *cache.Cache // nil disables caching
	logger   *zap.Logger
}

func NewStockUsecase(stocks StockReader, quoter marketdata.Quoter, fetcher news.Fetcher, analyzer sentiment.Analyzer, cache *cache.Cache, logger *zap.Logger) *StockUsecase {
	return &StockUsecase{
		stocks:   stocks,
		quoter:   quoter,
		news:     fetcher,
		analyzer: analyzer,
		cache:    cache,
		logger:   logger,
	}
}

// FetchStockData serves the persisted row for a ticker, falling back to a
// live quote when the screener has not stored it yet. The live fallback is
// cached briefly and not persisted.
func (s *StockUsecase) FetchStockData(ctx context.Context, tickerSym string) (*domain.StockData, error) {
	tickerSym = strings.ToUpper(strings.TrimSpace(tickerSym))
	if tickerSym == "" || len(tickerSym) > 10 {
		return nil, xerrors.ErrInvalidInput
	}

	stock, err := s.stocks.GetByTicker(ctx, tickerSym)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, xerrors.ErrTickerNotFound) {
		return nil, err
	}

	if s.cache != nil {
		if cached, cerr := s.cache.Get(ctx, "live_quote", tickerSym); cerr == nil && cached != "" {
			var live domain.StockData
			if jerr := json.Unmarshal([]byte(cached), &live); jerr == nil {
				return &live, nil
			}
		}
	}

	info, err := s.quoter.Quote(ctx, yahooSymbol(tickerSym))
	if err != nil {
		s.logger.Warn("live quote failed", zap.String("ticker", tickerSym), zap.Error(err))
		return nil, xerrors.ErrQuoteUnavailable
	}
	if info.Populated() < 5 {
		return nil, xerrors.ErrTickerNotFound
	}

	live := extractStock(tickerSym, info, time.Now())
	if s.cache != nil {
		if data, jerr := json.Marshal(live); jerr == nil {
			_ = s.cache.Set(ctx, "live_quote", tickerSym, data, quoteCacheTTL)
		}
	}
	return live, nil
}

// DisplayNews returns recent articles for a ticker with a 30-day lookback.
func (s *StockUsecase) DisplayNews(ctx context.Context, tickerSym string) ([]news.Article, error) {
	tickerSym = strings.ToUpper(strings.TrimSpace(tickerSym))
	if tickerSym == "" || len(tickerSym) > 10 {
		return nil, xerrors.ErrInvalidInput
	}
	return s.news.CompanyNews(ctx, tickerSym, newsLookback)
}

// NewsSentiment labels the most recent headlines for a ticker. Per-headline
// analyzer failures are skipped, not fatal.
func (s *StockUsecase) NewsSentiment(ctx context.Context, tickerSym string) ([]HeadlineSentiment, error) {
	articles, err := s.DisplayNews(ctx, tickerSym)
	if err != nil {
		return nil, err
	}
	if len(articles) > maxSentimentHeads {
		articles = articles[:maxSentimentHeads]
	}

	out := make([]HeadlineSentiment, 0, len(articles))
	for _, a := range articles {
		res, err := s.analyzer.Analyze(ctx, a.Title)
		if err != nil {
			s.logger.Warn("sentiment skipped", zap.String("title", a.Title), zap.Error(err))
			continue
		}
		out = append(out, HeadlineSentiment{Title: a.Title, Label: res.Label, Score: res.Score})
	}
	return out, nil
}
