package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// Info is the structured quote bundle for one ticker. Pointer fields are nil
// when the source did not report them; an Info with too few populated fields
// is treated as no data at all by callers.
type Info struct {
	Symbol        string
	ShortName     string
	LongName      string
	Sector        string
	CurrentPrice  *float64
	PreviousClose *float64
	TrailingPE    *float64
	PriceToBook   *float64
	DividendYield *float64
	ForwardEPS    *float64
	TrailingEPS   *float64
	BookValue     *float64
	MarketCap     *float64
	Volume        *int64
}

// Populated counts how many fields the source actually reported.
func (i *Info) Populated() int {
	if i == nil {
		return 0
	}
	n := 0
	for _, s := range []string{i.Symbol, i.ShortName, i.LongName, i.Sector} {
		if s != "" {
			n++
		}
	}
	for _, f := range []*float64{
		i.CurrentPrice, i.PreviousClose, i.TrailingPE, i.PriceToBook,
		i.DividendYield, i.ForwardEPS, i.TrailingEPS, i.BookValue, i.MarketCap,
	} {
		if f != nil {
			n++
		}
	}
	if i.Volume != nil {
		n++
	}
	return n
}

// Quoter is the opaque market-data collaborator.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (*Info, error)
}

// YahooClient fetches quotes from a Yahoo-style quote endpoint.
type YahooClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

const defaultBaseURL = "https://query1.finance.yahoo.com"

func NewYahooClient(timeout time.Duration, logger *zap.Logger) *YahooClient {
	return &YahooClient{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// NewYahooClientWithBaseURL points the client at a different host; used by
// tests against a local httptest server.
func NewYahooClientWithBaseURL(baseURL string, timeout time.Duration, logger *zap.Logger) *YahooClient {
	c := NewYahooClient(timeout, logger)
	c.baseURL = baseURL
	return c
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                      string   `json:"symbol"`
	ShortName                   string   `json:"shortName"`
	LongName                    string   `json:"longName"`
	Sector                      string   `json:"sector"`
	RegularMarketPrice          *float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose  *float64 `json:"regularMarketPreviousClose"`
	TrailingPE                  *float64 `json:"trailingPE"`
	PriceToBook                 *float64 `json:"priceToBook"`
	TrailingAnnualDividendYield *float64 `json:"trailingAnnualDividendYield"`
	EPSForward                  *float64 `json:"epsForward"`
	EPSTrailingTwelveMonths     *float64 `json:"epsTrailingTwelveMonths"`
	BookValue                   *float64 `json:"bookValue"`
	MarketCap                   *float64 `json:"marketCap"`
	RegularMarketVolume         *int64   `json:"regularMarketVolume"`
}

func (c *YahooClient) Quote(ctx context.Context, symbol string) (*Info, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "finadvisor/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("quote fetch failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote fetch for %s: %w (status %d)", symbol, xerrors.ErrQuoteUnavailable, resp.StatusCode)
	}

	var payload quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if len(payload.QuoteResponse.Result) == 0 {
		// Empty result is not an error: callers skip thin quotes.
		return nil, nil
	}

	r := payload.QuoteResponse.Result[0]
	return &Info{
		Symbol:        r.Symbol,
		ShortName:     r.ShortName,
		LongName:      r.LongName,
		Sector:        r.Sector,
		CurrentPrice:  r.RegularMarketPrice,
		PreviousClose: r.RegularMarketPreviousClose,
		TrailingPE:    r.TrailingPE,
		PriceToBook:   r.PriceToBook,
		DividendYield: r.TrailingAnnualDividendYield,
		ForwardEPS:    r.EPSForward,
		TrailingEPS:   r.EPSTrailingTwelveMonths,
		BookValue:     r.BookValue,
		MarketCap:     r.MarketCap,
		Volume:        r.RegularMarketVolume,
	}, nil
}
