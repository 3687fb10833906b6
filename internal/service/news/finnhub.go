package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Article is one headline from the news collaborator.
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
}

// Fetcher is the opaque news collaborator: ticker plus lookback window in,
// list of articles out.
type Fetcher interface {
	CompanyNews(ctx context.Context, ticker string, lookback time.Duration) ([]Article, error)
}

// FinnhubClient fetches company news from the Finnhub REST API.
type FinnhubClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

const defaultBaseURL = "https://finnhub.io/api/v1"

func NewFinnhubClient(apiKey string, timeout time.Duration, logger *zap.Logger) *FinnhubClient {
	return &FinnhubClient{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// NewFinnhubClientWithBaseURL is used by tests against a local server.
func NewFinnhubClientWithBaseURL(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *FinnhubClient {
	c := NewFinnhubClient(apiKey, timeout, logger)
	c.baseURL = baseURL
	return c
}

type finnhubArticle struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Datetime int64  `json:"datetime"`
}

func (c *FinnhubClient) CompanyNews(ctx context.Context, ticker string, lookback time.Duration) ([]Article, error) {
	to := time.Now()
	from := to.Add(-lookback)

	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))
	q.Set("token", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/company-news?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("news fetch failed", zap.String("ticker", ticker), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news fetch for %s: status %d", ticker, resp.StatusCode)
	}

	var raw []finnhubArticle
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(raw))
	for _, a := range raw {
		articles = append(articles, Article{
			Title:       a.Headline,
			Description: a.Summary,
			Link:        a.URL,
			PublishedAt: time.Unix(a.Datetime, 0).UTC(),
		})
	}
	return articles, nil
}
