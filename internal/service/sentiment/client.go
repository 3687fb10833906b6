package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Result is the label plus confidence returned by the sentiment collaborator.
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyzer is the opaque sentiment collaborator.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Result, error)
}

// HFClient calls a Hugging Face inference endpoint hosting a binary
// sentiment classifier.
type HFClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
	logger   *zap.Logger
}

const defaultEndpoint = "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"

func NewHFClient(apiKey string, timeout time.Duration, logger *zap.Logger) *HFClient {
	return &HFClient{
		endpoint: defaultEndpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// NewHFClientWithEndpoint is used by tests against a local server.
func NewHFClientWithEndpoint(endpoint, apiKey string, timeout time.Duration, logger *zap.Logger) *HFClient {
	c := NewHFClient(apiKey, timeout, logger)
	c.endpoint = endpoint
	return c
}

func (c *HFClient) Analyze(ctx context.Context, text string) (Result, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("sentiment call failed", zap.Error(err))
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("sentiment inference: status %d", resp.StatusCode)
	}

	// The endpoint returns one list of label/score candidates per input.
	var candidates [][]Result
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 || len(candidates[0]) == 0 {
		return Result{}, fmt.Errorf("sentiment inference: empty response")
	}

	best := candidates[0][0]
	for _, cand := range candidates[0][1:] {
		if cand.Score > best.Score {
			best = cand
		}
	}
	return best, nil
}
