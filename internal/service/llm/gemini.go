package llm

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// Completer is the opaque text-completion collaborator: one prompt in, one
// completion out. No retry or backoff here; callers decide.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiCompleter calls the Gemini API through the genai SDK.
type GeminiCompleter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

const defaultModel = "gemini-2.0-flash"

func NewGeminiCompleter(ctx context.Context, apiKey string, timeout time.Duration, logger *zap.Logger) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiCompleter{
		client:  client,
		model:   defaultModel,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.Error("gemini call failed", zap.Error(err))
		return "", xerrors.ErrLLMUnavailable
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", xerrors.ErrEmptyCompletion
	}
	return text, nil
}
