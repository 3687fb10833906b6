package ticker

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/service/llm"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// SentinelTicker is what the fallback path returns when nothing in the
// utterance matches; the fallback must always return a ticker.
const SentinelTicker = "RELIANCE"

// Resolver maps free-text company mentions to canonical tickers. The primary
// path asks the completion collaborator to pick a corrected name from the
// closed universe; the fallback is a deterministic substring scan used when
// the collaborator is unavailable or errors.
type Resolver struct {
	completer llm.Completer
	logger    *zap.Logger
}

func NewResolver(completer llm.Completer, logger *zap.Logger) *Resolver {
	return &Resolver{completer: completer, logger: logger}
}

// Resolve returns the ticker for the company mentioned in prompt.
// ErrCompanyNotFound means the collaborator answered but named nothing in
// the universe; collaborator failure switches to the fallback instead.
func (r *Resolver) Resolve(ctx context.Context, prompt string) (string, error) {
	if r.completer == nil {
		return r.ResolveFallback(prompt), nil
	}

	extracted, err := r.completer.Complete(ctx, extractionPrompt(prompt))
	if err != nil {
		r.logger.Warn("completion collaborator unavailable, using fallback", zap.Error(err))
		return r.ResolveFallback(prompt), nil
	}

	extracted = strings.TrimSpace(extracted)
	if t, ok := TickerByCompany(extracted); ok {
		return t, nil
	}

	// Case-insensitive substring match in both directions.
	lowered := strings.ToLower(extracted)
	for name, t := range companyTickerMap {
		ln := strings.ToLower(name)
		if strings.Contains(ln, lowered) || strings.Contains(lowered, ln) {
			return t, nil
		}
	}

	return "", xerrors.ErrCompanyNotFound
}

// ResolveFallback is the pure, total path: lowercase scan of the utterance
// for any known company name or ticker symbol. Names are scanned in a fixed
// order so the result is deterministic; no match returns the sentinel.
func (r *Resolver) ResolveFallback(prompt string) string {
	lowered := strings.ToLower(prompt)

	names := CompanyNames()
	sort.Strings(names)
	for _, name := range names {
		if strings.Contains(lowered, strings.ToLower(name)) {
			return companyTickerMap[name]
		}
	}
	for _, t := range universe {
		if strings.Contains(lowered, strings.ToLower(t)) {
			return t
		}
	}
	return SentinelTicker
}

func extractionPrompt(prompt string) string {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n")
	b.WriteString("Extract the company name from the above prompt.\n")
	b.WriteString("Correct any spelling or formatting mistakes.\n")
	b.WriteString("Only return the corrected, full company name.\n")
	b.WriteString("Example:\n")
	b.WriteString("User query: \"show price of tata consultincy servises\"\n")
	b.WriteString("Output: Tata Consultancy Services\n")
	b.WriteString("Choose from the following company names:\n")
	b.WriteString(strings.Join(CompanyNames(), ", "))
	return b.String()
}
