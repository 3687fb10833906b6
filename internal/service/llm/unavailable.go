package llm

import (
	"context"

	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// Unavailable stands in when no completion credential is configured. Every
// call reports the collaborator as down, which callers already handle.
type Unavailable struct{}

func (Unavailable) Complete(context.Context, string) (string, error) {
	return "", xerrors.ErrLLMUnavailable
}
