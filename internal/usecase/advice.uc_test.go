package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

type memChatStore struct {
	chats     []domain.Chat
	insertErr error
}

func (m *memChatStore) Insert(_ context.Context, c *domain.Chat) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	c.ID = int64(len(m.chats) + 1)
	m.chats = append(m.chats, *c)
	return nil
}

func (m *memChatStore) ListRecent(_ context.Context, _ uuid.UUID, limit int) ([]domain.Chat, error) {
	// Most recent first, like the real store.
	var out []domain.Chat
	for i := len(m.chats) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.chats[i])
	}
	return out, nil
}

type stubProfileReader struct {
	profile *domain.Profile
	err     error
}

func (s *stubProfileReader) GetProfileByID(_ context.Context, _ uuid.UUID) (*domain.Profile, error) {
	return s.profile, s.err
}

type stubPortfolioReader struct {
	portfolio *domain.Portfolio
	err       error
}

func (s *stubPortfolioReader) GetByUserID(_ context.Context, _ uuid.UUID) (*domain.Portfolio, error) {
	return s.portfolio, s.err
}

type recordingCompleter struct {
	answer  string
	err     error
	prompts []string
}

func (r *recordingCompleter) Complete(_ context.Context, prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	return r.answer, r.err
}

func newAdviceHarness(chats *memChatStore, users ProfileReader, portfolios PortfolioReader, c *recordingCompleter) *AdviceUsecase {
	return NewAdviceUsecase(chats, users, portfolios, c, zap.NewNop())
}

func TestAdviseRejectsBadPromptsBeforeCollaborator(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		wantErr error
	}{
		{"empty", "", xerrors.ErrEmptyPrompt},
		{"whitespace only", "   \n\t ", xerrors.ErrEmptyPrompt},
		{"over length", strings.Repeat("a", 1001), xerrors.ErrPromptTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &recordingCompleter{answer: "should not be called"}
			a := newAdviceHarness(&memChatStore{}, &stubProfileReader{err: xerrors.ErrUserNotFound},
				&stubPortfolioReader{err: xerrors.ErrPortfolioNotFound}, completer)

			_, err := a.Advise(context.Background(), uuid.New(), tt.prompt)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if len(completer.prompts) != 0 {
				t.Fatal("collaborator called for a rejected prompt")
			}
		})
	}
}

func TestAdviseExactLimitAccepted(t *testing.T) {
	completer := &recordingCompleter{answer: "diversify"}
	chats := &memChatStore{}
	a := newAdviceHarness(chats, &stubProfileReader{err: xerrors.ErrUserNotFound},
		&stubPortfolioReader{err: xerrors.ErrPortfolioNotFound}, completer)

	if _, err := a.Advise(context.Background(), uuid.New(), strings.Repeat("a", 1000)); err != nil {
		t.Fatalf("1000-char prompt must be accepted: %v", err)
	}
}

func TestAdvisePersistsExchange(t *testing.T) {
	completer := &recordingCompleter{answer: "put more into bonds"}
	chats := &memChatStore{}
	userID := uuid.New()
	a := newAdviceHarness(chats, &stubProfileReader{err: xerrors.ErrUserNotFound},
		&stubPortfolioReader{err: xerrors.ErrPortfolioNotFound}, completer)

	chat, err := a.Advise(context.Background(), userID, "how do I rebalance?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chat.AIMessage != "put more into bonds" {
		t.Fatalf("ai message = %q", chat.AIMessage)
	}
	if len(chats.chats) != 1 {
		t.Fatalf("persisted %d exchanges, want 1", len(chats.chats))
	}
	if chats.chats[0].UserID != userID || chats.chats[0].HumanMessage != "how do I rebalance?" {
		t.Fatalf("persisted exchange = %+v", chats.chats[0])
	}
}

func TestAdviseMissingContextUsesPlaceholders(t *testing.T) {
	completer := &recordingCompleter{answer: "ok"}
	a := newAdviceHarness(&memChatStore{}, &stubProfileReader{err: xerrors.ErrUserNotFound},
		&stubPortfolioReader{err: xerrors.ErrPortfolioNotFound}, completer)

	if _, err := a.Advise(context.Background(), uuid.New(), "advise me"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := completer.prompts[0]
	for _, want := range []string{
		"Unknown User", "Unknown Age",
		"Unknown Equity Amount", "Unknown Cash Amount", "Unknown Crypto Amount",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing placeholder %q:\n%s", want, prompt)
		}
	}
}

func TestAdviseIncludesProfileAndPortfolio(t *testing.T) {
	age := 34
	equity := 120000.0
	completer := &recordingCompleter{answer: "ok"}
	a := newAdviceHarness(&memChatStore{},
		&stubProfileReader{profile: &domain.Profile{Username: "asha", Age: &age}},
		&stubPortfolioReader{portfolio: &domain.Portfolio{EquityAmt: &equity}},
		completer)

	if _, err := a.Advise(context.Background(), uuid.New(), "advise me"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := completer.prompts[0]
	for _, want := range []string{"asha", "34", "120000.00", "Unknown Cash Amount"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestAdviseReplaysHistoryOldestFirst(t *testing.T) {
	completer := &recordingCompleter{answer: "ok"}
	chats := &memChatStore{}
	userID := uuid.New()
	a := newAdviceHarness(chats, &stubProfileReader{err: xerrors.ErrUserNotFound},
		&stubPortfolioReader{err: xerrors.ErrPortfolioNotFound}, completer)

	for _, q := range []string{"first question", "second question"} {
		if _, err := a.Advise(context.Background(), userID, q); err != nil {
			t.Fatalf("seeding history: %v", err)
		}
	}
	if _, err := a.Advise(context.Background(), userID, "third question"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := completer.prompts[2]
	first := strings.Index(prompt, "first question")
	second := strings.Index(prompt, "second question")
	if first < 0 || second < 0 {
		t.Fatalf("prompt missing history:\n%s", prompt)
	}
	if first > second {
		t.Fatal("history replayed newest first, want oldest first")
	}
}

func TestAdviseEmptyCompletion(t *testing.T) {
	completer := &recordingCompleter{answer: "   "}
	chats := &memChatStore{}
	a := newAdviceHarness(chats, &stubProfileReader{err: xerrors.ErrUserNotFound},
		&stubPortfolioReader{err: xerrors.ErrPortfolioNotFound}, completer)

	_, err := a.Advise(context.Background(), uuid.New(), "advise me")
	if !errors.Is(err, xerrors.ErrEmptyCompletion) {
		t.Fatalf("got %v, want ErrEmptyCompletion", err)
	}
	if len(chats.chats) != 0 {
		t.Fatal("empty completion must not be persisted")
	}
}

func TestHistoryClampsLimit(t *testing.T) {
	chats := &memChatStore{}
	for i := 0; i < 30; i++ {
		_ = chats.Insert(context.Background(), &domain.Chat{UserID: uuid.Nil, HumanMessage: "q", AIMessage: "a"})
	}
	a := newAdviceHarness(chats, &stubProfileReader{err: xerrors.ErrUserNotFound},
		&stubPortfolioReader{err: xerrors.ErrPortfolioNotFound}, &recordingCompleter{})

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero uses default", 0, 20},
		{"negative uses default", -5, 20},
		{"above cap uses default", 500, 20},
		{"in range honored", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.History(context.Background(), uuid.Nil, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("got %d exchanges, want %d", len(got), tt.want)
			}
		})
	}
}
