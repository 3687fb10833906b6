package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/internal/service/llm"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// ChatStore persists and replays advisory exchanges.
type ChatStore interface {
	Insert(ctx context.Context, c *domain.Chat) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Chat, error)
}

// ProfileReader and PortfolioReader supply the advisory context. A missing
// row degrades to placeholder text, never a failure.
type ProfileReader interface {
	GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

type PortfolioReader interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error)
}

const (
	maxPromptLen  = 1000
	historyWindow = 20
)

// AdviceUsecase assembles a bounded advisory context (recent chat history,
// profile, portfolio snapshot), forwards it to the completion collaborator
// and persists the exchange.
type AdviceUsecase struct {
	chats      ChatStore
	users      ProfileReader
	portfolios PortfolioReader
	completer  llm.Completer
	logger     *zap.Logger
}

func NewAdviceUsecase(chats ChatStore, users ProfileReader, portfolios PortfolioReader, completer llm.Completer, logger *zap.Logger) *AdviceUsecase {
	return &AdviceUsecase{
		chats:      chats,
		users:      users,
		portfolios: portfolios,
		completer:  completer,
		logger:     logger,
	}
}

// Advise rejects empty or over-length prompts before any collaborator call,
// then returns the persisted exchange.
func (a *AdviceUsecase) Advise(ctx context.Context, userID uuid.UUID, prompt string) (*domain.Chat, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, xerrors.ErrEmptyPrompt
	}
	if len(prompt) > maxPromptLen {
		return nil, xerrors.ErrPromptTooLong
	}

	advisoryContext := a.buildContext(ctx, userID, prompt)

	answer, err := a.completer.Complete(ctx, advisoryContext)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(answer) == "" {
		return nil, xerrors.ErrEmptyCompletion
	}

	chat := &domain.Chat{
		UserID:       userID,
		HumanMessage: prompt,
		AIMessage:    answer,
	}
	if err := a.chats.Insert(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// History returns the user's recent exchanges, most recent first.
func (a *AdviceUsecase) History(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Chat, error) {
	if limit <= 0 || limit > 100 {
		limit = historyWindow
	}
	return a.chats.ListRecent(ctx, userID, limit)
}

func (a *AdviceUsecase) buildContext(ctx context.Context, userID uuid.UUID, prompt string) string {
	var history strings.Builder
	if chats, err := a.chats.ListRecent(ctx, userID, historyWindow); err == nil {
		// Replay oldest first so the conversation reads forward.
		for i := len(chats) - 1; i >= 0; i-- {
			history.WriteString("User:" + chats[i].HumanMessage + " AI: " + chats[i].AIMessage)
		}
	} else {
		a.logger.Warn("failed to load chat history", zap.Error(err))
	}

	username := "Unknown User"
	age := "Unknown Age"
	if profile, err := a.users.GetProfileByID(ctx, userID); err == nil {
		username = profile.Username
		if profile.Age != nil {
			age = fmt.Sprintf("%d", *profile.Age)
		}
	}

	equity := "Unknown Equity Amount"
	cash := "Unknown Cash Amount"
	fd := "Unknown FD Amount"
	debt := "Unknown Debt Amount"
	realEstate := "Unknown Real Estate Amount"
	bonds := "Unknown Bonds Amount"
	crypto := "Unknown Crypto Amount"
	if p, err := a.portfolios.GetByUserID(ctx, userID); err == nil {
		equity = amountOr(p.EquityAmt, equity)
		cash = amountOr(p.CashAmt, cash)
		fd = amountOr(p.FDAmt, fd)
		debt = amountOr(p.DebtAmt, debt)
		realEstate = amountOr(p.RealEstateAmt, realEstate)
		bonds = amountOr(p.BondsAmt, bonds)
		crypto = amountOr(p.CryptoAmt, crypto)
	}

	return fmt.Sprintf(`Context: %s
You are a financial advisor. Answer the question based on the context provided and the user data.

User Data:
- User: %s
- Age: %s
- Equity Amount: %s
- Cash Amount: %s
- FD Amount: %s
- Debt Amount: %s
- Real Estate Amount: %s
- Bonds Amount: %s
- Crypto Amount: %s

Take the user's financial situation, goals and age into account when responding.

User Question: %s`,
		history.String(), username, age, equity, cash, fd, debt, realEstate, bonds, crypto, prompt)
}

func amountOr(v *float64, fallback string) string {
	if v == nil {
		return fallback
	}
	return fmt.Sprintf("%.2f", *v)
}
