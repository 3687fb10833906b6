package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
)

// PortfolioRepo is everything the portfolio usecase needs from the store.
type PortfolioRepo interface {
	Create(ctx context.Context, p *domain.Portfolio) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error)
	Update(ctx context.Context, p *domain.Portfolio) error
}

type PortfolioUsecase struct {
	repo   PortfolioRepo
	logger *zap.Logger
}

func NewPortfolioUsecase(repo PortfolioRepo, logger *zap.Logger) *PortfolioUsecase {
	return &PortfolioUsecase{repo: repo, logger: logger}
}

// Create adds the single portfolio row for a user; a second create is a
// conflict (ErrPortfolioExists from the store's unique constraint).
func (p *PortfolioUsecase) Create(ctx context.Context, userID uuid.UUID, in *domain.Portfolio) (*domain.Portfolio, error) {
	in.PortfolioID = uuid.New()
	in.UserID = userID
	if err := p.repo.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (p *PortfolioUsecase) Get(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	return p.repo.GetByUserID(ctx, userID)
}

// Update merges only the fields present in the request; absent fields keep
// their stored values.
func (p *PortfolioUsecase) Update(ctx context.Context, userID uuid.UUID, upd *domain.PortfolioUpdate) (*domain.Portfolio, error) {
	existing, err := p.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	upd.Apply(existing)
	if err := p.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
