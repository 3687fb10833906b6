package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

type PortfolioRepository struct {
	db *pgxpool.Pool
}

func NewPortfolioRepository(db *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const portfolioColumns = `portfolio_id, user_id, equity_amt, cash_amt, fd_amt, debt_amt,
	real_estate_amt, bonds_amt, crypto_amt, created_at, updated_at`

// Create inserts the single portfolio row for a user. The unique constraint
// on user_id enforces the one-per-user invariant at the store.
func (r *PortfolioRepository) Create(ctx context.Context, p *domain.Portfolio) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO portfolio (portfolio_id, user_id, equity_amt, cash_amt, fd_amt, debt_amt,
			real_estate_amt, bonds_amt, crypto_amt)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		p.PortfolioID, p.UserID, p.EquityAmt, p.CashAmt, p.FDAmt, p.DebtAmt,
		p.RealEstateAmt, p.BondsAmt, p.CryptoAmt,
	).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return xerrors.ErrPortfolioExists
		}
		return err
	}
	return nil
}

func (r *PortfolioRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	var p domain.Portfolio
	err := r.db.QueryRow(ctx,
		`SELECT `+portfolioColumns+` FROM portfolio WHERE user_id = $1`, userID,
	).Scan(&p.PortfolioID, &p.UserID, &p.EquityAmt, &p.CashAmt, &p.FDAmt, &p.DebtAmt,
		&p.RealEstateAmt, &p.BondsAmt, &p.CryptoAmt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrPortfolioNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Update overwrites the asset-class balances of an existing row.
func (r *PortfolioRepository) Update(ctx context.Context, p *domain.Portfolio) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE portfolio SET
			equity_amt      = $2,
			cash_amt        = $3,
			fd_amt          = $4,
			debt_amt        = $5,
			real_estate_amt = $6,
			bonds_amt       = $7,
			crypto_amt      = $8,
			updated_at      = now()
		WHERE user_id = $1`,
		p.UserID, p.EquityAmt, p.CashAmt, p.FDAmt, p.DebtAmt,
		p.RealEstateAmt, p.BondsAmt, p.CryptoAmt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrPortfolioNotFound
	}
	return nil
}
