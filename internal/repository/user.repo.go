package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const profileColumns = `id, username, email, password_hash, name, age, created_at, updated_at`

func (r *UserRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_profile (id, username, email, password_hash, name, age)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		p.ID, p.Username, p.Email, p.PasswordHash, p.Name, p.Age,
	).Scan(&p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return xerrors.ErrEmailAlreadyInUse
			}
			return xerrors.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profile WHERE username = $1`, username)
	return scanProfile(row)
}

func (r *UserRepository) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profile WHERE id = $1`, id)
	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &p.Name, &p.Age, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrUserNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpsertPersonalInfo creates the one-to-one personal info row if absent,
// else updates it in place.
func (r *UserRepository) UpsertPersonalInfo(ctx context.Context, info *domain.PersonalInfo) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO personal_info (id, user_id, location, occupation, dependants, marital_status, income)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			location       = EXCLUDED.location,
			occupation     = EXCLUDED.occupation,
			dependants     = EXCLUDED.dependants,
			marital_status = EXCLUDED.marital_status,
			income         = EXCLUDED.income,
			updated_at     = now()
		RETURNING id, created_at`,
		info.ID, info.UserID, info.Location, info.Occupation, info.Dependants, info.MaritalStatus, info.Income,
	).Scan(&info.ID, &info.CreatedAt)
}

func (r *UserRepository) GetPersonalInfo(ctx context.Context, userID uuid.UUID) (*domain.PersonalInfo, error) {
	var info domain.PersonalInfo
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, location, occupation, dependants, marital_status, income, created_at, updated_at
		FROM personal_info WHERE user_id = $1`, userID,
	).Scan(&info.ID, &info.UserID, &info.Location, &info.Occupation, &info.Dependants,
		&info.MaritalStatus, &info.Income, &info.CreatedAt, &info.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrPersonalInfoNotFound
		}
		return nil, err
	}
	return &info, nil
}
