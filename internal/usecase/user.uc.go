package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/pkg/cache"
	"github.com/Chiranjit680/FinAdvisor/pkg/jwtutil"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// UserRepo is everything the user usecase needs from the store.
type UserRepo interface {
	CreateProfile(ctx context.Context, p *domain.Profile) error
	GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error)
	GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	UpsertPersonalInfo(ctx context.Context, info *domain.PersonalInfo) error
	GetPersonalInfo(ctx context.Context, userID uuid.UUID) (*domain.PersonalInfo, error)
}

const profileCacheTTL = 15 * time.Minute

type UserUsecase struct {
	repo   UserRepo
	issuer *jwtutil.Issuer
	cache  *cache.Cache // nil disables caching
	logger *zap.Logger
}

func NewUserUsecase(repo UserRepo, issuer *jwtutil.Issuer, cache *cache.Cache, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, issuer: issuer, cache: cache, logger: logger}
}

// Register validates the input, hashes the password and creates the profile.
// Duplicate username or email surfaces as a conflict sentinel.
func (u *UserUsecase) Register(ctx context.Context, in *domain.ProfileCreate) (*domain.Profile, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Age:          in.Age,
	}
	if err := u.repo.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Login exchanges credentials for a signed access token.
func (u *UserUsecase) Login(ctx context.Context, creds *domain.Credentials) (*domain.Token, error) {
	profile, err := u.repo.GetProfileByUsername(ctx, creds.Username)
	if err != nil {
		// Same rejection whether the user is unknown or the password is
		// wrong, so login cannot be used to probe usernames.
		return nil, xerrors.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(creds.Password)) != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	token, err := u.issuer.Generate(profile.ID.String(), profile.Username)
	if err != nil {
		return nil, err
	}
	return &domain.Token{AccessToken: token, TokenType: "bearer"}, nil
}

// GetProfile is cache-aside: Redis first, then the store.
func (u *UserUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if u.cache != nil {
		if cached, err := u.cache.Get(ctx, "user_profile", id.String()); err == nil && cached != "" {
			var p domain.Profile
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	profile, err := u.repo.GetProfileByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := u.cache.Set(ctx, "user_profile", id.String(), data, profileCacheTTL); err != nil {
				u.logger.Warn("profile cache set failed", zap.Error(err))
			}
		}
	}
	return profile, nil
}

// SavePersonalInfo upserts the one-to-one personal info row for the user.
func (u *UserUsecase) SavePersonalInfo(ctx context.Context, info *domain.PersonalInfo) error {
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	return u.repo.UpsertPersonalInfo(ctx, info)
}

func (u *UserUsecase) GetPersonalInfo(ctx context.Context, userID uuid.UUID) (*domain.PersonalInfo, error) {
	return u.repo.GetPersonalInfo(ctx, userID)
}
