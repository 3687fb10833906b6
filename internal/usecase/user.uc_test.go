package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/pkg/jwtutil"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

type memUserRepo struct {
	byUsername map[string]*domain.Profile
	byID       map[uuid.UUID]*domain.Profile
	info       map[uuid.UUID]*domain.PersonalInfo
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byUsername: map[string]*domain.Profile{},
		byID:       map[uuid.UUID]*domain.Profile{},
		info:       map[uuid.UUID]*domain.PersonalInfo{},
	}
}

func (m *memUserRepo) CreateProfile(_ context.Context, p *domain.Profile) error {
	if _, ok := m.byUsername[p.Username]; ok {
		return xerrors.ErrUserAlreadyExists
	}
	for _, existing := range m.byUsername {
		if existing.Email == p.Email {
			return xerrors.ErrEmailAlreadyInUse
		}
	}
	p.CreatedAt = time.Now()
	cp := *p
	m.byUsername[p.Username] = &cp
	m.byID[p.ID] = &cp
	return nil
}

func (m *memUserRepo) GetProfileByUsername(_ context.Context, username string) (*domain.Profile, error) {
	p, ok := m.byUsername[username]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memUserRepo) GetProfileByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, xerrors.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memUserRepo) UpsertPersonalInfo(_ context.Context, info *domain.PersonalInfo) error {
	cp := *info
	m.info[info.UserID] = &cp
	return nil
}

func (m *memUserRepo) GetPersonalInfo(_ context.Context, userID uuid.UUID) (*domain.PersonalInfo, error) {
	info, ok := m.info[userID]
	if !ok {
		return nil, xerrors.ErrPersonalInfoNotFound
	}
	cp := *info
	return &cp, nil
}

func newUserHarness() (*UserUsecase, *memUserRepo) {
	repo := newMemUserRepo()
	issuer := jwtutil.NewIssuer("test-secret", time.Hour)
	return NewUserUsecase(repo, issuer, nil, zap.NewNop()), repo
}

func intp(v int) *int { return &v }

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		in      domain.ProfileCreate
		wantErr error
	}{
		{"short username", domain.ProfileCreate{Username: "ab", Email: "a@b.com", Password: "pw"}, xerrors.ErrUsernameTooShort},
		{"bad email", domain.ProfileCreate{Username: "alice", Email: "not-an-email", Password: "pw"}, xerrors.ErrInvalidEmailFormat},
		{"missing password", domain.ProfileCreate{Username: "alice", Email: "a@b.com"}, xerrors.ErrPasswordRequired},
		{"under age", domain.ProfileCreate{Username: "alice", Email: "a@b.com", Password: "pw", Age: intp(17)}, xerrors.ErrInvalidAge},
		{"over age", domain.ProfileCreate{Username: "alice", Email: "a@b.com", Password: "pw", Age: intp(121)}, xerrors.ErrInvalidAge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUserHarness()
			_, err := uc.Register(context.Background(), &tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	uc, _ := newUserHarness()
	profile, err := uc.Register(context.Background(), &domain.ProfileCreate{
		Username: "  alice  ",
		Email:    "Alice@Example.COM",
		Password: "s3cret",
		Age:      intp(30),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if profile.Username != "alice" {
		t.Fatalf("username = %q, want trimmed", profile.Username)
	}
	if profile.Email != "alice@example.com" {
		t.Fatalf("email = %q, want lowercased", profile.Email)
	}
	if profile.PasswordHash == "s3cret" || profile.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}
	if profile.ID == uuid.Nil {
		t.Fatal("profile id not assigned")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	uc, _ := newUserHarness()
	in := domain.ProfileCreate{Username: "alice", Email: "a@b.com", Password: "pw"}
	if _, err := uc.Register(context.Background(), &in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := uc.Register(context.Background(), &domain.ProfileCreate{
		Username: "alice", Email: "other@b.com", Password: "pw",
	})
	if !errors.Is(err, xerrors.ErrUserAlreadyExists) {
		t.Fatalf("got %v, want ErrUserAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	uc, _ := newUserHarness()
	if _, err := uc.Register(context.Background(), &domain.ProfileCreate{
		Username: "alice", Email: "a@b.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		token, err := uc.Login(context.Background(), &domain.Credentials{Username: "alice", Password: "s3cret"})
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if token.AccessToken == "" || token.TokenType != "bearer" {
			t.Fatalf("token = %+v", token)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Login(context.Background(), &domain.Credentials{Username: "alice", Password: "wrong"})
		if !errors.Is(err, xerrors.ErrInvalidCredentials) {
			t.Fatalf("got %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := uc.Login(context.Background(), &domain.Credentials{Username: "nobody", Password: "s3cret"})
		if !errors.Is(err, xerrors.ErrInvalidCredentials) {
			t.Fatalf("got %v, want same rejection as wrong password", err)
		}
	})
}

func TestPersonalInfoRoundTrip(t *testing.T) {
	uc, _ := newUserHarness()
	userID := uuid.New()

	loc := "Mumbai"
	income := 1200000.0
	info := &domain.PersonalInfo{UserID: userID, Location: &loc, Income: &income}
	if err := uc.SavePersonalInfo(context.Background(), info); err != nil {
		t.Fatalf("save: %v", err)
	}
	if info.ID == uuid.Nil {
		t.Fatal("personal info id not assigned")
	}

	got, err := uc.GetPersonalInfo(context.Background(), userID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got.Location != "Mumbai" || *got.Income != 1200000.0 {
		t.Fatalf("got %+v", got)
	}
}

func TestGetPersonalInfoMissing(t *testing.T) {
	uc, _ := newUserHarness()
	_, err := uc.GetPersonalInfo(context.Background(), uuid.New())
	if !errors.Is(err, xerrors.ErrPersonalInfoNotFound) {
		t.Fatalf("got %v, want ErrPersonalInfoNotFound", err)
	}
}
