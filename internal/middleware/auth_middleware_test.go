package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Chiranjit680/FinAdvisor/pkg/jwtutil"
)

var exempt = []string{"/", "/health", "/user/create_profile", "/user/token"}

func authHarness(t *testing.T, ttl time.Duration) (*jwtutil.Issuer, http.Handler, *bool, *uuid.UUID) {
	t.Helper()
	issuer := jwtutil.NewIssuer("test-secret", ttl)
	reached := false
	var seenID uuid.UUID
	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		if id, ok := UserIDFromContext(r.Context()); ok {
			seenID = id
		}
		w.WriteHeader(http.StatusOK)
	})
	am := NewAuthMiddleware(issuer, exempt)
	return issuer, am.Middleware(probe), &reached, &seenID
}

func TestAuthRejectsWithoutToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bearer no token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, h, reached, _ := authHarness(t, time.Hour)
			req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("got %d, want 401", rec.Code)
			}
			if *reached {
				t.Fatal("handler ran behind a failed auth gate")
			}
		})
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	issuer, h, reached, _ := authHarness(t, -time.Minute)
	token, err := issuer.Generate(uuid.NewString(), "alice")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
	if *reached {
		t.Fatal("handler ran with an expired token")
	}
}

func TestAuthInjectsIdentity(t *testing.T) {
	issuer, h, reached, seenID := authHarness(t, time.Hour)
	userID := uuid.New()
	token, err := issuer.Generate(userID.String(), "alice")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	if !*reached {
		t.Fatal("handler never ran")
	}
	if *seenID != userID {
		t.Fatalf("context user id = %s, want %s", *seenID, userID)
	}
}

func TestAuthExemptPaths(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/health", http.StatusOK},
		{"/user/create_profile", http.StatusOK},
		{"/user/token", http.StatusOK},
		{"/user/me", http.StatusUnauthorized},
		{"/portfolio/secure/my_portfolio", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, h, _, _ := authHarness(t, time.Hour)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Fatalf("path %s: got %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	other := jwtutil.NewIssuer("other-secret", time.Hour)
	token, err := other.Generate(uuid.NewString(), "mallory")
	if err != nil {
		t.Fatal(err)
	}

	_, h, reached, _ := authHarness(t, time.Hour)
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got %d, want 401", rec.Code)
	}
	if *reached {
		t.Fatal("handler ran with a forged token")
	}
}
