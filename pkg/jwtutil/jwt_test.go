package jwtutil

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	token, err := issuer.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := issuer.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-123" || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateRejectsTampering(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	token, err := issuer.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		issuer  *Issuer
		wantErr error
	}{
		{"wrong secret", token, NewIssuer("other", time.Hour), ErrInvalidToken},
		{"garbage", "abc.def.ghi", issuer, ErrInvalidToken},
		{"truncated", token[:len(token)-4], issuer, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.issuer.ParseAndValidate(tt.token); !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateExpired(t *testing.T) {
	issuer := NewIssuer("secret", -time.Minute)
	token, err := issuer.Generate("user-123", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := issuer.ParseAndValidate(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("got %v, want ErrExpiredToken", err)
	}
}
