package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

// Profile is a registered user. Rows are immutable except profile edits.
type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Age          *int       `json:"age,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// PersonalInfo is the one-to-one extension of a Profile.
type PersonalInfo struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Location      *string    `json:"location,omitempty"`
	Occupation    *string    `json:"occupation,omitempty"`
	Dependants    *int       `json:"dependants,omitempty"`
	MaritalStatus *string    `json:"marital_status,omitempty"`
	Income        *float64   `json:"income,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ProfileCreate is the registration request body.
type ProfileCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Age      *int   `json:"age,omitempty"`
}

// Validate normalizes and checks the registration input before it touches
// the store: username >= 3 chars, email must contain '@' (lowercased), age
// 18..120 when given.
func (p *ProfileCreate) Validate() error {
	p.Username = strings.TrimSpace(p.Username)
	if len(p.Username) < 3 {
		return xerrors.ErrUsernameTooShort
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return xerrors.ErrInvalidEmailFormat
	}
	if p.Password == "" {
		return xerrors.ErrPasswordRequired
	}
	if p.Age != nil && (*p.Age < 18 || *p.Age > 120) {
		return xerrors.ErrInvalidAge
	}
	return nil
}

// Credentials is the login request body for the token exchange.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the credential-exchange response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
