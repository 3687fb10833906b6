package xerrors

import "errors"
import "github.com/jackc/pgx/v5/pgconn"

func ParsePGErrorCode(err error) string {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// IsUniqueViolation reports whether err is a Postgres duplicate-key error.
func IsUniqueViolation(err error) bool {
	return ParsePGErrorCode(err) == "23505"
}

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input provided")
)

// Registration / Login
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrUsernameTooShort   = errors.New("username must be at least 3 characters long")
	ErrInvalidAge         = errors.New("age must be between 18 and 120")
	ErrPasswordRequired   = errors.New("password required")
)

// Token
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Portfolio / personal info
var (
	ErrPortfolioExists      = errors.New("portfolio already exists for this user")
	ErrPortfolioNotFound    = errors.New("portfolio not found for this user")
	ErrPersonalInfoNotFound = errors.New("personal info not found for this user")
)

// Chat / advisory
var (
	ErrEmptyPrompt     = errors.New("prompt cannot be empty")
	ErrPromptTooLong   = errors.New("prompt is too long; limit to 1000 characters")
	ErrEmptyCompletion = errors.New("empty response from completion service")
	ErrLLMUnavailable  = errors.New("completion service unavailable")
)

// Stock / market data
var (
	ErrTickerNotFound   = errors.New("ticker not found")
	ErrCompanyNotFound  = errors.New("company not found in the known universe")
	ErrQuoteUnavailable = errors.New("market data unavailable for ticker")
	ErrJobInProgress    = errors.New("stock data upload already in progress")
	ErrEmptyUniverse    = errors.New("no stock codes available")
)
