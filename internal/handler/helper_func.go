package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/Chiranjit680/FinAdvisor/internal/middleware"
	"github.com/Chiranjit680/FinAdvisor/pkg/response"
	"github.com/Chiranjit680/FinAdvisor/pkg/xerrors"
)

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// currentUser pulls the authenticated user id injected by the auth gate.
// Responding here keeps the handlers free of auth plumbing.
func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "Could not validate credentials")
		return uuid.Nil, false
	}
	return id, true
}

// writeDomainError maps sentinel errors onto HTTP statuses. Unknown errors
// become a plain 500 with no internals leaked.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, xerrors.ErrUsernameTooShort),
		errors.Is(err, xerrors.ErrInvalidEmailFormat),
		errors.Is(err, xerrors.ErrInvalidAge),
		errors.Is(err, xerrors.ErrPasswordRequired),
		errors.Is(err, xerrors.ErrEmptyPrompt),
		errors.Is(err, xerrors.ErrPromptTooLong),
		errors.Is(err, xerrors.ErrInvalidInput),
		errors.Is(err, xerrors.ErrInvalidRequest):
		response.Error(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, xerrors.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, xerrors.ErrUserAlreadyExists),
		errors.Is(err, xerrors.ErrEmailAlreadyInUse),
		errors.Is(err, xerrors.ErrPortfolioExists),
		errors.Is(err, xerrors.ErrJobInProgress):
		response.Error(w, http.StatusConflict, err.Error())

	case errors.Is(err, xerrors.ErrUserNotFound),
		errors.Is(err, xerrors.ErrPortfolioNotFound),
		errors.Is(err, xerrors.ErrPersonalInfoNotFound),
		errors.Is(err, xerrors.ErrTickerNotFound),
		errors.Is(err, xerrors.ErrCompanyNotFound),
		errors.Is(err, xerrors.ErrNotFound):
		response.Error(w, http.StatusNotFound, err.Error())

	case errors.Is(err, xerrors.ErrLLMUnavailable),
		errors.Is(err, xerrors.ErrEmptyCompletion),
		errors.Is(err, xerrors.ErrQuoteUnavailable):
		response.Error(w, http.StatusServiceUnavailable, err.Error())

	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
