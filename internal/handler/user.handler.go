package handler

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
	"github.com/Chiranjit680/FinAdvisor/internal/usecase"
	"github.com/Chiranjit680/FinAdvisor/pkg/response"
)

type UserHandler struct {
	uc     *usecase.UserUsecase
	logger *zap.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, logger *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// CreateProfile handles POST /user/create_profile.
func (h *UserHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var in domain.ProfileCreate
	if err := decodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.uc.Register(r.Context(), &in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.logger.Info("profile created", zap.String("username", profile.Username))
	response.JSON(w, http.StatusCreated, profile)
}

// Token handles POST /user/token, the credential exchange. It accepts both
// a JSON body and the form encoding dashboard login pages tend to send.
func (h *UserHandler) Token(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			response.Error(w, http.StatusBadRequest, "invalid form body")
			return
		}
		creds.Username = r.PostFormValue("username")
		creds.Password = r.PostFormValue("password")
	} else if err := decodeJSON(r, &creds); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.uc.Login(r.Context(), &creds)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, token)
}

// Me handles GET /user/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	profile, err := h.uc.GetProfile(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, profile)
}

// PersonalInfo handles GET /user/me/personal_info.
func (h *UserHandler) PersonalInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	info, err := h.uc.GetPersonalInfo(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, info)
}

// AddPersonalDetails handles POST /user/add_personal_details; create or
// update, the caller does not need to care which.
func (h *UserHandler) AddPersonalDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var info domain.PersonalInfo
	if err := decodeJSON(r, &info); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	info.UserID = userID

	if err := h.uc.SavePersonalInfo(r.Context(), &info); err != nil {
		writeDomainError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, info)
}
