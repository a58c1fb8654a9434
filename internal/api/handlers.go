package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ghaggin/portal/internal/model"
	"github.com/ghaggin/portal/internal/repository"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type handlers struct {
	log    *zap.Logger
	ctrl   *Controller
	tokens *TokenIssuer
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.ctrl.GetUser(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, ErrInvalidInput)
		return
	}

	if err := h.ctrl.ValidateLogin(r.Context(), creds.Username, creds.Password); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeToken(w, http.StatusOK, creds.Username)
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	var s model.Signup
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		h.writeError(w, ErrInvalidInput)
		return
	}

	u, err := h.ctrl.CreateUser(r.Context(), s)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeToken(w, http.StatusCreated, u.Username)
}

func (h *handlers) writeToken(w http.ResponseWriter, status int, username string) {
	token, err := h.tokens.Issue(username)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, status, tokenResponse{Token: token})
}

func (h *handlers) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := http.StatusText(status)

	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrWeakPassword):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrBadCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		status, msg = http.StatusNotFound, "user not found"
	case errors.Is(err, repository.ErrExists):
		status, msg = http.StatusConflict, "user already exists"
	default:
		h.log.Error("api request failed", zap.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
