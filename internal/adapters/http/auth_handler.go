package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"keepup/internal/domain"
)

type AuthHandler struct {
	svc domain.AuthService
}

func NewAuthHandler(svc domain.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			JSONError(w, http.StatusBadRequest, "email already registered")
			return
		}

		if errors.Is(err, domain.ErrRoleNotFound) {
			JSONError(w, http.StatusBadRequest, "default role is not configured")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: res})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		JSONValidationError(w, validationErrors)
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			JSONError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		JSONError(w, http.StatusInternalServerError, "failed to sign in")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{Data: res})
}
