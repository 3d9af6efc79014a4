package handlers

import (
	"net/http"

	"github.com/crucial707/travel-tracker/internal/dto"
	"github.com/crucial707/travel-tracker/internal/services"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Service *services.AuthService
}

// ==========================
// Register (201 with the public user; 409 when the email is taken)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input dto.CredentialsRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	creds, err := input.Normalize()
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.Service.Register(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ==========================
// Login (200 with the public user and a bearer token)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.CredentialsRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	creds, err := input.Normalize()
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.Service.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
