package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/travel-tracker/internal/dto"
	"github.com/crucial707/travel-tracker/internal/middleware"
	"github.com/crucial707/travel-tracker/internal/models"
	"github.com/crucial707/travel-tracker/internal/services"
	"github.com/go-chi/chi/v5"
)

// DestinationHandler serves /destinations. Every route runs behind RequireAuth.
type DestinationHandler struct {
	Service *services.DestinationService
}

type destinationUpdated struct {
	Message     string              `json:"message"`
	Destination *models.Destination `json:"destination"`
}

// subject returns the authenticated user or answers 401.
func subject(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
	}
	return id, ok
}

func destinationID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		JSONError(w, "invalid destination id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// ==========================
// Create
// ==========================
func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	var input dto.CreateDestinationRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	nd, err := input.Normalize()
	if err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.Service.Create(r.Context(), userID, nd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// ==========================
// List (caller's destinations only)
// ==========================
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	list, err := h.Service.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ==========================
// Get
// ==========================
func (h *DestinationHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := destinationID(w, r)
	if !ok {
		return
	}

	d, err := h.Service.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ==========================
// Update (partial)
// ==========================
func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := destinationID(w, r)
	if !ok {
		return
	}

	var input dto.UpdateDestinationRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	patch, err := input.Normalize()
	if err != nil {
		writeError(w, r, err)
		return
	}

	d, err := h.Service.Update(r.Context(), userID, id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationUpdated{
		Message:     "Destination updated successfully",
		Destination: d,
	})
}

// ==========================
// Delete
// ==========================
func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}
	id, ok := destinationID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Destination deleted successfully"})
}
