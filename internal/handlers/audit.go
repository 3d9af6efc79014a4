package handlers

import (
	"net/http"
	"strconv"

	"github.com/crucial707/travel-tracker/internal/apperr"
	"github.com/crucial707/travel-tracker/internal/repo"
)

// AuditHandler serves the caller's audit trail.
type AuditHandler struct {
	Repo *repo.AuditRepo
}

// ListAudit returns the caller's recent audit entries. Query: limit (default 50, max 200), offset (default 0).
func (h *AuditHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	userID, ok := subject(w, r)
	if !ok {
		return
	}

	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	entries, err := h.Repo.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, r, apperr.Internal(err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
