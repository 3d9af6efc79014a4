package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError sends the same {"error": msg} body the handlers use.
func writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
