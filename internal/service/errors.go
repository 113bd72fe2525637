package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/reposelink/reposelink/internal/realtime"
	"github.com/reposelink/reposelink/internal/session"
)

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps store errors onto HTTP statuses with a JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, session.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, session.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, session.ErrValidation), errors.Is(err, realtime.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, realtime.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decode parses the request body into v; a failure is reported as a 400.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return false
	}
	return true
}
