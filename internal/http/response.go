package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain errors to HTTP statuses: unknown IDs become
// 404, validation failures 400, everything else 500 with a generic body.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidType,
		core.ErrInvalidPeriod,
		core.ErrInvalidAmount,
		core.ErrEmptyUserID,
		core.ErrEmptyCategory,
		core.ErrZeroDate,
		core.ErrInvalidDateRange,
		core.ErrInvalidThreshold,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// userIDFrom pulls the caller's user ID from the X-User-ID header. An
// upstream gateway is expected to have authenticated it.
func userIDFrom(r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	return userID, userID != ""
}
