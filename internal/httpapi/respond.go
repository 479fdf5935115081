package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"marketer/internal/domain"
)

// Every response is JSON with "ok" plus either a payload or an
// "error" string (and best-effort "details" for upstream failures).

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondOK(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range payload {
		body[k] = v
	}
	respondJSON(w, http.StatusOK, body)
}

func respondError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		conflictErr   *domain.ConflictError
		configErr     *domain.ConfigurationError
		upstreamErr   *domain.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": validationErr.Msg})
	case errors.As(err, &notFoundErr):
		respondJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		respondJSON(w, http.StatusConflict, map[string]any{"ok": false, "error": conflictErr.Msg})
	case errors.As(err, &configErr):
		respondJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": configErr.Error()})
	case errors.As(err, &upstreamErr):
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":      false,
			"error":   upstreamErr.Provider + " send failed",
			"details": upstreamErr.Detail,
		})
	default:
		slog.Error("request failed", "err", err)
		respondJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "internal error"})
	}
}
