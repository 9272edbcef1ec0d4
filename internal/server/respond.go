package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fiscaldata/mts-tracker/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("http.encode_failed", "error", err)
	}
}

// writeRawJSON serves artifact bytes that are already JSON.
func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Error("http.write_failed", "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses. Unrecognized errors
// are internal and the detail stays in the log, not the response.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrExternalService):
		logger.Error("http.external_service_error", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "external service failure"})
	default:
		logger.Error("http.internal_error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
