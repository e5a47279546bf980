package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"loan-amortization/domain"
)

// encodeFailureBody is sent when a response cannot be encoded.
const encodeFailureBody = `{"error":"internal server error"}` + "\n"

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		loggerFrom(r).ErrorContext(r.Context(), "failed to encode response", "error", err)
		buf.Reset()
		buf.WriteString(encodeFailureBody)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		loggerFrom(r).WarnContext(r.Context(), "failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

// writeServiceError maps calculation errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.InvalidParameterError
	if errors.As(err, &invalid) {
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: invalid.Error(), Field: invalid.Field})
		return
	}
	loggerFrom(r).ErrorContext(r.Context(), "calculation failed", "error", err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func loggerFrom(r *http.Request) *slog.Logger {
	if logger, ok := r.Context().Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
