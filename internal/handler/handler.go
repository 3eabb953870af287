package handler

import (
	"encoding/json"
	"net/http"

	"nagabalm/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

// writeError writes a failed envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.Fail(message))
}

// writeDomainError maps a service error to an HTTP status by its kind and
// writes the failed envelope. Unclassified errors become opaque 500s so
// internal detail never leaks to clients.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch model.KindOf(err) {
	case model.KindValidation:
		status = http.StatusBadRequest
		message = err.Error()
	case model.KindUnauthorized:
		status = http.StatusUnauthorized
		message = err.Error()
	case model.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case model.KindConflict:
		status = http.StatusConflict
		message = err.Error()
	case model.KindUnavailable:
		status = http.StatusServiceUnavailable
		message = err.Error()
	}

	writeError(w, status, message, logger)
}

// decodeJSON decodes the request body into dst, reporting a 400 envelope on
// malformed input. Returns false when decoding failed and a response has
// already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", logger)
		return false
	}
	return true
}
