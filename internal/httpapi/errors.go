package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookslib/internal/forms"
	"bookslib/internal/manager"
	"bookslib/pkg/types"
)

// statusFor maps controller errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case manager.IsNotConnected(err):
		return http.StatusServiceUnavailable
	case manager.IsBusy(err):
		return http.StatusConflict
	case manager.IsUnknownOperation(err), manager.IsUnknownForm(err), errors.Is(err, forms.ErrUnknownField):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && zlog != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}
