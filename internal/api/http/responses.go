package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"madalto-backend/internal/domain"
	"madalto-backend/internal/logger"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps the domain sentinels onto HTTP status codes. Anything
// unrecognized is a 500 and the detail stays in the server log only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrTransition):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, status, errorBody{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	return nil
}
