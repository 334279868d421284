package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/entity"
	"github.com/rpggio/coachboard/internal/repository"
)

// Error codes carried in the JSON error envelope.
const (
	CodeUnauthorized = "unauthorized"
	CodeNotReady     = "not_ready"
	CodeNotFound     = "not_found"
	CodeInvalidInput = "invalid_input"
	CodeConflict     = "conflict"
	CodeReadOnly     = "read_only"
	CodeInternal     = "internal"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failure.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}

// StatusFor maps a service error to an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, dashboard.ErrNotReady):
		return http.StatusServiceUnavailable, CodeNotReady
	case errors.Is(err, dashboard.ErrWeekNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, repository.ErrInvalidInput):
		return http.StatusBadRequest, CodeInvalidInput
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, dashboard.ErrReadOnly):
		return http.StatusMethodNotAllowed, CodeReadOnly
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// WriteServiceError maps err and writes the envelope. Internal errors are
// not echoed to the client.
func WriteServiceError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	WriteError(w, status, code, message)
}
