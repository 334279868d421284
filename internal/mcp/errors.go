package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/entity"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, dashboard.ErrNotReady):
		return &APIError{Code: "NOT_READY", Message: "dashboard data is still loading", RecoveryHint: "Call refresh_snapshot, then retry"}
	case errors.Is(err, dashboard.ErrWeekNotFound):
		return &APIError{Code: "WEEK_NOT_FOUND", Message: "week not found", RecoveryHint: "Use filter_weeks to find week ids"}
	case errors.Is(err, entity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check argument values"}
	default:
		return &APIError{Code: "INTERNAL", Message: err.Error()}
	}
}
