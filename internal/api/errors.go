package api

import (
	"errors"
	"net/http"

	"github.com/tasknest/tasknest/internal/api/shared"
	"github.com/tasknest/tasknest/internal/service"
	"github.com/tasknest/tasknest/internal/service/auth"
	"github.com/tasknest/tasknest/internal/store"
)

// Machine-readable error codes returned in the error envelope.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInternalError    = "INTERNAL_ERROR"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCodeForStatus maps an HTTP status code to the envelope error code.
func ErrorCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidationError
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodePermissionDenied
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeInternalError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid email or password"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this task"

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	// Validation errors keep their specific message: the sentinels carry no
	// internal detail, only what was wrong with the request.
	case errors.Is(err, service.ErrValidation):
		return err.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// respondServiceError maps a service error onto the envelope and writes it.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, ErrorCodeForStatus(status), GetSafeErrorMessage(err), err)
}
