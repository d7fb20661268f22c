// Package service provides application-level services for managing tasks and
// users.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent conditions that callers check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrValidation is the base error for all request validation failures.
	// API layer should map this to HTTP 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrTaskNotFound indicates the requested task does not exist or is not
	// visible in the requested state (active vs trashed).
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates a registration attempt with an email that is
	// already in use. API layer should map this to HTTP 409 Conflict.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or wrong password. API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Validation sentinels. Each wraps ErrValidation so callers can test for the
// broad category or the specific failure.
var (
	// ErrNoUpdateFields indicates a partial update request that supplied no
	// fields at all.
	ErrNoUpdateFields = newValidationError("at least one field must be provided")

	// ErrNoChanges indicates a partial update whose supplied fields all match
	// the task's current values.
	ErrNoChanges = newValidationError("no changes detected")

	// ErrBulkIDsEmpty indicates a bulk operation with an empty id list.
	ErrBulkIDsEmpty = newValidationError("task_ids must not be empty")

	// ErrBulkIDsTooMany indicates a bulk operation exceeding the 50-id limit.
	ErrBulkIDsTooMany = newValidationError("task_ids must not exceed 50 entries")

	// ErrInvalidPage indicates a page number below 1.
	ErrInvalidPage = newValidationError("page must be at least 1")

	// ErrInvalidLimit indicates a page size outside the 1-100 range.
	ErrInvalidLimit = newValidationError("limit must be between 1 and 100")

	// ErrInvalidDueBucket indicates an unrecognized due-date filter name.
	ErrInvalidDueBucket = newValidationError(
		"filter must be one of: overdue, today, tomorrow, this_week, next_week, no_due_date")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func newValidationError(msg string) error {
	return &validationError{msg: msg}
}

// NewValidationError wraps a domain or request validation failure so that it
// reports as ErrValidation while keeping the specific message.
func NewValidationError(msg string) error {
	return newValidationError(msg)
}
