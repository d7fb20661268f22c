package cli

import "errors"

// Validation limits for CLI task fields.
const (
	MaxTitleWords       = 10
	MaxDescriptionChars = 500
)

// Service errors
var (
	// ErrTaskNotFound is returned when no task exists with the given ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTitleEmpty is returned when a title is empty after trimming.
	ErrTitleEmpty = errors.New("title cannot be empty")

	// ErrTitleTooManyWords is returned when a title exceeds the word limit.
	ErrTitleTooManyWords = errors.New("title must be 10 words or fewer")

	// ErrDescriptionTooLong is returned when a description exceeds the limit.
	ErrDescriptionTooLong = errors.New("description must be 500 characters or fewer")

	// ErrInvalidStatus is returned for a status outside pending|completed.
	ErrInvalidStatus = errors.New("status must be pending or completed")

	// ErrNoUpdateFields is returned when an update supplies nothing to change.
	ErrNoUpdateFields = errors.New("at least one field must be provided")

	// ErrInvalidPagination is returned for a negative offset or a limit
	// below one.
	ErrInvalidPagination = errors.New("offset must be >= 0 and limit >= 1")
)
