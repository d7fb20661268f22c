package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the completion state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusCompleted
}

// TaskPriority represents the urgency level of a task.
type TaskPriority string

// Possible task priority values
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

// Validation limits for task fields.
const (
	MaxTitleChars       = 100
	MaxTitleWords       = 50
	MaxDescriptionChars = 500
	MaxNotesChars       = 1000
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty after trimming.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskTitleTooLong is returned when a task's title exceeds the character
	// or word limit.
	ErrTaskTitleTooLong = errors.New("task title exceeds maximum length")

	// ErrTaskDescriptionTooLong is returned when a description exceeds the limit.
	ErrTaskDescriptionTooLong = errors.New("task description exceeds maximum length")

	// ErrTaskNotesTooLong is returned when notes exceed the limit.
	ErrTaskNotesTooLong = errors.New("task notes exceed maximum length")

	// ErrInvalidTaskStatus is returned for a status outside the known set.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidTaskPriority is returned for a priority outside the known set.
	ErrInvalidTaskPriority = errors.New("invalid task priority")
)

// Task represents a single to-do item owned by a user.
//
// A task with a non-nil DeletedAt is in the trash: it is excluded from every
// active listing and can only be reached through the trash operations
// (trash listing, restore, permanent delete). CompletedAt is stamped when the
// status flips to completed and cleared when it flips back to pending.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	ManualOrder *int         `json:"manual_order,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	DeletedAt   *time.Time   `json:"deleted_at,omitempty"`
}

// NewTask creates a new pending Task for the given user. The title is trimmed
// before validation; priority defaults to medium when empty.
// Returns an error if validation fails.
func NewTask(
	userID uuid.UUID,
	title string,
	description *string,
	priority TaskPriority,
	dueDate *time.Time,
	notes *string,
) (*Task, error) {
	if priority == "" {
		priority = TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      TaskStatusPending,
		Priority:    priority,
		DueDate:     dueDate,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	if t.Description != nil && len(*t.Description) > MaxDescriptionChars {
		return ErrTaskDescriptionTooLong
	}

	if t.Notes != nil && len(*t.Notes) > MaxNotesChars {
		return ErrTaskNotesTooLong
	}

	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}

	if !t.Priority.Valid() {
		return ErrInvalidTaskPriority
	}

	return nil
}

// ValidateTitle checks a task title against the trimmed length and word limits.
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTaskTitleEmpty
	}
	if len(trimmed) > MaxTitleChars {
		return ErrTaskTitleTooLong
	}
	if len(strings.Fields(trimmed)) > MaxTitleWords {
		return ErrTaskTitleTooLong
	}
	return nil
}

// IsTrashed reports whether the task has been soft-deleted.
func (t *Task) IsTrashed() bool {
	return t.DeletedAt != nil
}

// ToggleStatus flips the task between pending and completed, stamping or
// clearing CompletedAt and refreshing UpdatedAt.
func (t *Task) ToggleStatus() {
	now := time.Now().UTC()
	if t.Status == TaskStatusPending {
		t.SetStatus(TaskStatusCompleted, now)
	} else {
		t.SetStatus(TaskStatusPending, now)
	}
}

// SetStatus forces the task to the given status, maintaining CompletedAt
// the same way ToggleStatus does.
func (t *Task) SetStatus(status TaskStatus, at time.Time) {
	t.Status = status
	if status == TaskStatusCompleted {
		completedAt := at
		t.CompletedAt = &completedAt
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = at
}

// MoveToTrash marks the task soft-deleted at the given instant.
func (t *Task) MoveToTrash(at time.Time) {
	deletedAt := at
	t.DeletedAt = &deletedAt
	t.UpdatedAt = at
}

// RestoreFromTrash clears the soft-delete marker.
func (t *Task) RestoreFromTrash(at time.Time) {
	t.DeletedAt = nil
	t.UpdatedAt = at
}
