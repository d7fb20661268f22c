package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/domain"
)

// TaskFilter narrows a task listing. Nil fields are ignored.
//
// DueFrom/DueTo are inclusive bounds; DueBefore is a strict upper bound used
// by the due-date buckets (overdue, this_week, next_week). HasDueDate filters
// on the mere presence of a due date.
type TaskFilter struct {
	Status     *domain.TaskStatus
	Priority   *domain.TaskPriority
	Search     string // case-insensitive substring over title OR description
	DueFrom    *time.Time
	DueTo      *time.Time
	DueBefore  *time.Time
	HasDueDate *bool
}

// Sort directions for task listings.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// TaskSort selects the ordering of a task listing. An unrecognized Field
// falls back to created_at; an unrecognized Order falls back to descending.
type TaskSort struct {
	Field string
	Order string
}

// Page is a 1-indexed pagination request.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TaskMetadata carries per-user task counts returned alongside listings.
type TaskMetadata struct {
	TotalPending   int `json:"total_pending"`
	TotalCompleted int `json:"total_completed"`
	TotalActive    int `json:"total_active"`
	TotalDeleted   int `json:"total_deleted"`
}

// DueDateStats carries counts of active tasks per due-date category,
// computed against a single instant.
type DueDateStats struct {
	OverdueCount     int `json:"overdue_count"`
	DueTodayCount    int `json:"due_today_count"`
	DueThisWeekCount int `json:"due_this_week_count"`
	NoDueDateCount   int `json:"no_due_date_count"`
}

// TaskStore defines the interface for task data persistence.
//
// The soft-delete invariant is enforced here: active-path methods (GetByID,
// List, ListByIDs, the bulk mutations) never see trashed tasks, and the
// trash-path methods (GetTrashedByID, ListTrash) never see active ones.
// Callers cannot reach a trashed task through an active-path query.
type TaskStore interface {
	// Create saves a new task. The task must be valid according to domain
	// validation rules. Returns ErrInvalidEntity if the owning user does not
	// exist (foreign key violation).
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves an active (non-trashed) task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist or is trashed.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetTrashedByID retrieves a trashed task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist or is not trashed.
	GetTrashedByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns one page of the user's active tasks matching the filter,
	// plus the total number of matching rows before pagination.
	List(
		ctx context.Context,
		userID uuid.UUID,
		filter TaskFilter,
		sort TaskSort,
		page Page,
	) ([]*domain.Task, int, error)

	// ListTrash returns one page of the user's trashed tasks ordered by
	// deletion time (most recently trashed first), plus the total count.
	ListTrash(ctx context.Context, userID uuid.UUID, page Page) ([]*domain.Task, int, error)

	// ListByIDs returns the active tasks among the given IDs, in no
	// particular order. Missing or trashed IDs are simply absent from the
	// result; the caller decides whether that is an error.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error)

	// Update writes all mutable columns of the task (including status,
	// completed_at and deleted_at) back to the store.
	// Returns an error wrapping ErrNotFound if no row with the task's ID exists.
	Update(ctx context.Context, task *domain.Task) error

	// BulkSetStatus sets the status of every given task in one statement,
	// stamping completed_at for completions and clearing it otherwise.
	// IMPORTANT: run within a transaction via WithTx after the service has
	// resolved and validated every ID; the statement itself does not check
	// existence or ownership.
	BulkSetStatus(ctx context.Context, ids []uuid.UUID, status domain.TaskStatus, at time.Time) error

	// BulkSoftDelete moves every given task to the trash in one statement.
	// Same transaction requirements as BulkSetStatus.
	BulkSoftDelete(ctx context.Context, ids []uuid.UUID, at time.Time) error

	// PermanentDelete removes a trashed task's row irrecoverably.
	// Returns an error wrapping ErrNotFound if the task does not exist or is
	// not trashed.
	PermanentDelete(ctx context.Context, id uuid.UUID) error

	// Metadata returns the user's task counts (pending/completed/active/deleted).
	Metadata(ctx context.Context, userID uuid.UUID) (TaskMetadata, error)

	// DueStats returns due-date category counts for the user's active tasks,
	// with day boundaries derived from the given instant in UTC.
	DueStats(ctx context.Context, userID uuid.UUID, now time.Time) (DueDateStats, error)

	// WithTx returns a TaskStore bound to the given transaction, so multiple
	// operations can execute atomically. The transaction is created and
	// managed by the caller, typically via RunInTransaction.
	WithTx(tx *sql.Tx) TaskStore
}
