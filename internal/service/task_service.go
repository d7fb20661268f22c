package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/store"
)

// MaxBulkIDs caps the number of task IDs a single bulk operation may target.
const MaxBulkIDs = 50

// Default listing page shape when the request leaves them unset.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Due-date bucket names accepted by ListDue.
const (
	DueBucketOverdue   = "overdue"
	DueBucketToday     = "today"
	DueBucketTomorrow  = "tomorrow"
	DueBucketThisWeek  = "this_week"
	DueBucketNextWeek  = "next_week"
	DueBucketNoDueDate = "no_due_date"
)

// TaskRepository is the persistence surface the task service depends on.
// It is the store.TaskStore contract plus access to the underlying pool for
// transactional flows.
type TaskRepository interface {
	store.TaskStore

	// DB returns the underlying database connection pool.
	DB() *sql.DB
}

// CreateTaskInput carries the fields for a new task. Title is required; the
// rest are optional. An empty Priority defaults to medium.
type CreateTaskInput struct {
	Title       string
	Description *string
	Priority    string
	DueDate     *time.Time
	Notes       *string
}

// UpdateTaskInput carries a partial update. Nil fields are left untouched.
// An empty string in Description or Notes clears the column.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *time.Time
	ClearDue    bool
	Notes       *string
	ManualOrder *int
}

// ListTasksInput carries the filter, sort and pagination parameters for a
// task listing. Zero values mean "not specified".
type ListTasksInput struct {
	Page       int
	Limit      int
	Status     string
	Priority   string
	SortBy     string
	SortOrder  string
	Search     string
	DueFrom    *time.Time
	DueTo      *time.Time
	HasDueDate *bool
}

// PageInfo describes one page of a listing.
type PageInfo struct {
	Page       int
	Limit      int
	TotalItems int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// TaskPage is one page of tasks plus the user's task counts.
type TaskPage struct {
	Tasks      []*domain.Task
	Pagination PageInfo
	Metadata   store.TaskMetadata
}

// TaskService provides task-related operations for the web API.
type TaskService interface {
	// Create validates the input and persists a new task for the user.
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// Get retrieves one of the user's active tasks.
	Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// List returns one page of the user's active tasks matching the filter.
	List(ctx context.Context, userID uuid.UUID, input ListTasksInput) (*TaskPage, error)

	// Update applies a partial update. At least one field must be provided,
	// and at least one provided field must differ from the current value.
	Update(ctx context.Context, userID, taskID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)

	// Toggle flips the task between pending and completed.
	Toggle(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// BulkSetStatus sets the status of 1-50 tasks atomically. Either every
	// task is updated or none is. Returns the number of tasks updated.
	BulkSetStatus(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID, status domain.TaskStatus) (int, error)

	// BulkDelete soft-deletes 1-50 tasks atomically. Returns the number of
	// tasks trashed.
	BulkDelete(ctx context.Context, userID uuid.UUID, taskIDs []uuid.UUID) (int, error)

	// SoftDelete moves a task to the trash.
	SoftDelete(ctx context.Context, userID, taskID uuid.UUID) error

	// ListTrash returns one page of the user's trashed tasks, most recently
	// trashed first.
	ListTrash(ctx context.Context, userID uuid.UUID, page, limit int) (*TaskPage, error)

	// Restore moves a trashed task back to the active set.
	Restore(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)

	// PermanentDelete removes a trashed task irrecoverably.
	PermanentDelete(ctx context.Context, userID, taskID uuid.UUID) error

	// ListDue returns one page of the user's active tasks in the named
	// due-date bucket.
	ListDue(ctx context.Context, userID uuid.UUID, bucket string, page, limit int) (*TaskPage, error)

	// DueStats returns the user's due-date counts.
	DueStats(ctx context.Context, userID uuid.UUID) (store.DueDateStats, error)

	// SetDueDate sets or clears a task's due date.
	SetDueDate(ctx context.Context, userID, taskID uuid.UUID, dueDate *time.Time) (*domain.Task, error)
}

// TaskServiceError wraps unexpected errors from the task service with the
// failing operation for context.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// newTaskServiceError returns known sentinel errors directly and wraps
// everything else in a TaskServiceError.
func newTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotOwned) ||
		errors.Is(err, ErrTaskNotFound) {
		return err
	}

	// Store-level not-found maps to the service-level sentinel.
	if errors.Is(err, store.ErrNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskRepo TaskRepository
	logger   *slog.Logger
	timeFunc func() time.Time
	runInTx  func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewTaskService creates a new TaskService.
// It returns an error if the repository is nil.
func NewTaskService(taskRepo TaskRepository, logger *slog.Logger) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskRepo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskRepo: taskRepo,
		logger:   logger.With("component", "task_service"),
		timeFunc: func() time.Time { return time.Now().UTC() },
		runInTx:  store.RunInTransaction,
	}, nil
}

var _ TaskService = (*taskServiceImpl)(nil)

func (s *taskServiceImpl) Create(
	ctx context.Context,
	userID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	priority, err := parsePriority(input.Priority)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(userID, input.Title, input.Description, priority, input.DueDate, input.Notes)
	if err != nil {
		return nil, NewValidationError(err.Error())
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"user_id", userID)
		return nil, newTaskServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"user_id", userID)
	return task, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.getOwnedActive(ctx, userID, taskID)
}

func (s *taskServiceImpl) List(
	ctx context.Context,
	userID uuid.UUID,
	input ListTasksInput,
) (*TaskPage, error) {
	page, err := normalizePage(input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}

	sort := store.TaskSort{Field: input.SortBy, Order: store.SortDesc}
	if input.SortOrder == "asc" {
		sort.Order = store.SortAsc
	}

	tasks, total, err := s.taskRepo.List(ctx, userID, filter, sort, page)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"user_id", userID)
		return nil, newTaskServiceError("list_tasks", "failed to list tasks", err)
	}

	return s.assemblePage(ctx, userID, tasks, total, page)
}

func (s *taskServiceImpl) Update(
	ctx context.Context,
	userID, taskID uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	if !input.hasFields() {
		return nil, ErrNoUpdateFields
	}

	task, err := s.getOwnedActive(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	changed, err := applyUpdate(task, input)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, ErrNoChanges
	}

	task.UpdatedAt = s.timeFunc()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return nil, newTaskServiceError("update_task", "failed to save task", err)
	}

	return task, nil
}

func (s *taskServiceImpl) Toggle(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.getOwnedActive(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.ToggleStatus()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("failed to toggle task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return nil, newTaskServiceError("toggle_task", "failed to save task", err)
	}

	s.logger.Info("task toggled",
		"task_id", taskID,
		"user_id", userID,
		"status", task.Status)
	return task, nil
}

func (s *taskServiceImpl) BulkSetStatus(
	ctx context.Context,
	userID uuid.UUID,
	taskIDs []uuid.UUID,
	status domain.TaskStatus,
) (int, error) {
	if !status.Valid() {
		return 0, NewValidationError("target_status must be pending or completed")
	}

	ids, err := validateBulkIDs(taskIDs)
	if err != nil {
		return 0, err
	}

	at := s.timeFunc()
	err = s.runInTx(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.taskRepo.WithTx(tx)

		if err := s.resolveOwnedBatch(ctx, txRepo, userID, ids); err != nil {
			return err
		}

		return txRepo.BulkSetStatus(ctx, ids, status, at)
	})
	if err != nil {
		return 0, newTaskServiceError("bulk_set_status", "failed to update tasks", err)
	}

	s.logger.Info("bulk status update applied",
		"user_id", userID,
		"count", len(ids),
		"status", status)
	return len(ids), nil
}

func (s *taskServiceImpl) BulkDelete(
	ctx context.Context,
	userID uuid.UUID,
	taskIDs []uuid.UUID,
) (int, error) {
	ids, err := validateBulkIDs(taskIDs)
	if err != nil {
		return 0, err
	}

	at := s.timeFunc()
	err = s.runInTx(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.taskRepo.WithTx(tx)

		if err := s.resolveOwnedBatch(ctx, txRepo, userID, ids); err != nil {
			return err
		}

		return txRepo.BulkSoftDelete(ctx, ids, at)
	})
	if err != nil {
		return 0, newTaskServiceError("bulk_delete", "failed to delete tasks", err)
	}

	s.logger.Info("bulk delete applied",
		"user_id", userID,
		"count", len(ids))
	return len(ids), nil
}

func (s *taskServiceImpl) SoftDelete(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.getOwnedActive(ctx, userID, taskID)
	if err != nil {
		return err
	}

	task.MoveToTrash(s.timeFunc())
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("failed to soft-delete task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return newTaskServiceError("soft_delete", "failed to save task", err)
	}

	s.logger.Info("task moved to trash",
		"task_id", taskID,
		"user_id", userID)
	return nil
}

func (s *taskServiceImpl) ListTrash(
	ctx context.Context,
	userID uuid.UUID,
	pageNum, limit int,
) (*TaskPage, error) {
	page, err := normalizePage(pageNum, limit)
	if err != nil {
		return nil, err
	}

	tasks, total, err := s.taskRepo.ListTrash(ctx, userID, page)
	if err != nil {
		s.logger.Error("failed to list trash",
			"error", err,
			"user_id", userID)
		return nil, newTaskServiceError("list_trash", "failed to list trashed tasks", err)
	}

	return s.assemblePage(ctx, userID, tasks, total, page)
}

func (s *taskServiceImpl) Restore(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetTrashedByID(ctx, taskID)
	if err != nil {
		return nil, newTaskServiceError("restore", "failed to load task", err)
	}
	if task.UserID != userID {
		return nil, ErrNotOwned
	}

	task.RestoreFromTrash(s.timeFunc())
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("failed to restore task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return nil, newTaskServiceError("restore", "failed to save task", err)
	}

	s.logger.Info("task restored from trash",
		"task_id", taskID,
		"user_id", userID)
	return task, nil
}

func (s *taskServiceImpl) PermanentDelete(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetTrashedByID(ctx, taskID)
	if err != nil {
		return newTaskServiceError("permanent_delete", "failed to load task", err)
	}
	if task.UserID != userID {
		return ErrNotOwned
	}

	if err := s.taskRepo.PermanentDelete(ctx, taskID); err != nil {
		s.logger.Error("failed to permanently delete task",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return newTaskServiceError("permanent_delete", "failed to delete task", err)
	}

	s.logger.Info("task permanently deleted",
		"task_id", taskID,
		"user_id", userID)
	return nil
}

func (s *taskServiceImpl) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	bucket string,
	pageNum, limit int,
) (*TaskPage, error) {
	page, err := normalizePage(pageNum, limit)
	if err != nil {
		return nil, err
	}

	filter, err := dueBucketFilter(bucket, s.timeFunc())
	if err != nil {
		return nil, err
	}

	// Dated buckets read most urgent first; the undated bucket falls back to
	// newest first.
	sort := store.TaskSort{Field: "due_date", Order: store.SortAsc}
	if bucket == DueBucketNoDueDate {
		sort = store.TaskSort{Field: "created_at", Order: store.SortDesc}
	}

	tasks, total, err := s.taskRepo.List(ctx, userID, filter, sort, page)
	if err != nil {
		s.logger.Error("failed to list due tasks",
			"error", err,
			"user_id", userID,
			"bucket", bucket)
		return nil, newTaskServiceError("list_due", "failed to list tasks", err)
	}

	return s.assemblePage(ctx, userID, tasks, total, page)
}

func (s *taskServiceImpl) DueStats(ctx context.Context, userID uuid.UUID) (store.DueDateStats, error) {
	stats, err := s.taskRepo.DueStats(ctx, userID, s.timeFunc())
	if err != nil {
		s.logger.Error("failed to compute due stats",
			"error", err,
			"user_id", userID)
		return store.DueDateStats{}, newTaskServiceError("due_stats", "failed to compute stats", err)
	}
	return stats, nil
}

func (s *taskServiceImpl) SetDueDate(
	ctx context.Context,
	userID, taskID uuid.UUID,
	dueDate *time.Time,
) (*domain.Task, error) {
	task, err := s.getOwnedActive(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.DueDate = dueDate
	task.UpdatedAt = s.timeFunc()
	if err := s.taskRepo.Update(ctx, task); err != nil {
		s.logger.Error("failed to set due date",
			"error", err,
			"task_id", taskID,
			"user_id", userID)
		return nil, newTaskServiceError("set_due_date", "failed to save task", err)
	}

	return task, nil
}

// getOwnedActive loads an active task and verifies ownership. A task owned by
// another user yields ErrNotOwned, never ErrTaskNotFound, so the two cases
// stay distinguishable to the API layer.
func (s *taskServiceImpl) getOwnedActive(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, newTaskServiceError("get_task", "failed to load task", err)
	}
	if task.UserID != userID {
		return nil, ErrNotOwned
	}
	return task, nil
}

// resolveOwnedBatch loads every requested task and fails the whole batch if
// any id is missing, trashed, or owned by another user.
func (s *taskServiceImpl) resolveOwnedBatch(
	ctx context.Context,
	repo store.TaskStore,
	userID uuid.UUID,
	ids []uuid.UUID,
) error {
	tasks, err := repo.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve task ids: %w", err)
	}

	for _, task := range tasks {
		if task.UserID != userID {
			return ErrNotOwned
		}
	}

	if len(tasks) != len(ids) {
		return ErrTaskNotFound
	}

	return nil
}

func (s *taskServiceImpl) assemblePage(
	ctx context.Context,
	userID uuid.UUID,
	tasks []*domain.Task,
	total int,
	page store.Page,
) (*TaskPage, error) {
	meta, err := s.taskRepo.Metadata(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load task metadata",
			"error", err,
			"user_id", userID)
		return nil, newTaskServiceError("list_tasks", "failed to load task counts", err)
	}

	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return &TaskPage{
		Tasks:      tasks,
		Pagination: paginate(page, total),
		Metadata:   meta,
	}, nil
}

// hasFields reports whether the update provides at least one field.
func (in UpdateTaskInput) hasFields() bool {
	return in.Title != nil ||
		in.Description != nil ||
		in.Priority != nil ||
		in.DueDate != nil ||
		in.ClearDue ||
		in.Notes != nil ||
		in.ManualOrder != nil
}

// applyUpdate copies provided fields onto the task and reports whether any
// value actually changed.
func applyUpdate(task *domain.Task, in UpdateTaskInput) (bool, error) {
	changed := false

	if in.Title != nil {
		if err := domain.ValidateTitle(*in.Title); err != nil {
			return false, NewValidationError(err.Error())
		}
		title := strings.TrimSpace(*in.Title)
		if task.Title != title {
			task.Title = title
			changed = true
		}
	}

	if in.Description != nil {
		desc := optionalString(*in.Description)
		if !equalStringPtr(task.Description, desc) {
			task.Description = desc
			changed = true
		}
	}

	if in.Priority != nil {
		priority, err := parsePriority(*in.Priority)
		if err != nil {
			return false, err
		}
		if task.Priority != priority {
			task.Priority = priority
			changed = true
		}
	}

	if in.ClearDue {
		if task.DueDate != nil {
			task.DueDate = nil
			changed = true
		}
	} else if in.DueDate != nil {
		if !equalTimePtr(task.DueDate, in.DueDate) {
			task.DueDate = in.DueDate
			changed = true
		}
	}

	if in.Notes != nil {
		notes := optionalString(*in.Notes)
		if !equalStringPtr(task.Notes, notes) {
			task.Notes = notes
			changed = true
		}
	}

	if in.ManualOrder != nil {
		if task.ManualOrder == nil || *task.ManualOrder != *in.ManualOrder {
			task.ManualOrder = in.ManualOrder
			changed = true
		}
	}

	if err := task.Validate(); err != nil {
		return false, NewValidationError(err.Error())
	}

	return changed, nil
}

func parsePriority(raw string) (domain.TaskPriority, error) {
	if raw == "" {
		return domain.TaskPriorityMedium, nil
	}
	priority := domain.TaskPriority(raw)
	if !priority.Valid() {
		return "", NewValidationError("priority must be one of: low, medium, high")
	}
	return priority, nil
}

func parseStatus(raw string) (domain.TaskStatus, error) {
	status := domain.TaskStatus(raw)
	if !status.Valid() {
		return "", NewValidationError("status must be pending or completed")
	}
	return status, nil
}

func buildFilter(input ListTasksInput) (store.TaskFilter, error) {
	var filter store.TaskFilter

	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return store.TaskFilter{}, err
		}
		filter.Status = &status
	}

	if input.Priority != "" {
		priority, err := parsePriority(input.Priority)
		if err != nil {
			return store.TaskFilter{}, err
		}
		filter.Priority = &priority
	}

	filter.Search = input.Search
	filter.DueFrom = input.DueFrom
	filter.DueTo = input.DueTo
	filter.HasDueDate = input.HasDueDate

	return filter, nil
}

// dueBucketFilter translates a bucket name into a TaskFilter against the
// current instant. Day boundaries are UTC: start at 00:00:00.000, end at
// 23:59:59.999999.
func dueBucketFilter(bucket string, now time.Time) (store.TaskFilter, error) {
	now = now.UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.Add(24*time.Hour - time.Microsecond)

	hasDue := true

	switch bucket {
	case DueBucketOverdue:
		before := todayStart
		return store.TaskFilter{HasDueDate: &hasDue, DueBefore: &before}, nil
	case DueBucketToday:
		from, to := todayStart, todayEnd
		return store.TaskFilter{DueFrom: &from, DueTo: &to}, nil
	case DueBucketTomorrow:
		from := todayStart.AddDate(0, 0, 1)
		to := todayEnd.AddDate(0, 0, 1)
		return store.TaskFilter{DueFrom: &from, DueTo: &to}, nil
	case DueBucketThisWeek:
		from := todayStart
		before := todayStart.AddDate(0, 0, 7)
		return store.TaskFilter{DueFrom: &from, DueBefore: &before}, nil
	case DueBucketNextWeek:
		from := todayStart.AddDate(0, 0, 7)
		before := todayStart.AddDate(0, 0, 14)
		return store.TaskFilter{DueFrom: &from, DueBefore: &before}, nil
	case DueBucketNoDueDate:
		noDue := false
		return store.TaskFilter{HasDueDate: &noDue}, nil
	default:
		return store.TaskFilter{}, ErrInvalidDueBucket
	}
}

func normalizePage(page, limit int) (store.Page, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}

	if page < 1 {
		return store.Page{}, ErrInvalidPage
	}
	if limit < 1 || limit > MaxLimit {
		return store.Page{}, ErrInvalidLimit
	}

	return store.Page{Number: page, Limit: limit}, nil
}

func paginate(page store.Page, total int) PageInfo {
	totalPages := 0
	if total > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}

	return PageInfo{
		Page:       page.Number,
		Limit:      page.Limit,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page.Number < totalPages,
		HasPrev:    page.Number > 1 && total > 0,
	}
}

func validateBulkIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, ErrBulkIDsEmpty
	}
	if len(ids) > MaxBulkIDs {
		return nil, ErrBulkIDsTooMany
	}

	// Duplicates collapse so the count check against resolved rows holds.
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	return unique, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
