package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/platform/logger"
	"github.com/tasknest/tasknest/internal/store"
)

// taskColumns is the canonical column list scanned by scanTask.
const taskColumns = `id, user_id, title, description, status, priority, due_date,
	notes, manual_order, created_at, updated_at, completed_at, deleted_at`

// sortableColumns whitelists the columns a listing may be sorted by.
// Anything else falls back to created_at.
var sortableColumns = map[string]string{
	"created_at":   "created_at",
	"updated_at":   "updated_at",
	"due_date":     "due_date",
	"completed_at": "completed_at",
	"title":        "title",
	"status":       "status",
	"priority":     "priority",
	"manual_order": "manual_order",
}

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It saves a new task to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the user ID doesn't exist (foreign key
// violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, user_id, title, description, status, priority,
			due_date, notes, manual_order, created_at, updated_at, completed_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.Notes,
		task.ManualOrder,
		task.CreatedAt,
		task.UpdatedAt,
		task.CompletedAt,
		task.DeletedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.String("task_id", task.ID.String()),
				slog.String("user_id", task.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, task.UserID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// It retrieves an active task by its unique ID.
// Returns store.ErrTaskNotFound if the task does not exist or is trashed.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.getByID(ctx, id, false)
}

// GetTrashedByID implements store.TaskStore.GetTrashedByID
// Returns store.ErrTaskNotFound if the task does not exist or is not trashed.
func (s *PostgresTaskStore) GetTrashedByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.getByID(ctx, id, true)
}

func (s *PostgresTaskStore) getByID(ctx context.Context, id uuid.UUID, trashed bool) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deletedClause := "deleted_at IS NULL"
	if trashed {
		deletedClause = "deleted_at IS NOT NULL"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE id = $1 AND %s
	`, taskColumns, deletedClause)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.Bool("trashed", trashed))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List
// It returns one page of the user's active tasks matching the filter plus the
// total number of matching rows.
func (s *PostgresTaskStore) List(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
	sort store.TaskSort,
	page store.Page,
) ([]*domain.Task, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildTaskFilter(userID, filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM tasks WHERE " + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, taskColumns, where, orderClause(sort), len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())

	tasks, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListTrash implements store.TaskStore.ListTrash
// Trashed tasks are ordered by deletion time, most recently trashed first.
func (s *PostgresTaskStore) ListTrash(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Task, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND deleted_at IS NOT NULL`
	if err := s.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		log.Error("failed to count trashed tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, MapError(err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE user_id = $1 AND deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
		LIMIT $2 OFFSET $3
	`, taskColumns)

	tasks, err := s.queryTasks(ctx, query, userID, page.Limit, page.Offset())
	if err != nil {
		log.Error("failed to list trashed tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByIDs implements store.TaskStore.ListByIDs
// Missing or trashed IDs are simply absent from the result.
func (s *PostgresTaskStore) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE id IN (%s) AND deleted_at IS NULL
	`, taskColumns, strings.Join(placeholders, ", "))

	return s.queryTasks(ctx, query, args...)
}

// Update implements store.TaskStore.Update
// It writes all mutable columns back to the store, including status,
// completed_at and deleted_at, so the same path serves toggles, soft deletes
// and restores.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4,
			due_date = $5, notes = $6, manual_order = $7, updated_at = $8,
			completed_at = $9, deleted_at = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.Notes,
		task.ManualOrder,
		task.UpdatedAt,
		task.CompletedAt,
		task.DeletedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return err
	}

	log.Debug("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// BulkSetStatus implements store.TaskStore.BulkSetStatus
// completed_at is stamped for completions and cleared otherwise.
// The caller is responsible for resolving and validating every ID first and
// for running this inside a transaction.
func (s *PostgresTaskStore) BulkSetStatus(
	ctx context.Context,
	ids []uuid.UUID,
	status domain.TaskStatus,
	at time.Time,
) error {
	if len(ids) == 0 {
		return nil
	}

	var completedAt *time.Time
	if status == domain.TaskStatusCompleted {
		completedAt = &at
	}

	placeholders := make([]string, len(ids))
	args := []any{status, completedAt, at}
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET status = $1, completed_at = $2, updated_at = $3
		WHERE id IN (%s) AND deleted_at IS NULL
	`, strings.Join(placeholders, ", "))

	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// BulkSoftDelete implements store.TaskStore.BulkSoftDelete
func (s *PostgresTaskStore) BulkSoftDelete(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := []any{at}
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, id)
	}

	query := fmt.Sprintf(`
		UPDATE tasks
		SET deleted_at = $1, updated_at = $1
		WHERE id IN (%s) AND deleted_at IS NULL
	`, strings.Join(placeholders, ", "))

	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return MapError(err)
	}
	return nil
}

// PermanentDelete implements store.TaskStore.PermanentDelete
// Only rows already in the trash can be removed permanently.
func (s *PostgresTaskStore) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND deleted_at IS NOT NULL`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to permanently delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return err
	}

	log.Info("task permanently deleted", slog.String("task_id", id.String()))
	return nil
}

// Metadata implements store.TaskStore.Metadata
// All four counts are computed in a single scan using filtered aggregates.
func (s *PostgresTaskStore) Metadata(ctx context.Context, userID uuid.UUID) (store.TaskMetadata, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'pending'),
			COUNT(*) FILTER (WHERE deleted_at IS NULL AND status = 'completed'),
			COUNT(*) FILTER (WHERE deleted_at IS NULL),
			COUNT(*) FILTER (WHERE deleted_at IS NOT NULL)
		FROM tasks
		WHERE user_id = $1
	`

	var meta store.TaskMetadata
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&meta.TotalPending,
		&meta.TotalCompleted,
		&meta.TotalActive,
		&meta.TotalDeleted,
	)
	if err != nil {
		return store.TaskMetadata{}, MapError(err)
	}

	return meta, nil
}

// DueStats implements store.TaskStore.DueStats
// Day boundaries are derived from the given instant in UTC: day start at
// 00:00:00.000 and day end at 23:59:59.999999. A task due at exactly the
// day's end counts as due today, not overdue.
func (s *PostgresTaskStore) DueStats(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (store.DueDateStats, error) {
	todayStart, todayEnd := DayBounds(now)
	weekEnd := todayStart.AddDate(0, 0, 7)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE due_date IS NOT NULL AND due_date < $2),
			COUNT(*) FILTER (WHERE due_date >= $2 AND due_date <= $3),
			COUNT(*) FILTER (WHERE due_date >= $2 AND due_date < $4),
			COUNT(*) FILTER (WHERE due_date IS NULL)
		FROM tasks
		WHERE user_id = $1 AND deleted_at IS NULL
	`

	var stats store.DueDateStats
	err := s.db.QueryRowContext(ctx, query, userID, todayStart, todayEnd, weekEnd).Scan(
		&stats.OverdueCount,
		&stats.DueTodayCount,
		&stats.DueThisWeekCount,
		&stats.NoDueDateCount,
	)
	if err != nil {
		return store.DueDateStats{}, MapError(err)
	}

	return stats, nil
}

// DayBounds returns the UTC start (00:00:00.000) and end (23:59:59.999999)
// of the day containing the given instant.
func DayBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Microsecond)
	return start, end
}

// buildTaskFilter assembles the WHERE clause for an active-task listing.
// The deleted_at IS NULL condition is unconditional: trashed tasks are
// structurally unreachable from this path.
func buildTaskFilter(userID uuid.UUID, filter store.TaskFilter) (string, []any) {
	conds := []string{"user_id = $1", "deleted_at IS NULL"}
	args := []any{userID}

	next := func() int { return len(args) + 1 }

	if filter.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", next()))
		args = append(args, *filter.Status)
	}

	if filter.Priority != nil {
		conds = append(conds, fmt.Sprintf("priority = $%d", next()))
		args = append(args, *filter.Priority)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		titleIdx := next()
		args = append(args, pattern)
		descIdx := next()
		args = append(args, pattern)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d)", titleIdx, descIdx))
	}

	if filter.DueFrom != nil {
		conds = append(conds, fmt.Sprintf("due_date >= $%d", next()))
		args = append(args, *filter.DueFrom)
	}

	if filter.DueTo != nil {
		conds = append(conds, fmt.Sprintf("due_date <= $%d", next()))
		args = append(args, *filter.DueTo)
	}

	if filter.DueBefore != nil {
		conds = append(conds, fmt.Sprintf("due_date < $%d", next()))
		args = append(args, *filter.DueBefore)
	}

	if filter.HasDueDate != nil {
		if *filter.HasDueDate {
			conds = append(conds, "due_date IS NOT NULL")
		} else {
			conds = append(conds, "due_date IS NULL")
		}
	}

	return strings.Join(conds, " AND "), args
}

// orderClause maps a TaskSort onto a safe ORDER BY clause. Unrecognized
// fields fall back to created_at; due_date sorts push NULLs last so undated
// tasks trail dated ones in either direction.
func orderClause(sort store.TaskSort) string {
	column, ok := sortableColumns[sort.Field]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if sort.Order == store.SortAsc {
		direction = "ASC"
	}

	if column == "due_date" {
		return fmt.Sprintf("due_date %s NULLS LAST, created_at DESC", direction)
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// rowScanner matches both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status, priority string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&status,
		&priority,
		&task.DueDate,
		&task.Notes,
		&task.ManualOrder,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CompletedAt,
		&task.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	return &task, nil
}

func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}
