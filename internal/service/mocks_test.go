package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/store"
)

// fakeTaskRepo is an in-memory TaskRepository used by the service tests.
// It implements the subset of query semantics the service depends on.
type fakeTaskRepo struct {
	tasks map[uuid.UUID]*domain.Task

	// createErr, when set, is returned from Create.
	createErr error
	// updateErr, when set, is returned from Update.
	updateErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]*domain.Task)}
}

var _ TaskRepository = (*fakeTaskRepo)(nil)

func (f *fakeTaskRepo) add(task *domain.Task) {
	clone := *task
	f.tasks[task.ID] = &clone
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(task)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.DeletedAt != nil {
		return nil, store.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) GetTrashedByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.DeletedAt == nil {
		return nil, store.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (f *fakeTaskRepo) List(
	ctx context.Context,
	userID uuid.UUID,
	filter store.TaskFilter,
	s store.TaskSort,
	page store.Page,
) ([]*domain.Task, int, error) {
	var matched []*domain.Task
	for _, task := range f.tasks {
		if task.UserID != userID || task.DeletedAt != nil {
			continue
		}
		if !matchesFilter(task, filter) {
			continue
		}
		clone := *task
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matchesFilter(task *domain.Task, filter store.TaskFilter) bool {
	if filter.Status != nil && task.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && task.Priority != *filter.Priority {
		return false
	}
	if filter.HasDueDate != nil {
		if *filter.HasDueDate != (task.DueDate != nil) {
			return false
		}
	}
	if filter.DueFrom != nil && (task.DueDate == nil || task.DueDate.Before(*filter.DueFrom)) {
		return false
	}
	if filter.DueTo != nil && (task.DueDate == nil || task.DueDate.After(*filter.DueTo)) {
		return false
	}
	if filter.DueBefore != nil && (task.DueDate == nil || !task.DueDate.Before(*filter.DueBefore)) {
		return false
	}
	return true
}

func (f *fakeTaskRepo) ListTrash(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) ([]*domain.Task, int, error) {
	var matched []*domain.Task
	for _, task := range f.tasks {
		if task.UserID != userID || task.DeletedAt == nil {
			continue
		}
		clone := *task
		matched = append(matched, &clone)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].DeletedAt.After(*matched[j].DeletedAt)
	})

	total := len(matched)
	start := page.Offset()
	if start > total {
		start = total
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *fakeTaskRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Task, error) {
	var matched []*domain.Task
	for _, id := range ids {
		if task, ok := f.tasks[id]; ok && task.DeletedAt == nil {
			clone := *task
			matched = append(matched, &clone)
		}
	}
	return matched, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	f.add(task)
	return nil
}

func (f *fakeTaskRepo) BulkSetStatus(
	ctx context.Context,
	ids []uuid.UUID,
	status domain.TaskStatus,
	at time.Time,
) error {
	for _, id := range ids {
		if task, ok := f.tasks[id]; ok && task.DeletedAt == nil {
			task.SetStatus(status, at)
		}
	}
	return nil
}

func (f *fakeTaskRepo) BulkSoftDelete(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	for _, id := range ids {
		if task, ok := f.tasks[id]; ok && task.DeletedAt == nil {
			task.MoveToTrash(at)
		}
	}
	return nil
}

func (f *fakeTaskRepo) PermanentDelete(ctx context.Context, id uuid.UUID) error {
	task, ok := f.tasks[id]
	if !ok || task.DeletedAt == nil {
		return store.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskRepo) Metadata(ctx context.Context, userID uuid.UUID) (store.TaskMetadata, error) {
	var meta store.TaskMetadata
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		if task.DeletedAt != nil {
			meta.TotalDeleted++
			continue
		}
		meta.TotalActive++
		if task.Status == domain.TaskStatusCompleted {
			meta.TotalCompleted++
		} else {
			meta.TotalPending++
		}
	}
	return meta, nil
}

func (f *fakeTaskRepo) DueStats(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (store.DueDateStats, error) {
	now = now.UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.Add(24*time.Hour - time.Microsecond)
	weekEnd := todayStart.AddDate(0, 0, 7)

	var stats store.DueDateStats
	for _, task := range f.tasks {
		if task.UserID != userID || task.DeletedAt != nil {
			continue
		}
		switch {
		case task.DueDate == nil:
			stats.NoDueDateCount++
		case task.DueDate.Before(todayStart):
			stats.OverdueCount++
		default:
			if !task.DueDate.After(todayEnd) {
				stats.DueTodayCount++
			}
			if task.DueDate.Before(weekEnd) {
				stats.DueThisWeekCount++
			}
		}
	}
	return stats, nil
}

func (f *fakeTaskRepo) WithTx(tx *sql.Tx) store.TaskStore {
	return f
}

func (f *fakeTaskRepo) DB() *sql.DB {
	return nil
}
