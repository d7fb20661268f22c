package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/store"
)

func newTestService(t *testing.T, repo *fakeTaskRepo) *taskServiceImpl {
	t.Helper()
	svc, err := NewTaskService(repo, nil)
	require.NoError(t, err)
	return svc.(*taskServiceImpl)
}

func mustCreateTask(t *testing.T, repo *fakeTaskRepo, userID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(userID, title, nil, domain.TaskPriorityMedium, nil, nil)
	require.NoError(t, err)
	repo.add(task)
	return task
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates task with defaults", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		userID := uuid.New()

		task, err := svc.Create(context.Background(), userID, CreateTaskInput{Title: "  write report  "})
		require.NoError(t, err)

		assert.Equal(t, "write report", task.Title)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
		assert.Equal(t, userID, task.UserID)

		stored, err := repo.GetByID(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Title, stored.Title)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, newFakeTaskRepo())

		_, err := svc.Create(context.Background(), uuid.New(), CreateTaskInput{Title: "   "})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(t, newFakeTaskRepo())

		_, err := svc.Create(context.Background(), uuid.New(), CreateTaskInput{
			Title:    "task",
			Priority: "urgent",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestTaskServiceGetOwnership(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()
	task := mustCreateTask(t, repo, owner, "mine")

	t.Run("owner can read", func(t *testing.T) {
		t.Parallel()
		got, err := svc.Get(context.Background(), owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
	})

	t.Run("other user gets permission error", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Get(context.Background(), uuid.New(), task.ID)
		assert.ErrorIs(t, err, ErrNotOwned)
	})

	t.Run("unknown id gets not found", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Get(context.Background(), owner, uuid.New())
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("no fields provided", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		owner := uuid.New()
		task := mustCreateTask(t, repo, owner, "task")

		_, err := svc.Update(context.Background(), owner, task.ID, UpdateTaskInput{})
		assert.ErrorIs(t, err, ErrNoUpdateFields)
	})

	t.Run("no actual change", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		owner := uuid.New()
		task := mustCreateTask(t, repo, owner, "task")

		same := task.Title
		_, err := svc.Update(context.Background(), owner, task.ID, UpdateTaskInput{Title: &same})
		assert.ErrorIs(t, err, ErrNoChanges)
	})

	t.Run("applies changed fields", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		owner := uuid.New()
		task := mustCreateTask(t, repo, owner, "task")

		newTitle := "renamed"
		high := "high"
		updated, err := svc.Update(context.Background(), owner, task.ID, UpdateTaskInput{
			Title:    &newTitle,
			Priority: &high,
		})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, domain.TaskPriorityHigh, updated.Priority)
		assert.True(t, updated.UpdatedAt.After(task.UpdatedAt) || updated.UpdatedAt.Equal(task.UpdatedAt))
	})

	t.Run("title is trimmed before comparison", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		owner := uuid.New()
		task := mustCreateTask(t, repo, owner, "task")

		padded := "  renamed  "
		updated, err := svc.Update(context.Background(), owner, task.ID, UpdateTaskInput{Title: &padded})
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)

		// The same title with different padding is not a change.
		repadded := "   renamed "
		_, err = svc.Update(context.Background(), owner, task.ID, UpdateTaskInput{Title: &repadded})
		assert.ErrorIs(t, err, ErrNoChanges)
	})

	t.Run("invalid title is a validation error", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		owner := uuid.New()
		task := mustCreateTask(t, repo, owner, "task")

		blank := "   "
		_, err := svc.Update(context.Background(), owner, task.ID, UpdateTaskInput{Title: &blank})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("clearing description counts as a change", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		owner := uuid.New()
		desc := "something"
		task, err := domain.NewTask(owner, "task", &desc, domain.TaskPriorityMedium, nil, nil)
		require.NoError(t, err)
		repo.add(task)

		empty := ""
		updated, err := svc.Update(context.Background(), owner, task.ID, UpdateTaskInput{Description: &empty})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
	})

	t.Run("ownership is checked before fields", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newTestService(t, repo)
		task := mustCreateTask(t, repo, uuid.New(), "task")

		title := "stolen"
		_, err := svc.Update(context.Background(), uuid.New(), task.ID, UpdateTaskInput{Title: &title})
		assert.ErrorIs(t, err, ErrNotOwned)
	})
}

func TestTaskServiceToggle(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()
	task := mustCreateTask(t, repo, owner, "toggle me")

	toggled, err := svc.Toggle(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, toggled.Status)
	require.NotNil(t, toggled.CompletedAt)

	back, err := svc.Toggle(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, back.Status)
	assert.Nil(t, back.CompletedAt)
}

func TestTaskServiceTrashLifecycle(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()
	task := mustCreateTask(t, repo, owner, "ephemeral")

	require.NoError(t, svc.SoftDelete(context.Background(), owner, task.ID))

	// Trashed tasks disappear from the active set.
	_, err := svc.Get(context.Background(), owner, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	page, err := svc.ListTrash(context.Background(), owner, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, task.ID, page.Tasks[0].ID)

	restored, err := svc.Restore(context.Background(), owner, task.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.DeletedAt)

	// Restore on an active task is a not-found.
	_, err = svc.Restore(context.Background(), owner, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskServicePermanentDelete(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()
	task := mustCreateTask(t, repo, owner, "doomed")

	// Active tasks cannot be deleted permanently.
	err := svc.PermanentDelete(context.Background(), owner, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	require.NoError(t, svc.SoftDelete(context.Background(), owner, task.ID))

	// Another user's attempt is a permission error.
	err = svc.PermanentDelete(context.Background(), uuid.New(), task.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	require.NoError(t, svc.PermanentDelete(context.Background(), owner, task.ID))

	page, err := svc.ListTrash(context.Background(), owner, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Tasks)
}

func TestTaskServiceListPagination(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()
	for i := 0; i < 5; i++ {
		mustCreateTask(t, repo, owner, "task")
	}

	page, err := svc.List(context.Background(), owner, ListTasksInput{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Tasks, 2)
	assert.Equal(t, 5, page.Pagination.TotalItems)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
	assert.Equal(t, 5, page.Metadata.TotalPending)

	last, err := svc.List(context.Background(), owner, ListTasksInput{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, last.Tasks, 1)
	assert.False(t, last.Pagination.HasNext)
	assert.True(t, last.Pagination.HasPrev)
}

func TestTaskServiceListValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeTaskRepo())

	cases := []struct {
		name  string
		input ListTasksInput
		want  error
	}{
		{"page below one", ListTasksInput{Page: -1}, ErrInvalidPage},
		{"limit above max", ListTasksInput{Limit: 101}, ErrInvalidLimit},
		{"negative limit", ListTasksInput{Limit: -5}, ErrInvalidLimit},
		{"bad status", ListTasksInput{Status: "done"}, ErrValidation},
		{"bad priority", ListTasksInput{Priority: "extreme"}, ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.List(context.Background(), uuid.New(), tc.input)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTaskServiceBulkValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeTaskRepo())
	userID := uuid.New()

	t.Run("empty id list", func(t *testing.T) {
		t.Parallel()
		_, err := svc.BulkSetStatus(context.Background(), userID, nil, domain.TaskStatusCompleted)
		assert.ErrorIs(t, err, ErrBulkIDsEmpty)
	})

	t.Run("too many ids", func(t *testing.T) {
		t.Parallel()
		ids := make([]uuid.UUID, MaxBulkIDs+1)
		for i := range ids {
			ids[i] = uuid.New()
		}
		_, err := svc.BulkDelete(context.Background(), userID, ids)
		assert.ErrorIs(t, err, ErrBulkIDsTooMany)
	})

	t.Run("invalid target status", func(t *testing.T) {
		t.Parallel()
		_, err := svc.BulkSetStatus(context.Background(), userID, []uuid.UUID{uuid.New()}, "archived")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		unique, err := validateBulkIDs([]uuid.UUID{id, id, id})
		require.NoError(t, err)
		assert.Len(t, unique, 1)
	})
}

// newBulkTestService swaps the transaction runner for one that invokes the
// body directly, so the fake repo can stand in for the database.
func newBulkTestService(t *testing.T, repo *fakeTaskRepo) *taskServiceImpl {
	t.Helper()
	svc := newTestService(t, repo)
	svc.runInTx = func(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
		return fn(ctx, nil)
	}
	return svc
}

func TestTaskServiceBulkSetStatus(t *testing.T) {
	t.Parallel()

	t.Run("updates every task", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newBulkTestService(t, repo)
		owner := uuid.New()
		a := mustCreateTask(t, repo, owner, "task a")
		b := mustCreateTask(t, repo, owner, "task b")

		count, err := svc.BulkSetStatus(
			context.Background(), owner, []uuid.UUID{a.ID, b.ID}, domain.TaskStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		for _, id := range []uuid.UUID{a.ID, b.ID} {
			task, err := repo.GetByID(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, domain.TaskStatusCompleted, task.Status)
			assert.NotNil(t, task.CompletedAt)
		}
	})

	t.Run("foreign id fails the batch untouched", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newBulkTestService(t, repo)
		owner := uuid.New()
		mine := mustCreateTask(t, repo, owner, "mine")
		theirs := mustCreateTask(t, repo, uuid.New(), "theirs")

		_, err := svc.BulkSetStatus(
			context.Background(), owner, []uuid.UUID{mine.ID, theirs.ID}, domain.TaskStatusCompleted)
		require.ErrorIs(t, err, ErrNotOwned)

		task, err := repo.GetByID(context.Background(), mine.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
	})

	t.Run("missing id fails the batch untouched", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newBulkTestService(t, repo)
		owner := uuid.New()
		mine := mustCreateTask(t, repo, owner, "mine")

		_, err := svc.BulkSetStatus(
			context.Background(), owner, []uuid.UUID{mine.ID, uuid.New()}, domain.TaskStatusCompleted)
		require.ErrorIs(t, err, ErrTaskNotFound)

		task, err := repo.GetByID(context.Background(), mine.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
	})

	t.Run("trashed id counts as missing", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newBulkTestService(t, repo)
		owner := uuid.New()
		active := mustCreateTask(t, repo, owner, "active")
		trashed := mustCreateTask(t, repo, owner, "trashed")
		require.NoError(t, svc.SoftDelete(context.Background(), owner, trashed.ID))

		_, err := svc.BulkSetStatus(
			context.Background(), owner, []uuid.UUID{active.ID, trashed.ID}, domain.TaskStatusCompleted)
		require.ErrorIs(t, err, ErrTaskNotFound)

		task, err := repo.GetByID(context.Background(), active.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
	})
}

func TestTaskServiceBulkDelete(t *testing.T) {
	t.Parallel()

	t.Run("trashes every task", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newBulkTestService(t, repo)
		owner := uuid.New()
		a := mustCreateTask(t, repo, owner, "task a")
		b := mustCreateTask(t, repo, owner, "task b")

		count, err := svc.BulkDelete(context.Background(), owner, []uuid.UUID{a.ID, b.ID})
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		for _, id := range []uuid.UUID{a.ID, b.ID} {
			_, err := repo.GetByID(context.Background(), id)
			assert.ErrorIs(t, err, store.ErrTaskNotFound)
			trashed, err := repo.GetTrashedByID(context.Background(), id)
			require.NoError(t, err)
			assert.NotNil(t, trashed.DeletedAt)
		}
	})

	t.Run("missing id leaves the batch untouched", func(t *testing.T) {
		t.Parallel()
		repo := newFakeTaskRepo()
		svc := newBulkTestService(t, repo)
		owner := uuid.New()
		mine := mustCreateTask(t, repo, owner, "mine")

		_, err := svc.BulkDelete(context.Background(), owner, []uuid.UUID{mine.ID, uuid.New()})
		require.ErrorIs(t, err, ErrTaskNotFound)

		task, err := repo.GetByID(context.Background(), mine.ID)
		require.NoError(t, err)
		assert.Nil(t, task.DeletedAt)
	})
}

func TestDueBucketFilter(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	todayStart := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.Add(24*time.Hour - time.Microsecond)

	t.Run("overdue excludes undated and today", func(t *testing.T) {
		t.Parallel()
		filter, err := dueBucketFilter(DueBucketOverdue, now)
		require.NoError(t, err)
		require.NotNil(t, filter.HasDueDate)
		assert.True(t, *filter.HasDueDate)
		require.NotNil(t, filter.DueBefore)
		assert.True(t, filter.DueBefore.Equal(todayStart))
	})

	t.Run("today spans the whole day", func(t *testing.T) {
		t.Parallel()
		filter, err := dueBucketFilter(DueBucketToday, now)
		require.NoError(t, err)
		require.NotNil(t, filter.DueFrom)
		require.NotNil(t, filter.DueTo)
		assert.True(t, filter.DueFrom.Equal(todayStart))
		assert.True(t, filter.DueTo.Equal(todayEnd))
	})

	t.Run("this week is a half-open seven day window", func(t *testing.T) {
		t.Parallel()
		filter, err := dueBucketFilter(DueBucketThisWeek, now)
		require.NoError(t, err)
		require.NotNil(t, filter.DueFrom)
		require.NotNil(t, filter.DueBefore)
		assert.True(t, filter.DueFrom.Equal(todayStart))
		assert.True(t, filter.DueBefore.Equal(todayStart.AddDate(0, 0, 7)))
	})

	t.Run("next week follows this week exactly", func(t *testing.T) {
		t.Parallel()
		filter, err := dueBucketFilter(DueBucketNextWeek, now)
		require.NoError(t, err)
		assert.True(t, filter.DueFrom.Equal(todayStart.AddDate(0, 0, 7)))
		assert.True(t, filter.DueBefore.Equal(todayStart.AddDate(0, 0, 14)))
	})

	t.Run("no due date", func(t *testing.T) {
		t.Parallel()
		filter, err := dueBucketFilter(DueBucketNoDueDate, now)
		require.NoError(t, err)
		require.NotNil(t, filter.HasDueDate)
		assert.False(t, *filter.HasDueDate)
	})

	t.Run("unknown bucket", func(t *testing.T) {
		t.Parallel()
		_, err := dueBucketFilter("someday", now)
		assert.ErrorIs(t, err, ErrInvalidDueBucket)
	})
}

func TestTaskServiceListDue(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()

	now := svc.timeFunc()
	yesterday := now.AddDate(0, 0, -1)
	inThreeDays := now.AddDate(0, 0, 3)

	overdue, err := domain.NewTask(owner, "late", nil, domain.TaskPriorityHigh, &yesterday, nil)
	require.NoError(t, err)
	repo.add(overdue)

	upcoming, err := domain.NewTask(owner, "soon", nil, domain.TaskPriorityLow, &inThreeDays, nil)
	require.NoError(t, err)
	repo.add(upcoming)

	undated := mustCreateTask(t, repo, owner, "someday")

	page, err := svc.ListDue(context.Background(), owner, DueBucketOverdue, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, overdue.ID, page.Tasks[0].ID)

	page, err = svc.ListDue(context.Background(), owner, DueBucketThisWeek, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, upcoming.ID, page.Tasks[0].ID)

	page, err = svc.ListDue(context.Background(), owner, DueBucketNoDueDate, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Tasks, 1)
	assert.Equal(t, undated.ID, page.Tasks[0].ID)

	_, err = svc.ListDue(context.Background(), owner, "eventually", 1, 20)
	assert.ErrorIs(t, err, ErrInvalidDueBucket)
}

func TestTaskServiceDueStats(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()

	now := svc.timeFunc()
	yesterday := now.AddDate(0, 0, -1)
	today := now
	inTwoDays := now.AddDate(0, 0, 2)

	for _, due := range []*time.Time{&yesterday, &today, &inTwoDays, nil} {
		task, err := domain.NewTask(owner, "task", nil, domain.TaskPriorityMedium, due, nil)
		require.NoError(t, err)
		repo.add(task)
	}

	stats, err := svc.DueStats(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, 1, stats.DueTodayCount)
	assert.Equal(t, 2, stats.DueThisWeekCount)
	assert.Equal(t, 1, stats.NoDueDateCount)
}

func TestTaskServiceSetDueDate(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()
	task := mustCreateTask(t, repo, owner, "dated")

	due := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated, err := svc.SetDueDate(context.Background(), owner, task.ID, &due)
	require.NoError(t, err)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))

	cleared, err := svc.SetDueDate(context.Background(), owner, task.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)
}

func TestTaskServiceListStoreError(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	repo.updateErr = store.ErrTransactionFailed
	svc := newTestService(t, repo)
	owner := uuid.New()
	task := mustCreateTask(t, repo, owner, "task")

	_, err := svc.Toggle(context.Background(), owner, task.ID)
	require.Error(t, err)

	var svcErr *TaskServiceError
	assert.ErrorAs(t, err, &svcErr)
}
