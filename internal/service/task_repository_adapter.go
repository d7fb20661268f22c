package service

import (
	"database/sql"

	"github.com/tasknest/tasknest/internal/store"
)

// TaskRepositoryAdapter adapts a store.TaskStore to the service-level
// TaskRepository by pairing it with the connection pool used for
// transactional flows.
type TaskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// NewTaskRepositoryAdapter creates an adapter that implements TaskRepository
// by delegating to a store.TaskStore implementation.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) *TaskRepositoryAdapter {
	return &TaskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

// DB returns the underlying database connection pool.
func (a *TaskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// Ensure TaskRepositoryAdapter implements service.TaskRepository
var _ TaskRepository = (*TaskRepositoryAdapter)(nil)
