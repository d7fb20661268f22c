// Package cli implements the single-user task service backed by a JSON
// file. There is no user concept and no trash: deletes are final. Every
// operation reads the whole document, works on the in-memory mapping,
// and mutating operations rewrite the document in one save.
package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest/internal/jsonstore"
)

// Task status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// TimestampFormat is the fixed layout for created_at/updated_at strings.
// Lexicographic order on these strings matches chronological order.
const TimestampFormat = "2006-01-02 15:04:05"

// maxIDAttempts bounds the collision-retry loop when generating an ID.
const maxIDAttempts = 64

// StatusCounts holds per-status task totals.
type StatusCounts struct {
	Total     int
	Pending   int
	Completed int
}

// Service exposes the CLI task operations over a jsonstore.Store.
type Service struct {
	store    *jsonstore.Store
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewService creates a Service. If logger is nil, slog.Default() is used.
func NewService(store *jsonstore.Store, logger *slog.Logger) *Service {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		logger:   logger.With(slog.String("component", "cli_service")),
		timeFunc: func() time.Time { return time.Now().UTC() },
	}
}

// Add creates a new pending task with a fresh 8-character hex ID.
// created_at and updated_at are set to the same instant.
func (s *Service) Add(title, description string) (*jsonstore.TaskRecord, error) {
	cleanTitle, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	cleanDesc, err := validateDescription(description)
	if err != nil {
		return nil, err
	}

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	id, err := generateID(doc.Tasks)
	if err != nil {
		return nil, err
	}

	now := s.timeFunc().Format(TimestampFormat)
	task := jsonstore.TaskRecord{
		ID:          id,
		Title:       cleanTitle,
		Description: cleanDesc,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	doc.Tasks[id] = task

	if err := s.store.Save(doc); err != nil {
		return nil, err
	}

	s.logger.Debug("task added", slog.String("task_id", id))
	return &task, nil
}

// Get returns the task with the given ID, or ErrTaskNotFound.
func (s *Service) Get(id string) (*jsonstore.TaskRecord, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	task, ok := doc.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return &task, nil
}

// GetAll returns every task, newest first. Tasks created at the same
// instant are ordered by ID.
func (s *Service) GetAll() ([]jsonstore.TaskRecord, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return sortedTasks(doc.Tasks), nil
}

// Update changes the title and/or description of a task. At least one
// field must be supplied; a non-nil empty description clears it.
func (s *Service) Update(id string, title, description *string) (*jsonstore.TaskRecord, error) {
	if title == nil && description == nil {
		return nil, ErrNoUpdateFields
	}

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	task, ok := doc.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if title != nil {
		clean, err := validateTitle(*title)
		if err != nil {
			return nil, err
		}
		task.Title = clean
	}
	if description != nil {
		clean, err := validateDescription(*description)
		if err != nil {
			return nil, err
		}
		task.Description = clean
	}

	task.UpdatedAt = s.timeFunc().Format(TimestampFormat)
	doc.Tasks[id] = task

	if err := s.store.Save(doc); err != nil {
		return nil, err
	}
	return &task, nil
}

// MarkCompleted sets the task's status to completed.
func (s *Service) MarkCompleted(id string) (*jsonstore.TaskRecord, error) {
	return s.setStatus(id, StatusCompleted)
}

// MarkPending sets the task's status back to pending.
func (s *Service) MarkPending(id string) (*jsonstore.TaskRecord, error) {
	return s.setStatus(id, StatusPending)
}

// MarkAllCompleted sets every listed task to completed in one save.
// An unknown ID fails the whole batch with no tasks changed.
func (s *Service) MarkAllCompleted(ids []string) (int, error) {
	return s.setStatusBulk(ids, StatusCompleted)
}

// MarkAllPending sets every listed task to pending in one save.
// An unknown ID fails the whole batch with no tasks changed.
func (s *Service) MarkAllPending(ids []string) (int, error) {
	return s.setStatusBulk(ids, StatusPending)
}

// FilterByStatus returns the tasks with the given status, newest first.
func (s *Service) FilterByStatus(status string) ([]jsonstore.TaskRecord, error) {
	if status != StatusPending && status != StatusCompleted {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	filtered := make(map[string]jsonstore.TaskRecord)
	for id, task := range doc.Tasks {
		if task.Status == status {
			filtered[id] = task
		}
	}
	return sortedTasks(filtered), nil
}

// Delete removes the task with the given ID. It reports whether a task
// was actually removed; deleting an unknown ID is not an error.
func (s *Service) Delete(id string) (bool, error) {
	doc, err := s.store.Load()
	if err != nil {
		return false, err
	}
	if _, ok := doc.Tasks[id]; !ok {
		return false, nil
	}

	delete(doc.Tasks, id)
	if err := s.store.Save(doc); err != nil {
		return false, err
	}

	s.logger.Debug("task deleted", slog.String("task_id", id))
	return true, nil
}

// DeleteAll removes every listed task that exists, skipping unknown IDs,
// and returns the number removed. The document is saved once.
func (s *Service) DeleteAll(ids []string) (int, error) {
	doc, err := s.store.Load()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, id := range ids {
		if _, ok := doc.Tasks[id]; ok {
			delete(doc.Tasks, id)
			deleted++
		}
	}
	if deleted == 0 {
		return 0, nil
	}

	if err := s.store.Save(doc); err != nil {
		return 0, err
	}
	return deleted, nil
}

// Paginate returns a slice of the full newest-first listing starting at
// the 0-indexed offset, at most limit tasks long.
func (s *Service) Paginate(offset, limit int) ([]jsonstore.TaskRecord, error) {
	if offset < 0 || limit < 1 {
		return nil, ErrInvalidPagination
	}

	all, err := s.GetAll()
	if err != nil {
		return nil, err
	}

	if offset >= len(all) {
		return []jsonstore.TaskRecord{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// CountByStatus returns total, pending, and completed task counts.
func (s *Service) CountByStatus() (StatusCounts, error) {
	doc, err := s.store.Load()
	if err != nil {
		return StatusCounts{}, err
	}

	counts := StatusCounts{Total: len(doc.Tasks)}
	for _, task := range doc.Tasks {
		switch task.Status {
		case StatusCompleted:
			counts.Completed++
		default:
			counts.Pending++
		}
	}
	return counts, nil
}

func (s *Service) setStatus(id, status string) (*jsonstore.TaskRecord, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	task, ok := doc.Tasks[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	task.Status = status
	task.UpdatedAt = s.timeFunc().Format(TimestampFormat)
	doc.Tasks[id] = task

	if err := s.store.Save(doc); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Service) setStatusBulk(ids []string, status string) (int, error) {
	doc, err := s.store.Load()
	if err != nil {
		return 0, err
	}

	now := s.timeFunc().Format(TimestampFormat)
	for _, id := range ids {
		task, ok := doc.Tasks[id]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		task.Status = status
		task.UpdatedAt = now
		doc.Tasks[id] = task
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := s.store.Save(doc); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// generateID draws random 8-character lowercase hex IDs until one does
// not collide with the existing set.
func generateID(existing map[string]jsonstore.TaskRecord) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		u := uuid.New()
		id := hex.EncodeToString(u[:4])
		if _, taken := existing[id]; !taken {
			return id, nil
		}
	}
	return "", errors.New("could not generate a unique task ID")
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrTitleEmpty
	}
	if len(strings.Fields(trimmed)) > MaxTitleWords {
		return "", ErrTitleTooManyWords
	}
	return trimmed, nil
}

func validateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) > MaxDescriptionChars {
		return "", ErrDescriptionTooLong
	}
	return trimmed, nil
}

// sortedTasks orders tasks by created_at descending with ID ascending as
// the tiebreak. The fixed timestamp layout makes string comparison safe.
func sortedTasks(tasks map[string]jsonstore.TaskRecord) []jsonstore.TaskRecord {
	out := make([]jsonstore.TaskRecord, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}
