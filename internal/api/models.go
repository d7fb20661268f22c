package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/service"
	"github.com/tasknest/tasknest/internal/store"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email"              validate:"required,email"`
	Name     string `json:"name"               validate:"max=100"`
	Password string `json:"password"           validate:"required,min=12,max=72"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the user representation returned by the API. The password
// hash never leaves the server.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Notes       *string    `json:"notes"       validate:"omitempty,max=1000"`
}

// UpdateTaskRequest is the request body for a partial task update. Absent
// fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description" validate:"omitempty,max=500"`
	Priority    *string    `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"due_date"`
	Notes       *string    `json:"notes"       validate:"omitempty,max=1000"`
	ManualOrder *int       `json:"manual_order"`
}

// BulkToggleRequest is the request body for bulk status changes.
type BulkToggleRequest struct {
	TaskIDs      []uuid.UUID `json:"task_ids"      validate:"required,min=1,max=50"`
	TargetStatus string      `json:"target_status" validate:"required,oneof=pending completed"`
}

// BulkDeleteRequest is the request body for bulk soft deletion.
type BulkDeleteRequest struct {
	TaskIDs []uuid.UUID `json:"task_ids" validate:"required,min=1,max=50"`
}

// BulkResponse reports how many tasks a bulk operation touched.
type BulkResponse struct {
	UpdatedCount int `json:"updated_count"`
}

// DueDateRequest is the request body for setting or clearing a due date.
// A null due_date clears it.
type DueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// TaskResponse is the task representation returned by the API.
type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	ManualOrder *int       `json:"manual_order,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// PaginationResponse describes one page of a listing.
type PaginationResponse struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// MetadataResponse carries the user's task counts.
type MetadataResponse struct {
	TotalPending   int `json:"total_pending"`
	TotalCompleted int `json:"total_completed"`
	TotalActive    int `json:"total_active"`
	TotalDeleted   int `json:"total_deleted"`
}

// TaskListResponse is the payload of a task listing.
type TaskListResponse struct {
	Tasks      []TaskResponse     `json:"tasks"`
	Pagination PaginationResponse `json:"pagination"`
	Metadata   MetadataResponse   `json:"metadata"`
}

// DueStatsResponse carries the user's due-date counts.
type DueStatsResponse struct {
	Overdue     int `json:"overdue"`
	DueToday    int `json:"due_today"`
	DueThisWeek int `json:"due_this_week"`
	NoDueDate   int `json:"no_due_date"`
}

// ToUserResponse converts a domain user to its API representation.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToTaskResponse converts a domain task to its API representation.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		Notes:       task.Notes,
		ManualOrder: task.ManualOrder,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		CompletedAt: task.CompletedAt,
		DeletedAt:   task.DeletedAt,
	}
}

// ToTaskListResponse converts a service TaskPage to its API representation.
func ToTaskListResponse(page *service.TaskPage) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		tasks = append(tasks, ToTaskResponse(task))
	}

	return TaskListResponse{
		Tasks: tasks,
		Pagination: PaginationResponse{
			Page:       page.Pagination.Page,
			Limit:      page.Pagination.Limit,
			TotalItems: page.Pagination.TotalItems,
			TotalPages: page.Pagination.TotalPages,
			HasNext:    page.Pagination.HasNext,
			HasPrev:    page.Pagination.HasPrev,
		},
		Metadata: MetadataResponse{
			TotalPending:   page.Metadata.TotalPending,
			TotalCompleted: page.Metadata.TotalCompleted,
			TotalActive:    page.Metadata.TotalActive,
			TotalDeleted:   page.Metadata.TotalDeleted,
		},
	}
}

// ToDueStatsResponse converts store due-date stats to the API shape.
func ToDueStatsResponse(stats store.DueDateStats) DueStatsResponse {
	return DueStatsResponse{
		Overdue:     stats.OverdueCount,
		DueToday:    stats.DueTodayCount,
		DueThisWeek: stats.DueThisWeekCount,
		NoDueDate:   stats.NoDueDateCount,
	}
}
