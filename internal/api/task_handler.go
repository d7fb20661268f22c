package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/api/middleware"
	"github.com/tasknest/tasknest/internal/api/shared"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Create handles POST /api/v1/tasks requests.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Validation error", shared.WithDetails(err.Error()))
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, "Task created", ToTaskResponse(task))
}

// Get handles GET /api/v1/tasks/{id} requests.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "", ToTaskResponse(task))
}

// List handles GET /api/v1/tasks requests.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	input, err := parseListInput(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	page, err := h.taskService.List(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "", ToTaskListResponse(page))
}

// Update handles PUT /api/v1/tasks/{id} requests.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Validation error", shared.WithDetails(err.Error()))
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		ManualOrder: req.ManualOrder,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Task updated", ToTaskResponse(task))
}

// Toggle handles PATCH /api/v1/tasks/{id}/toggle requests.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Toggle(r.Context(), userID, taskID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Task status toggled", ToTaskResponse(task))
}

// BulkToggle handles POST /api/v1/tasks/bulk-toggle requests.
func (h *TaskHandler) BulkToggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req BulkToggleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Validation error", shared.WithDetails(err.Error()))
		return
	}

	count, err := h.taskService.BulkSetStatus(
		r.Context(), userID, req.TaskIDs, domain.TaskStatus(req.TargetStatus))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Tasks updated", BulkResponse{UpdatedCount: count})
}

// BulkDelete handles POST /api/v1/tasks/bulk-delete requests.
func (h *TaskHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req BulkDeleteRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Validation error", shared.WithDetails(err.Error()))
		return
	}

	count, err := h.taskService.BulkDelete(r.Context(), userID, req.TaskIDs)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Tasks moved to trash", BulkResponse{UpdatedCount: count})
}

// Delete handles DELETE /api/v1/tasks/{id} requests (soft delete).
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.SoftDelete(r.Context(), userID, taskID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Task moved to trash", nil)
}

// ListTrash handles GET /api/v1/tasks/trash requests.
func (h *TaskHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, limit, err := parsePageParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	result, err := h.taskService.ListTrash(r.Context(), userID, page, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "", ToTaskListResponse(result))
}

// Restore handles POST /api/v1/tasks/{id}/restore requests.
func (h *TaskHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Restore(r.Context(), userID, taskID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Task restored", ToTaskResponse(task))
}

// PermanentDelete handles DELETE /api/v1/tasks/{id}/permanent requests.
func (h *TaskHandler) PermanentDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.PermanentDelete(r.Context(), userID, taskID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Task permanently deleted", nil)
}

// ListDue handles GET /api/v1/tasks/due requests.
func (h *TaskHandler) ListDue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, limit, err := parsePageParams(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, CodeValidationError, err.Error())
		return
	}

	bucket := r.URL.Query().Get("filter")
	result, err := h.taskService.ListDue(r.Context(), userID, bucket, page, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "", ToTaskListResponse(result))
}

// DueStats handles GET /api/v1/tasks/due/stats requests.
func (h *TaskHandler) DueStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.taskService.DueStats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "", ToDueStatsResponse(stats))
}

// SetDueDate handles PATCH /api/v1/tasks/{id}/due-date requests.
func (h *TaskHandler) SetDueDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var req DueDateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid request format")
		return
	}

	task, err := h.taskService.SetDueDate(r.Context(), userID, taskID, req.DueDate)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	message := "Due date updated"
	if req.DueDate == nil {
		message = "Due date cleared"
	}
	shared.RespondWithData(w, r, http.StatusOK, message, ToTaskResponse(task))
}

// requireUserID extracts the authenticated user ID set by the auth
// middleware, writing a 401 if it is absent.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized,
			CodeUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}

// parseTaskID extracts and parses the {id} URL parameter, writing a 400 on
// malformed input.
func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	taskID, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationError, "Invalid task ID")
		return uuid.Nil, false
	}
	return taskID, true
}

func parsePageParams(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	page, err := parseIntParam(query.Get("page"), "page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := parseIntParam(query.Get("limit"), "limit")
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func parseIntParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NewValidationError(name + " must be an integer")
	}
	return value, nil
}

func parseListInput(r *http.Request) (service.ListTasksInput, error) {
	query := r.URL.Query()

	page, err := parseIntParam(query.Get("page"), "page")
	if err != nil {
		return service.ListTasksInput{}, err
	}
	limit, err := parseIntParam(query.Get("limit"), "limit")
	if err != nil {
		return service.ListTasksInput{}, err
	}

	input := service.ListTasksInput{
		Page:      page,
		Limit:     limit,
		Status:    query.Get("status"),
		Priority:  query.Get("priority"),
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
		Search:    query.Get("search"),
	}

	if raw := query.Get("due_date_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return service.ListTasksInput{}, service.NewValidationError(
				"due_date_from must be an RFC 3339 timestamp")
		}
		input.DueFrom = &from
	}

	if raw := query.Get("due_date_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return service.ListTasksInput{}, service.NewValidationError(
				"due_date_to must be an RFC 3339 timestamp")
		}
		input.DueTo = &to
	}

	if raw := query.Get("has_due_date"); raw != "" {
		hasDue, err := strconv.ParseBool(raw)
		if err != nil {
			return service.ListTasksInput{}, service.NewValidationError(
				"has_due_date must be true or false")
		}
		input.HasDueDate = &hasDue
	}

	return input, nil
}
