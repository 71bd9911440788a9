// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/logging"
	"github.com/taskforge/taskforge/internal/metrics"
	"github.com/taskforge/taskforge/internal/models"
	"github.com/taskforge/taskforge/internal/store"
	"github.com/taskforge/taskforge/internal/validation"
)

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Priority    string `json:"priority" validate:"priority"`
	Completed   bool   `json:"completed"`
}

// updateTaskRequest fields are pointers so "absent" and "set to zero" stay
// distinct. Title cannot be validated by tag: validator's required is
// satisfied by any non-nil pointer, so the pointee is checked in the
// handler.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    *string `json:"priority" validate:"omitnil,priority"`
	Completed   *bool   `json:"completed"`
}

// CreateTask handles POST /api/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	var req createTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Collect every field failure before answering, so the client sees the
	// full list in one round trip.
	var fields []models.FieldError
	if verr := validation.ValidateStruct(&req); verr != nil {
		fields = verr.FieldErrors()
	}
	dueDate, ok := parseDueDate(req.DueDate)
	if !ok {
		fields = append(fields, models.FieldError{Msg: "Valid due date is required"})
	}
	if len(fields) > 0 {
		respondFieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    models.Priority(req.Priority),
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.store.CreateTask(r.Context(), task); err != nil {
		serverError(w, r, err)
		return
	}
	metrics.TasksTotal.WithLabelValues("create").Inc()

	logging.Ctx(r.Context()).Info().
		Str("user_id", userID).
		Str("task_id", task.ID).
		Msg("task created")

	respondJSON(w, http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks with filter, search, sort, and
// pagination query parameters.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	query := store.TaskQuery{
		Status:    r.URL.Query().Get("status"),
		Search:    r.URL.Query().Get("search"),
		SortBy:    r.URL.Query().Get("sortBy"),
		SortOrder: r.URL.Query().Get("sortOrder"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
	query.Normalize(h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize)

	page, err := h.store.ListTasks(r.Context(), userID, query)
	if err != nil {
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}

// GetTask handles GET /api/tasks/{id}. A task owned by another user answers
// 404, the same as a task that does not exist.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	taskID := chi.URLParam(r, "id")

	task, err := h.store.GetTask(r.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/{id}. Absent fields keep their stored
// values; present fields are validated before any write.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	taskID := chi.URLParam(r, "id")

	var req updateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var fields []models.FieldError
	if verr := validation.ValidateStruct(&req); verr != nil {
		fields = verr.FieldErrors()
	}
	if req.Title != nil && *req.Title == "" {
		fields = append(fields, models.FieldError{Msg: "Title is required"})
	}

	update := store.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}
	if req.DueDate != nil {
		dueDate, ok := parseDueDate(*req.DueDate)
		if !ok {
			fields = append(fields, models.FieldError{Msg: "Valid due date is required"})
		} else {
			update.DueDate = &dueDate
		}
	}
	if req.Priority != nil {
		priority := models.Priority(*req.Priority)
		update.Priority = &priority
	}
	if len(fields) > 0 {
		respondFieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	task, err := h.store.UpdateTask(r.Context(), userID, taskID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, r, err)
		return
	}
	metrics.TasksTotal.WithLabelValues("update").Inc()

	respondJSON(w, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	taskID := chi.URLParam(r, "id")

	if err := h.store.DeleteTask(r.Context(), userID, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		serverError(w, r, err)
		return
	}
	metrics.TasksTotal.WithLabelValues("delete").Inc()

	logging.Ctx(r.Context()).Info().
		Str("user_id", userID).
		Str("task_id", taskID).
		Msg("task deleted")

	respondMessage(w, http.StatusOK, "Task deleted")
}
