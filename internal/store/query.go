// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package store

import (
	"context"
	"sort"
	"strings"

	"github.com/taskforge/taskforge/internal/models"
)

// Status filter values for task list queries.
const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sortable task fields. An unrecognized sortBy falls back to SortByDueDate.
const (
	SortByDueDate   = "dueDate"
	SortByTitle     = "title"
	SortByPriority  = "priority"
	SortByCreatedAt = "createdAt"
	SortByUpdatedAt = "updatedAt"
	SortByCompleted = "completed"
)

// TaskQuery describes one task list request: status filter, free-text
// search, one sort field with direction, and a 1-based pagination window.
// The owner is not part of the query; it is supplied separately and always
// applied first.
type TaskQuery struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Normalize clamps the query into a well-defined window: page below 1
// becomes 1, limit below 1 becomes defaultLimit, limit above maxLimit
// becomes maxLimit. Empty sort fields take their defaults (dueDate
// ascending).
func (q *TaskQuery) Normalize(defaultLimit, maxLimit int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	if q.Status == "" {
		q.Status = StatusAll
	}
	if q.SortBy == "" {
		q.SortBy = SortByDueDate
	}
	if q.SortOrder != SortDesc {
		q.SortOrder = SortAsc
	}
}

// matches applies the status and search predicates. Owner scoping never
// happens here; it is structural in the key prefix scan.
func (q *TaskQuery) matches(task *models.Task) bool {
	switch q.Status {
	case StatusCompleted:
		if !task.Completed {
			return false
		}
	case StatusPending:
		if task.Completed {
			return false
		}
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		inTitle := strings.Contains(strings.ToLower(task.Title), needle)
		inDescription := strings.Contains(strings.ToLower(task.Description), needle)
		if !inTitle && !inDescription {
			return false
		}
	}

	return true
}

// less orders two tasks by the query's sort field and direction. Ties break
// on creation time, then ID, so pages are deterministic.
func (q *TaskQuery) less(a, b *models.Task) bool {
	cmp := 0
	switch q.SortBy {
	case SortByTitle:
		cmp = strings.Compare(a.Title, b.Title)
	case SortByPriority:
		cmp = a.Priority.Rank() - b.Priority.Rank()
	case SortByCreatedAt:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		cmp = a.UpdatedAt.Compare(b.UpdatedAt)
	case SortByCompleted:
		cmp = boolCompare(a.Completed, b.Completed)
	default: // SortByDueDate and any unrecognized field
		cmp = a.DueDate.Compare(b.DueDate)
	}

	if cmp == 0 {
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	}
	if cmp == 0 {
		cmp = strings.Compare(a.ID, b.ID)
	}

	if q.SortOrder == SortDesc {
		return cmp > 0
	}
	return cmp < 0
}

func boolCompare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

// ListTasks runs the query pipeline for one owner: scan the owner's prefix,
// filter, sort, then cut the pagination window. Total counts the filtered
// set before the window is applied, so callers can compute page counts.
func (s *Store) ListTasks(ctx context.Context, userID string, q TaskQuery) (*models.TaskPage, error) {
	all, err := s.tasksByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Task, 0, len(all))
	for i := range all {
		if q.matches(&all[i]) {
			filtered = append(filtered, all[i])
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return q.less(&filtered[i], &filtered[j])
	})

	total := len(filtered)
	skip := (q.Page - 1) * q.Limit
	if skip > total {
		skip = total
	}
	end := skip + q.Limit
	if end > total {
		end = total
	}

	return &models.TaskPage{
		Tasks: filtered[skip:end],
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}
