// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package store

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/taskforge/taskforge/internal/models"
)

// upcomingWindow is how far ahead the dashboard looks for deadlines.
const upcomingWindow = 7 * 24 * time.Hour

// Dashboard computes the analytics summary for one owner in a single pass
// over that owner's tasks. Read-only and idempotent for a fixed now.
//
//   - Priority distribution: count per priority; zero-count priorities are
//     omitted. Present priorities are listed High, Medium, Low.
//   - Completion rate: round(completed/total*100), 0 when the owner has no
//     tasks.
//   - Upcoming: incomplete tasks due within [now, now+7d] inclusive, sorted
//     ascending by due date.
func (s *Store) Dashboard(ctx context.Context, userID string, now time.Time) (*models.Dashboard, error) {
	tasks, err := s.tasksByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	windowEnd := now.Add(upcomingWindow)
	counts := make(map[models.Priority]int)
	completed := 0
	upcoming := []models.Task{}

	for i := range tasks {
		task := &tasks[i]
		counts[task.Priority]++
		if task.Completed {
			completed++
			continue
		}
		if !task.DueDate.Before(now) && !task.DueDate.After(windowEnd) {
			upcoming = append(upcoming, *task)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		if !upcoming[i].DueDate.Equal(upcoming[j].DueDate) {
			return upcoming[i].DueDate.Before(upcoming[j].DueDate)
		}
		return upcoming[i].ID < upcoming[j].ID
	})

	dist := make([]models.PriorityCount, 0, len(counts))
	for _, p := range models.Priorities {
		if n := counts[p]; n > 0 {
			dist = append(dist, models.PriorityCount{Priority: p, Count: n})
		}
	}

	total := len(tasks)
	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return &models.Dashboard{
		PriorityDist:   dist,
		CompletionRate: rate,
		Upcoming:       upcoming,
		Total:          total,
		Completed:      completed,
	}, nil
}
