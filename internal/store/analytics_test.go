// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package store

import (
	"context"
	"testing"
	"time"

	"github.com/taskforge/taskforge/internal/models"
)

func TestDashboard(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	// Three tasks: one completed High, one pending High due in 3 days, one
	// pending Low due in 10 days (outside the upcoming window).
	seedTask(t, s, "alice", "a", func(task *models.Task) {
		task.Priority = models.PriorityHigh
		task.Completed = true
		task.DueDate = now.Add(-24 * time.Hour)
	})
	seedTask(t, s, "alice", "b", func(task *models.Task) {
		task.Priority = models.PriorityHigh
		task.DueDate = now.Add(3 * 24 * time.Hour)
	})
	seedTask(t, s, "alice", "c", func(task *models.Task) {
		task.Priority = models.PriorityLow
		task.DueDate = now.Add(10 * 24 * time.Hour)
	})

	dash, err := s.Dashboard(context.Background(), "alice", now)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	wantDist := []models.PriorityCount{
		{Priority: models.PriorityHigh, Count: 2},
		{Priority: models.PriorityLow, Count: 1},
	}
	if len(dash.PriorityDist) != len(wantDist) {
		t.Fatalf("PriorityDist = %+v, want %+v", dash.PriorityDist, wantDist)
	}
	for i, want := range wantDist {
		if dash.PriorityDist[i] != want {
			t.Errorf("PriorityDist[%d] = %+v, want %+v", i, dash.PriorityDist[i], want)
		}
	}

	if dash.CompletionRate != 33 {
		t.Errorf("CompletionRate = %d, want 33", dash.CompletionRate)
	}
	if dash.Total != 3 || dash.Completed != 1 {
		t.Errorf("Total/Completed = %d/%d, want 3/1", dash.Total, dash.Completed)
	}

	if len(dash.Upcoming) != 1 || dash.Upcoming[0].ID != "b" {
		ids := make([]string, len(dash.Upcoming))
		for i, task := range dash.Upcoming {
			ids[i] = task.ID
		}
		t.Errorf("Upcoming = %v, want [b]", ids)
	}
}

func TestDashboardEmpty(t *testing.T) {
	s := newTestStore(t)

	dash, err := s.Dashboard(context.Background(), "nobody", time.Now().UTC())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.CompletionRate != 0 {
		t.Errorf("CompletionRate = %d, want 0", dash.CompletionRate)
	}
	if dash.Total != 0 || dash.Completed != 0 {
		t.Errorf("Total/Completed = %d/%d, want 0/0", dash.Total, dash.Completed)
	}
	if len(dash.PriorityDist) != 0 {
		t.Errorf("PriorityDist = %+v, want empty", dash.PriorityDist)
	}
	if dash.Upcoming == nil || len(dash.Upcoming) != 0 {
		t.Errorf("Upcoming = %#v, want non-nil empty slice", dash.Upcoming)
	}
}

func TestDashboardUpcomingWindow(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		id        string
		due       time.Time
		completed bool
		inWindow  bool
	}{
		{"past-due", now.Add(-time.Hour), false, false},
		{"due-now", now, false, true},
		{"due-tomorrow", now.Add(24 * time.Hour), false, true},
		{"due-day-seven", now.Add(7 * 24 * time.Hour), false, true},
		{"past-window", now.Add(7*24*time.Hour + time.Minute), false, false},
		{"completed-soon", now.Add(24 * time.Hour), true, false},
	}

	for _, tt := range tests {
		tt := tt
		seedTask(t, s, "alice", tt.id, func(task *models.Task) {
			task.DueDate = tt.due
			task.Completed = tt.completed
		})
	}

	dash, err := s.Dashboard(context.Background(), "alice", now)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	got := make(map[string]bool, len(dash.Upcoming))
	for _, task := range dash.Upcoming {
		got[task.ID] = true
	}
	for _, tt := range tests {
		if got[tt.id] != tt.inWindow {
			t.Errorf("task %s in upcoming = %v, want %v", tt.id, got[tt.id], tt.inWindow)
		}
	}

	// Ascending by due date.
	for i := 1; i < len(dash.Upcoming); i++ {
		if dash.Upcoming[i].DueDate.Before(dash.Upcoming[i-1].DueDate) {
			t.Errorf("Upcoming not sorted ascending at index %d", i)
		}
	}
}

func TestDashboardScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	now := time.Now().UTC()
	seedTask(t, s, "alice", "a1", nil)
	seedTask(t, s, "bob", "b1", nil)

	dash, err := s.Dashboard(context.Background(), "bob", now)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if dash.Total != 1 {
		t.Errorf("bob Total = %d, want 1", dash.Total)
	}
}
