// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

// Package models defines the domain types and API payload shapes shared by
// the store and HTTP layers.
package models

import "time"

// Priority is the task priority enumeration.
type Priority string

// Priority values, highest to lowest.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists all valid priority values in rank order, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Valid reports whether p is one of the defined priority values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns the sort rank of the priority. Higher means more urgent,
// so "priority desc" lists High before Medium before Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is a single task owned by exactly one user.
//
// Ownership is enforced at the store layer: every read, update, or delete
// resolves the task from the requesting user's keyspace, so a task is never
// visible to any user other than its owner.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPage is the paged result of a task list query. Total reflects the
// filtered set ignoring pagination, so callers can compute page counts.
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// PriorityCount is one bucket of the priority distribution. Priorities with
// zero tasks do not appear.
type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

// Dashboard is the analytics payload for one owner.
type Dashboard struct {
	PriorityDist   []PriorityCount `json:"priorityDist"`
	CompletionRate int             `json:"completionRate"`
	Upcoming       []Task          `json:"upcoming"`
	Total          int             `json:"total"`
	Completed      int             `json:"completed"`
}
