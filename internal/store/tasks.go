// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/taskforge/taskforge/internal/models"
)

// TaskUpdate is a partial field replacement. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.Priority
	Completed   *bool
}

// CreateTask stores a new task under the owner's key prefix.
func (s *Store) CreateTask(ctx context.Context, task *models.Task) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(taskKey(task.UserID, task.ID), data)
	})
}

// GetTask retrieves one task. The key is derived from the requesting user's
// ID, so another owner's task with the same ID resolves to ErrNotFound.
func (s *Store) GetTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	var task models.Task

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(taskKey(userID, taskID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get task: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &task)
		})
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update inside one transaction and returns the
// updated task. Concurrent updates to the same task are serialized only by
// Badger's per-transaction atomicity; there is no optimistic-concurrency
// token, so the last write wins.
func (s *Store) UpdateTask(ctx context.Context, userID, taskID string, update TaskUpdate) (*models.Task, error) {
	var task models.Task

	err := s.db.Update(func(txn *badger.Txn) error {
		key := taskKey(userID, taskID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get task: %w", err)
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &task)
		}); err != nil {
			return fmt.Errorf("unmarshal task: %w", err)
		}

		if update.Title != nil {
			task.Title = *update.Title
		}
		if update.Description != nil {
			task.Description = *update.Description
		}
		if update.DueDate != nil {
			task.DueDate = *update.DueDate
		}
		if update.Priority != nil {
			task.Priority = *update.Priority
		}
		if update.Completed != nil {
			task.Completed = *update.Completed
		}
		task.UpdatedAt = time.Now().UTC()

		data, err := json.Marshal(&task)
		if err != nil {
			return fmt.Errorf("marshal task: %w", err)
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes one task. Deleting a task that does not exist in the
// owner's keyspace returns ErrNotFound.
func (s *Store) DeleteTask(ctx context.Context, userID, taskID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := taskKey(userID, taskID)
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get task: %w", err)
		}
		return txn.Delete(key)
	})
}

// tasksByOwner scans the owner's prefix and returns every task, unfiltered.
// Both the query pipeline and the analytics aggregator start from this scan.
func (s *Store) tasksByOwner(ctx context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := taskPrefix(userID)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var task models.Task
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &task)
			})
			if err != nil {
				return fmt.Errorf("unmarshal task: %w", err)
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan tasks: %w", err)
	}
	return tasks, nil
}
