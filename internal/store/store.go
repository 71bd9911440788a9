// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

// Package store persists users and tasks in BadgerDB.
//
// Layout of the keyspace:
//
//	user:<userID>            -> User JSON
//	user_email:<email>       -> userID (uniqueness index, case-sensitive)
//	task:<userID>:<taskID>   -> Task JSON
//
// Tasks live under a per-owner prefix, so owner scoping is structural: every
// task operation derives its key range from the authenticated user's ID and
// can never observe another owner's records.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/logging"
)

// Sentinel errors mapped to HTTP statuses at the handler boundary.
var (
	// ErrNotFound covers both "record absent" and "record owned by someone
	// else"; the two are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when signing up with an email that already
	// has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// Key prefixes for BadgerDB storage.
const (
	userKeyPrefix      = "user:"
	userEmailKeyPrefix = "user_email:"
	taskKeyPrefix      = "task:"
)

// Store wraps the BadgerDB handle shared by the user and task stores.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the Badger database described by the config.
// Badger's own chatter is routed through zerolog at debug level.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", cfg.Path, err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is open and can serve a read transaction.
// Used by the readiness probe.
func (s *Store) Ping() error {
	if s.db.IsClosed() {
		return errors.New("store is closed")
	}
	return s.db.View(func(txn *badger.Txn) error { return nil })
}

func taskKey(userID, taskID string) []byte {
	return []byte(taskKeyPrefix + userID + ":" + taskID)
}

func taskPrefix(userID string) []byte {
	return []byte(taskKeyPrefix + userID + ":")
}

// badgerLogger adapts badger's logger interface onto the global zerolog
// logger. Badger logs operational detail that is noise at info level.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logging.Error().Msgf("badger: "+format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logging.Warn().Msgf("badger: "+format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logging.Debug().Msgf("badger: "+format, args...)
}
