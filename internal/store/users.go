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

// storedUser is the on-disk user record. models.User hides the password
// hash from JSON so it can never leak through an API encoder; the store
// needs the hash persisted, so it carries its own serialization.
type storedUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toStoredUser(u *models.User) *storedUser {
	return &storedUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (su *storedUser) toModel() *models.User {
	return &models.User{
		ID:           su.ID,
		Name:         su.Name,
		Email:        su.Email,
		PasswordHash: su.PasswordHash,
		CreatedAt:    su.CreatedAt,
	}
}

// CreateUser stores a new user. The email uniqueness check and both writes
// happen in a single transaction, so two concurrent signups with the same
// email cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(toStoredUser(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		emailKey := []byte(userEmailKeyPrefix + user.Email)
		_, err := txn.Get(emailKey)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check email index: %w", err)
		}

		if err := txn.Set([]byte(userKeyPrefix+user.ID), data); err != nil {
			return fmt.Errorf("set user: %w", err)
		}
		if err := txn.Set(emailKey, []byte(user.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		return nil
	})
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var record storedUser

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}
	return record.toModel(), nil
}

// GetUserByEmail retrieves a user via the email index. The lookup is
// case-sensitive, matching how emails are stored.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var userID string

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailKeyPrefix + email))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get email index: %w", err)
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, userID)
}
