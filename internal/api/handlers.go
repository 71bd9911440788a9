// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

// Package api implements the HTTP surface: the chi router, the REST
// handlers, and the request/response envelopes.
package api

import (
	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/store"
)

// Handler bundles the dependencies shared by all endpoint handlers.
type Handler struct {
	store  *store.Store
	tokens *auth.TokenManager
	cfg    *config.Config
}

// NewHandler creates the handler set around the store, token manager, and
// configuration.
func NewHandler(s *store.Store, tokens *auth.TokenManager, cfg *config.Config) *Handler {
	return &Handler{
		store:  s,
		tokens: tokens,
		cfg:    cfg,
	}
}
