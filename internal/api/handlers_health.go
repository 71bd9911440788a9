// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package api

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthLive handles GET /api/v1/health/live. It answers 200 whenever the
// process can serve HTTP at all.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// HealthReady handles GET /api/v1/health/ready. It answers 503 until the
// store can serve a read transaction.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status: "unavailable",
			Error:  err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
