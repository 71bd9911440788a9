// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package api

import (
	"net/http"
	"time"

	"github.com/taskforge/taskforge/internal/auth"
)

// Dashboard handles GET /api/tasks/analytics/dashboard: priority
// distribution, completion rate, and the deadlines due within the next
// seven days, all scoped to the authenticated user.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	dashboard, err := h.store.Dashboard(r.Context(), userID, time.Now().UTC())
	if err != nil {
		serverError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}
