// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/taskforge/taskforge/internal/logging"
	"github.com/taskforge/taskforge/internal/models"
)

// maxRequestBody caps request bodies at 1 MiB. Task payloads are small;
// anything larger is abuse.
const maxRequestBody = 1 << 20

// dueDateFormats are the accepted due date encodings, tried in order.
var dueDateFormats = []string{
	time.RFC3339,
	"2006-01-02",
}

// respondJSON writes the payload with the given status. Encoding failures
// are logged but not surfaced; headers are already on the wire.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
	}
}

// respondMessage writes a {"msg": ...} envelope, used for 401, 404, and
// delete confirmations.
func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, models.MessageResponse{Msg: msg})
}

// respondErrors writes an {"errors":[{"msg":...},...]} envelope, used for
// validation failures and business-rule rejections.
func respondErrors(w http.ResponseWriter, status int, msgs ...string) {
	fields := make([]models.FieldError, len(msgs))
	for i, m := range msgs {
		fields[i] = models.FieldError{Msg: m}
	}
	respondJSON(w, status, models.ErrorsResponse{Errors: fields})
}

// respondFieldErrors writes pre-built field errors in the errors envelope.
func respondFieldErrors(w http.ResponseWriter, status int, fields []models.FieldError) {
	respondJSON(w, status, models.ErrorsResponse{Errors: fields})
}

// serverError logs the failure and answers with the opaque 500 envelope.
// Internal detail never reaches the client.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	respondErrors(w, http.StatusInternalServerError, "Server error")
}

// decodeJSON decodes the request body into dst, rejecting oversized and
// malformed payloads.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondErrors(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// parseDueDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func parseDueDate(value string) (time.Time, bool) {
	for _, layout := range dueDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// queryInt reads an integer query parameter, returning 0 when absent or
// unparsable. Zero is below every clamp floor, so bad input degrades to the
// documented defaults.
func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
