// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package models

// FieldError is a single validation failure message.
type FieldError struct {
	Msg string `json:"msg"`
}

// ErrorsResponse is the envelope for validation and server failures:
// HTTP 400 {"errors":[{"msg":"Title is required"}]} or
// HTTP 500 {"errors":[{"msg":"Server error"}]}.
type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

// MessageResponse is the envelope for single-message results: unauthorized
// (401), not found (404), and delete confirmations.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// AuthResponse is returned by signup and login. The refresh token is not in
// the body; it travels only in the httpOnly refreshToken cookie.
type AuthResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

// TokenResponse is returned by the refresh endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}
