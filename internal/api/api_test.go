// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/config"
	"github.com/taskforge/taskforge/internal/models"
	"github.com/taskforge/taskforge/internal/store"
)

// testEnv is a fully wired API over an in-memory store.
type testEnv struct {
	router http.Handler
	store  *store.Store
	tokens *auth.TokenManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, Timeout: 5 * time.Second},
		Database: config.DatabaseConfig{
			InMemory: true,
		},
		Security: config.SecurityConfig{
			JWTSecret:         strings.Repeat("a", 32),
			RefreshSecret:     strings.Repeat("b", 32),
			AccessTokenTTL:    15 * time.Minute,
			RefreshTokenTTL:   7 * 24 * time.Hour,
			BcryptCost:        4, // bcrypt.MinCost; tests do not need slow hashes
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		API: config.APIConfig{DefaultPageSize: 10, MaxPageSize: 100},
	}

	s, err := store.Open(&cfg.Database)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	tokens, err := auth.NewTokenManager(&cfg.Security)
	if err != nil {
		t.Fatalf("auth.NewTokenManager: %v", err)
	}

	handler := NewHandler(s, tokens, cfg)
	return &testEnv{
		router: NewRouter(handler, auth.NewMiddleware(tokens), cfg),
		store:  s,
		tokens: tokens,
	}
}

// do runs one request through the router. A non-empty token is sent as a
// bearer credential.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// doRaw runs a caller-built request through the router.
func (e *testEnv) doRaw(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// doRefresh posts to the refresh endpoint, attaching the cookie if given.
func (e *testEnv) doRefresh(t *testing.T, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns the access token and response.
func (e *testEnv) signup(t *testing.T, name, email, password string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp models.AuthResponse
	decodeBody(t, rec, &resp)
	return resp.Token, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %s: %v", rec.Body.String(), err)
	}
}

// errorMsgs extracts the messages from an errors envelope.
func errorMsgs(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var resp models.ErrorsResponse
	decodeBody(t, rec, &resp)
	msgs := make([]string, len(resp.Errors))
	for i, fe := range resp.Errors {
		msgs[i] = fe.Msg
	}
	return msgs
}

func containsMsg(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}
