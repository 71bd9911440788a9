// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/taskforge/taskforge/internal/config"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:       "test-access-secret-0123456789abcdef",
		RefreshSecret:   "test-refresh-secret-0123456789abcde",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newTestTokenManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	return tm
}

func TestNewTokenManagerRequiresSecrets(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SecurityConfig
	}{
		{"missing access secret", config.SecurityConfig{RefreshSecret: "x"}},
		{"missing refresh secret", config.SecurityConfig{JWTSecret: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTokenManager(&tt.cfg); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.IssueAccessToken("user-123")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("token is not a compact JWT: %q", token)
	}

	claims, err := tm.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-123")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.IssueRefreshToken("user-456")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	claims, err := tm.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("VerifyRefreshToken: %v", err)
	}
	if claims.UserID != "user-456" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-456")
	}
}

func TestTokenClassesAreNotInterchangeable(t *testing.T) {
	tm := newTestTokenManager(t)

	access, err := tm.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	refresh, err := tm.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("IssueRefreshToken: %v", err)
	}

	if _, err := tm.VerifyAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access token: err = %v", err)
	}
	if _, err := tm.VerifyRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted as refresh token: err = %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	cfg := testSecurityConfig()
	cfg.AccessTokenTTL = -time.Minute
	tm, err := NewTokenManager(cfg)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := tm.IssueAccessToken("user-1")
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	if _, err := tm.VerifyAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token accepted: err = %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := newTestTokenManager(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not a jwt", "definitely-not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.e30"},
		{"alg none", "eyJhbGciOiJub25lIn0.eyJ1c2VySWQiOiJ1c2VyLTEifQ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tm.VerifyAccessToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("token accepted: err = %v", err)
			}
		})
	}
}

func TestVerifyRejectsMissingUserID(t *testing.T) {
	tm := newTestTokenManager(t)

	token, err := tm.sign("", tm.accessSecret, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := tm.VerifyAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token without user ID accepted: err = %v", err)
	}
}
