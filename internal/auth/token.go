// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

// Package auth provides the token service, password hashing, and the
// request authentication middleware.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskforge/taskforge/internal/config"
)

// ErrInvalidToken is returned when a token is malformed, carries a bad
// signature, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims carried by both token classes.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the two classes of signed, time-bounded
// tokens. Access tokens authorize API calls and are short-lived; refresh
// tokens only mint new access tokens and are signed with a different key,
// so a leaked access-token key cannot forge long-lived refresh tokens.
// Both use HMAC-SHA256. Tokens are stateless and cannot be revoked before
// expiry.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager creates a token manager from the security configuration.
// Both secrets must be set (config validation enforces length and that the
// two differ).
func NewTokenManager(cfg *config.SecurityConfig) (*TokenManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but was empty")
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("REFRESH_SECRET is required but was empty")
	}

	return &TokenManager{
		accessSecret:  []byte(cfg.JWTSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

// IssueAccessToken signs a short-lived access token for the user.
func (m *TokenManager) IssueAccessToken(userID string) (string, error) {
	return m.sign(userID, m.accessSecret, m.accessTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the user.
func (m *TokenManager) IssueRefreshToken(userID string) (string, error) {
	return m.sign(userID, m.refreshSecret, m.refreshTTL)
}

// RefreshTTL returns the refresh token lifetime, used for the cookie expiry.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func (m *TokenManager) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// VerifyAccessToken validates an access token and returns its claims.
func (m *TokenManager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return verify(tokenString, m.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func (m *TokenManager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return verify(tokenString, m.refreshSecret)
}

// verify checks structure, signing algorithm, signature, and the time-based
// claims. Rejecting unexpected signing methods prevents algorithm confusion
// attacks.
func verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing or invalid claims", ErrInvalidToken)
	}
	return claims, nil
}
