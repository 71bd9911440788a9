// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/taskforge/taskforge/internal/logging"
	"github.com/taskforge/taskforge/internal/metrics"
	"github.com/taskforge/taskforge/internal/models"
)

type contextKey string

// userIDContextKey carries the authenticated user's ID through the request
// context.
const userIDContextKey contextKey = "user_id"

// AccessTokenCookie is the fallback cookie checked when no Authorization
// header is present.
const AccessTokenCookie = "token"

// credentialExtractor pulls a candidate token out of a request. Extractors
// are tried in order; the first match wins.
type credentialExtractor func(r *http.Request) (token string, ok bool)

var extractors = []credentialExtractor{
	fromBearerHeader,
	fromTokenCookie,
}

func fromBearerHeader(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func fromTokenCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Middleware is the request-level auth gate applied to every protected
// route. Validation is pure and stateless: no session store, no revocation
// list. A compromised access token stays valid until it expires.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware creates the auth gate around a token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate verifies the access token and attaches the user ID to the
// request context. Requests without a usable credential are rejected with
// 401 and a {"msg": ...} body matching the API's unauthorized envelope.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := extractToken(r)
		if !ok {
			metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
			unauthorized(w, "No token, authorization denied")
			return
		}

		claims, err := m.tokens.VerifyAccessToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("access token rejected")
			metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
			unauthorized(w, "Token is not valid")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractToken(r *http.Request) (string, bool) {
	for _, extract := range extractors {
		if token, ok := extract(r); ok {
			return token, true
		}
	}
	return "", false
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck // nothing useful to do if the client is gone
	json.NewEncoder(w).Encode(models.MessageResponse{Msg: msg})
}

// UserIDFromContext returns the authenticated user's ID, or "" when the
// request did not pass through Authenticate.
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDContextKey).(string); ok {
		return userID
	}
	return ""
}

// ContextWithUserID attaches a user ID to the context. Exposed for handler
// tests that bypass the middleware.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
