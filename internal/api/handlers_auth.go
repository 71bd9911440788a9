// Taskforge - Task Management REST API
// Copyright 2026 Taskforge Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taskforge/taskforge

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/logging"
	"github.com/taskforge/taskforge/internal/metrics"
	"github.com/taskforge/taskforge/internal/models"
	"github.com/taskforge/taskforge/internal/store"
	"github.com/taskforge/taskforge/internal/validation"
)

// RefreshTokenCookie is the httpOnly cookie carrying the refresh token. It
// is scoped to the auth routes so task requests never transmit it.
const RefreshTokenCookie = "refreshToken"

const refreshCookiePath = "/api/auth"

type signupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Signup handles POST /api/auth/signup. On success it answers 201 with the
// public user and an access token, and sets the refresh cookie.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if verr := validation.ValidateStruct(&req); verr != nil {
		respondFieldErrors(w, http.StatusBadRequest, verr.FieldErrors())
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		serverError(w, r, err)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			respondErrors(w, http.StatusBadRequest, "User already exists")
			return
		}
		serverError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("user registered")
	h.issueSession(w, r, user, http.StatusCreated)
}

// Login handles POST /api/auth/login. Unknown email and wrong password are
// indistinguishable to the caller.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if verr := validation.ValidateStruct(&req); verr != nil {
		respondFieldErrors(w, http.StatusBadRequest, verr.FieldErrors())
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
			respondErrors(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		serverError(w, r, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
		respondErrors(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	h.issueSession(w, r, user, http.StatusOK)
}

// Refresh handles POST /api/auth/refresh. It mints a new access token from
// the refresh cookie; the refresh token itself is not rotated.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
		respondMessage(w, http.StatusUnauthorized, "No refresh token")
		return
	}

	claims, err := h.tokens.VerifyRefreshToken(cookie.Value)
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("refresh token rejected")
		metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		respondMessage(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(claims.UserID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()

	respondJSON(w, http.StatusOK, models.TokenResponse{Token: accessToken})
}

// issueSession signs both tokens for the user, sets the refresh cookie, and
// writes the auth response body.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, user *models.User, status int) {
	accessToken, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	refreshToken, err := h.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		serverError(w, r, err)
		return
	}
	metrics.TokensIssuedTotal.WithLabelValues("access").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    refreshToken,
		Path:     refreshCookiePath,
		MaxAge:   int(h.tokens.RefreshTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, status, models.AuthResponse{
		User:  user.Public(),
		Token: accessToken,
	})
}
