// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "pulso.user_id"

// UserID returns the authenticated workspace user ID from the request
// context, empty when the request did not pass through Middleware.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID stores a user ID on the context, exported for tests and for
// the open-mode middleware.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Middleware enforces a Bearer token on every request and places the
// token subject on the context as the workspace user ID. Requests
// without a valid token get 401 before reaching any handler.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			unauthorized(w)
			return
		}

		claims, err := m.ValidateToken(strings.TrimPrefix(header, prefix))
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := WithUserID(r.Context(), claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OpenModeMiddleware assigns a fixed user ID to every request. Used when
// no JWT secret is configured, which is a local-development setup only.
func OpenModeMiddleware(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="pulso"`)
	http.Error(w, "authentication required", http.StatusUnauthorized)
}
