// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package middleware holds the HTTP middleware shared by all routes:
// request IDs, Prometheus instrumentation, logging, rate limiting, and
// CORS.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pulsolabs/pulso/internal/logging"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID assigns each request a unique ID, honoring one supplied by
// an upstream proxy. The ID goes into the response header, the request
// context, and the logging context so every log line of a request can
// be correlated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		ctx = logging.ContextWithRequestID(ctx, requestID)
		ctx = logging.ContextWithNewCorrelationID(ctx)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context, or "".
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
