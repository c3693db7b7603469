// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package api exposes the dashboard HTTP API: authentication, the
// predictive analytics aggregate, insight state mutations, and daily
// metric ingest.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/middleware"
)

// apiError is the error body shape shared by all endpoints.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

// writeJSON serializes v and writes it with the given status.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := logging.Ctx(r.Context())
		logger.Err(err).Msg("writing response failed")
	}
}

// writeError writes the standard error body.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, r, status, errorResponse{Error: apiError{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(r.Context()),
	}})
}
