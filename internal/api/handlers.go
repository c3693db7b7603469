// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pulsolabs/pulso/internal/analytics"
	"github.com/pulsolabs/pulso/internal/auth"
	"github.com/pulsolabs/pulso/internal/history"
	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/models"
)

// maxAnalysisDays bounds the ?days= parameter; beyond a quarter the
// linear fit stops being meaningful for daily operations anyway.
const maxAnalysisDays = 365

// Pinger is the readiness view of the history store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers carries the dependencies of all route handlers.
type Handlers struct {
	service *analytics.Service
	authmgr *auth.Manager // nil in open mode
	pinger  Pinger
}

// NewHandlers builds the handler set. authmgr may be nil when the server
// runs without authentication.
func NewHandlers(service *analytics.Service, authmgr *auth.Manager, pinger Pinger) *Handlers {
	return &Handlers{service: service, authmgr: authmgr, pinger: pinger}
}

// handleLive is the liveness probe.
func (h *Handlers) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady reports readiness, checking the history store.
func (h *Handlers) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		logger := logging.Ctx(r.Context())
		logger.Err(err).Msg("readiness check failed")
		writeError(w, r, http.StatusServiceUnavailable, "not_ready", "database unavailable")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLogin checks credentials and issues a JWT.
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if h.authmgr == nil {
		writeError(w, r, http.StatusNotFound, "auth_disabled", "authentication is not configured")
		return
	}

	var req loginRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	token, err := h.authmgr.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		return
	}

	writeJSON(w, r, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int(h.authmgr.TokenTTL() / time.Second),
	})
}

// handlePredictive serves the analytics aggregate for the authenticated
// user. Responds with the whole aggregate or an error, never a partial.
func (h *Handlers) handlePredictive(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "authentication_missing", "no authenticated user")
		return
	}

	days := h.service.DefaultDays()
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2 || parsed > maxAnalysisDays {
			writeError(w, r, http.StatusBadRequest, "invalid_days",
				"days must be an integer between 2 and 365")
			return
		}
		days = parsed
	}

	aggregate, err := h.service.Predictive(r.Context(), userID, days)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, aggregate)
}

// handleAlertPatch persists an isActive override for one alert.
func (h *Handlers) handleAlertPatch(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "authentication_missing", "no authenticated user")
		return
	}

	var req alertPatchRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	alertID := chi.URLParam(r, "id")
	alert, err := h.service.SetAlertActive(r.Context(), userID, alertID, *req.IsActive)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, alert)
}

// handleRecommendationApply marks a recommendation as acted upon.
func (h *Handlers) handleRecommendationApply(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "authentication_missing", "no authenticated user")
		return
	}

	recID := chi.URLParam(r, "id")
	rec, err := h.service.ApplyRecommendation(r.Context(), userID, recID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

// handleIngest stores one daily metric sample for the authenticated
// user. Free-text feedback, when present and no explicit sentiment is
// given, is classified into the day's sentiment score.
func (h *Handlers) handleIngest(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeError(w, r, http.StatusUnauthorized, "authentication_missing", "no authenticated user")
		return
	}

	var req dailyMetricsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sentiment := 0.5
	switch {
	case req.Sentiment != nil:
		sentiment = *req.Sentiment
	case len(req.FeedbackSamples) > 0:
		sentiment = h.service.ScoreFeedback(req.FeedbackSamples)
	}

	point := models.HistoricalDataPoint{
		Date:         req.Date,
		Attendances:  req.Attendances,
		Conversions:  req.Conversions,
		ResponseTime: req.ResponseTime,
		QualityScore: req.QualityScore,
		Sentiment:    sentiment,
		Intents:      req.Intents,
	}
	if err := h.service.Ingest(r.Context(), userID, point); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]any{
		"date":      point.Date,
		"sentiment": point.Sentiment,
	})
}

// writeServiceError maps service-layer errors onto HTTP statuses.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, history.ErrNoData):
		writeError(w, r, http.StatusNotFound, "no_data",
			"no historical data for this workspace yet")
	case errors.Is(err, history.ErrUpstreamUnavailable):
		writeError(w, r, http.StatusBadGateway, "upstream_unavailable",
			"historical data source unavailable, retry later")
	case errors.Is(err, analytics.ErrInsightNotFound):
		writeError(w, r, http.StatusNotFound, "insight_not_found",
			"no such alert or recommendation in the current analysis")
	default:
		logger := logging.Ctx(r.Context())
		logger.Err(err).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal", "internal error")
	}
}
