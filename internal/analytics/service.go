// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

// Package analytics coordinates one dashboard fetch: load the user's
// historical series, run the forecasting engine (or reuse the cached
// aggregate inside the staleness window), and overlay the user's stored
// alert and recommendation state.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pulsolabs/pulso/internal/cache"
	"github.com/pulsolabs/pulso/internal/history"
	"github.com/pulsolabs/pulso/internal/insightstate"
	"github.com/pulsolabs/pulso/internal/logging"
	"github.com/pulsolabs/pulso/internal/metrics"
	"github.com/pulsolabs/pulso/internal/models"
	"github.com/pulsolabs/pulso/internal/predictive"
)

// ErrInsightNotFound means the referenced alert or recommendation is not
// part of the user's current aggregate.
var ErrInsightNotFound = errors.New("analytics: insight not found")

// Ingestor is the write side of the history store, declared here so the
// service depends only on what it uses.
type Ingestor interface {
	UpsertDay(ctx context.Context, userID string, p models.HistoricalDataPoint) error
}

// Service wires the provider, engine, cache, and insight state together.
type Service struct {
	provider history.Provider
	ingestor Ingestor
	engine   *predictive.Engine
	state    *insightstate.Store
	cache    *cache.Cache[*models.PredictiveAnalytics]

	defaultDays int

	// versions invalidates cached aggregates per user on ingest without
	// touching other users' entries.
	versions sync.Map // userID -> *atomic.Uint64
}

// New builds a Service. defaultDays is the analysis window used when the
// request does not specify one.
func New(provider history.Provider, ingestor Ingestor, engine *predictive.Engine,
	state *insightstate.Store, ttl time.Duration, defaultDays int) *Service {
	return &Service{
		provider:    provider,
		ingestor:    ingestor,
		engine:      engine,
		state:       state,
		cache:       cache.New[*models.PredictiveAnalytics]("analytics", ttl),
		defaultDays: defaultDays,
	}
}

// Close stops the cache sweep goroutine.
func (s *Service) Close() {
	s.cache.Close()
}

// DefaultDays reports the configured default analysis window.
func (s *Service) DefaultDays() int {
	return s.defaultDays
}

func (s *Service) version(userID string) *atomic.Uint64 {
	v, _ := s.versions.LoadOrStore(userID, &atomic.Uint64{})
	return v.(*atomic.Uint64)
}

func (s *Service) cacheKey(userID string, days int) string {
	return cache.GenerateKey("predictive", struct {
		UserID  string
		Days    int
		Version uint64
	}{userID, days, s.version(userID).Load()})
}

// Predictive returns the user's analytics aggregate. Within the
// staleness window the cached engine output is reused, so insight IDs
// stay stable; the state overlay is applied fresh on every call so
// dismissals take effect immediately.
func (s *Service) Predictive(ctx context.Context, userID string, days int) (*models.PredictiveAnalytics, error) {
	if days <= 0 {
		days = s.defaultDays
	}

	key := s.cacheKey(userID, days)
	generated, ok := s.cache.Get(key)
	if !ok {
		series, err := s.provider.Series(ctx, userID, days)
		if err != nil {
			if !errors.Is(err, history.ErrNoData) {
				metrics.EngineRunsTotal.WithLabelValues("error").Inc()
			} else {
				metrics.EngineRunsTotal.WithLabelValues("empty").Inc()
			}
			return nil, err
		}

		start := time.Now()
		generated, err = s.engine.Generate(series)
		metrics.EngineRunDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.EngineRunsTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("generating analytics for %s: %w", userID, err)
		}
		metrics.EngineRunsTotal.WithLabelValues("ok").Inc()

		samples := make([]metrics.AlertSample, len(generated.PredictiveAlerts))
		for i, a := range generated.PredictiveAlerts {
			samples[i] = metrics.AlertSample{Type: string(a.Type), Severity: string(a.Severity)}
		}
		metrics.RecordEngineAlerts(samples)

		s.cache.Set(key, generated)
		logger := logging.Ctx(ctx)
		logger.Debug().Str("user_id", userID).Int("days", len(series)).
			Int("alerts", len(generated.PredictiveAlerts)).Msg("analytics generated")
	}

	// Overlay mutates, so work on a copy and leave the cached aggregate
	// pristine.
	result := cloneAnalytics(generated)
	if err := s.state.Overlay(ctx, userID, result); err != nil {
		return nil, fmt.Errorf("overlaying insight state: %w", err)
	}
	return result, nil
}

// Ingest stores one daily sample and invalidates the user's cached
// aggregates so the next fetch reflects the new data.
func (s *Service) Ingest(ctx context.Context, userID string, p models.HistoricalDataPoint) error {
	if err := s.ingestor.UpsertDay(ctx, userID, p); err != nil {
		return err
	}
	s.version(userID).Add(1)
	return nil
}

// ScoreFeedback classifies free-text customer feedback and returns the
// mean sentiment score, 0.5 (neutral) for an empty batch.
func (s *Service) ScoreFeedback(texts []string) float64 {
	if len(texts) == 0 {
		return 0.5
	}
	classifier := s.engine.Sentiment()
	sum := 0.0
	for _, text := range texts {
		sum += classifier.Classify(text).Score
	}
	return sum / float64(len(texts))
}

// SetAlertActive persists the override and returns the updated alert
// from the user's current aggregate.
func (s *Service) SetAlertActive(ctx context.Context, userID, alertID string, active bool) (*models.PredictiveAlert, error) {
	current, err := s.Predictive(ctx, userID, s.defaultDays)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range current.PredictiveAlerts {
		if current.PredictiveAlerts[i].ID == alertID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrInsightNotFound
	}

	if err := s.state.SetAlertActive(ctx, userID, alertID, active); err != nil {
		return nil, fmt.Errorf("storing alert override: %w", err)
	}
	alert := current.PredictiveAlerts[idx]
	alert.IsActive = active
	return &alert, nil
}

// ApplyRecommendation records that the user acted on a recommendation
// and returns it with the applied flag set.
func (s *Service) ApplyRecommendation(ctx context.Context, userID, recID string) (*models.Recommendation, error) {
	current, err := s.Predictive(ctx, userID, s.defaultDays)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range current.MLRecommendations {
		if current.MLRecommendations[i].ID == recID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrInsightNotFound
	}

	if err := s.state.MarkRecommendationApplied(ctx, userID, recID); err != nil {
		return nil, fmt.Errorf("storing recommendation override: %w", err)
	}
	rec := current.MLRecommendations[idx]
	rec.Applied = true
	return &rec, nil
}

// cloneAnalytics copies the aggregate deeply enough that overlaying one
// request cannot leak into the cached value or another request.
func cloneAnalytics(a *models.PredictiveAnalytics) *models.PredictiveAnalytics {
	clone := *a
	clone.PredictiveAlerts = append([]models.PredictiveAlert(nil), a.PredictiveAlerts...)
	clone.MLRecommendations = append([]models.Recommendation(nil), a.MLRecommendations...)
	clone.TemporalPatterns.HourlyTrends = append([]models.HourlyTrend(nil), a.TemporalPatterns.HourlyTrends...)
	clone.TemporalPatterns.DailyTrends = append([]models.DailyTrend(nil), a.TemporalPatterns.DailyTrends...)
	clone.AttendancePrediction.Factors = append([]string(nil), a.AttendancePrediction.Factors...)
	clone.ConversionPrediction.Factors = append([]string(nil), a.ConversionPrediction.Factors...)
	return &clone
}
