// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"errors"

	"github.com/pulsolabs/pulso/internal/models"
)

// ErrEmptySeries is returned when no historical samples are available to
// analyse. Shorter-than-ideal series degrade gracefully inside the
// statistical primitives, but an empty series has nothing to aggregate.
var ErrEmptySeries = errors.New("predictive: historical series is empty")

// Engine is the forecasting and insight engine. It holds configuration
// and the injected Clock/IDGenerator but no per-call state: Generate is
// safe for concurrent use and idempotent up to identifiers/timestamps.
type Engine struct {
	cfg       Config
	clock     Clock
	ids       IDGenerator
	sentiment *SentimentClassifier
}

// NewEngine builds an engine with the production clock and UUID
// identifiers.
func NewEngine(cfg Config) *Engine {
	return NewEngineWithDeps(cfg, SystemClock(), UUIDGenerator())
}

// NewEngineWithDeps builds an engine with explicit time and identifier
// sources. Tests inject fixed implementations to make runs byte-for-byte
// reproducible.
func NewEngineWithDeps(cfg Config, clock Clock, ids IDGenerator) *Engine {
	return &Engine{
		cfg:       cfg,
		clock:     clock,
		ids:       ids,
		sentiment: NewSentimentClassifier(cfg.Sentiment),
	}
}

// Sentiment exposes the engine's keyword classifier for use on free text
// (e.g. scoring feedback samples at ingest time).
func (e *Engine) Sentiment() *SentimentClassifier {
	return e.sentiment
}

// Generate runs the full pipeline over the series and assembles the
// PredictiveAnalytics aggregate. The call either returns a complete
// aggregate or an error — never a partial result.
//
// Data flows strictly one way: series in, aggregate out. Nothing is
// mutated, and two calls on the same series differ only in identifiers
// and timestamps.
func (e *Engine) Generate(series models.HistoricalSeries) (*models.PredictiveAnalytics, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	hourly := e.hourlyTrends()

	return &models.PredictiveAnalytics{
		AttendancePrediction:   e.forecastAttendance(series),
		ConversionPrediction:   e.forecastConversion(series),
		ResponseTimePrediction: e.forecastResponseTime(series),
		PredictiveAlerts:       e.generateAlerts(series),
		TemporalPatterns: models.TemporalPatterns{
			HourlyTrends: hourly,
			DailyTrends:  e.dailyTrends(series),
		},
		MLRecommendations: e.generateRecommendations(series, hourly),
		SentimentAnalysis: e.sentimentSummary(series),
		GeneratedAt:       e.clock.Now(),
	}, nil
}

// sentimentSummary aggregates the per-day sentiment scores and intent
// proportions over the whole series. The label reuses the classifier
// thresholds so a mean score classifies the same way a text score would.
func (e *Engine) sentimentSummary(series models.HistoricalSeries) models.SentimentAnalysis {
	var score float64
	var intents models.IntentBreakdown
	for _, p := range series {
		score += p.Sentiment
		intents.Purchase += p.Intents.Purchase
		intents.Support += p.Intents.Support
		intents.Complaint += p.Intents.Complaint
		intents.Inquiry += p.Intents.Inquiry
	}

	n := float64(len(series))
	score /= n
	intents.Purchase /= n
	intents.Support /= n
	intents.Complaint /= n
	intents.Inquiry /= n

	return models.SentimentAnalysis{
		OverallSentiment: e.sentiment.Label(score),
		SentimentScore:   score,
		IntentPrediction: intents,
	}
}
