// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/pulsolabs/pulso/internal/models"
)

// fixedClock returns a constant time for reproducible runs.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// seqIDs mints deterministic sequential identifiers.
type seqIDs struct {
	n int
}

func (g *seqIDs) NewID(prefix string) string {
	g.n++
	return fmt.Sprintf("%s_%d", prefix, g.n)
}

// testEngine builds an engine with a fixed clock and sequential IDs.
func testEngine(cfg Config) *Engine {
	return NewEngineWithDeps(cfg, fixedClock{t: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}, &seqIDs{})
}

// testSeries builds an n-day series starting at start, one point per day.
func testSeries(start models.Date, n int, point func(i int) models.HistoricalDataPoint) models.HistoricalSeries {
	series := make(models.HistoricalSeries, n)
	for i := 0; i < n; i++ {
		p := point(i)
		p.Date = start.AddDays(i)
		series[i] = p
	}
	return series
}

// healthyDay is a sample that triggers no alerts and no recommendations.
func healthyDay(i int) models.HistoricalDataPoint {
	return models.HistoricalDataPoint{
		Attendances:  100,
		Conversions:  30, // 30% conversion
		ResponseTime: 90,
		QualityScore: 4.5,
		Sentiment:    0.7,
		Intents:      models.IntentBreakdown{Purchase: 0.4, Support: 0.2, Complaint: 0.1, Inquiry: 0.3},
	}
}

var seriesStart = models.NewDate(2026, time.June, 1) // a Monday

func TestEngineGenerateEmptySeries(t *testing.T) {
	e := testEngine(DefaultConfig())
	if _, err := e.Generate(nil); !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("Generate(nil) error = %v, want ErrEmptySeries", err)
	}
}

func TestEngineGenerateCompleteAggregate(t *testing.T) {
	e := testEngine(DefaultConfig())
	series := testSeries(seriesStart, 30, healthyDay)

	got, err := e.Generate(series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(got.TemporalPatterns.HourlyTrends) != 24 {
		t.Errorf("HourlyTrends length = %d, want 24", len(got.TemporalPatterns.HourlyTrends))
	}
	if len(got.TemporalPatterns.DailyTrends) != 7 {
		t.Errorf("DailyTrends length = %d, want 7", len(got.TemporalPatterns.DailyTrends))
	}
	if got.GeneratedAt.IsZero() {
		t.Error("GeneratedAt is zero")
	}
	if got.SentimentAnalysis.OverallSentiment != models.SentimentPositive {
		t.Errorf("OverallSentiment = %v, want positive (mean 0.7 > 0.6)", got.SentimentAnalysis.OverallSentiment)
	}
	if !almostEqual(got.SentimentAnalysis.SentimentScore, 0.7) {
		t.Errorf("SentimentScore = %v, want 0.7", got.SentimentAnalysis.SentimentScore)
	}
	if !almostEqual(got.SentimentAnalysis.IntentPrediction.Purchase, 0.4) {
		t.Errorf("IntentPrediction.Purchase = %v, want 0.4", got.SentimentAnalysis.IntentPrediction.Purchase)
	}
}

// Two runs over the same series with injected clock/IDs must be
// byte-identical; with production sources only IDs and timestamps may
// differ.
func TestEngineGenerateDeterminism(t *testing.T) {
	series := testSeries(seriesStart, 30, func(i int) models.HistoricalDataPoint {
		p := healthyDay(i)
		p.Attendances = 50 + 3*i
		p.Conversions = p.Attendances / 10
		return p
	})

	first, err := testEngine(DefaultConfig()).Generate(series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := testEngine(DefaultConfig()).Generate(series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("identical engines produced different aggregates")
	}
}

func TestEngineGenerateProductionSourcesDifferOnlyInIDs(t *testing.T) {
	series := testSeries(seriesStart, 14, func(i int) models.HistoricalDataPoint {
		p := healthyDay(i)
		p.Conversions = 5 // low conversion, forces an alert
		p.ResponseTime = 400
		return p
	})

	e := NewEngine(DefaultConfig())
	first, err := e.Generate(series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := e.Generate(series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !reflect.DeepEqual(first.AttendancePrediction, second.AttendancePrediction) {
		t.Error("attendance forecasts differ between runs")
	}
	if !reflect.DeepEqual(first.ConversionPrediction, second.ConversionPrediction) {
		t.Error("conversion forecasts differ between runs")
	}
	if len(first.PredictiveAlerts) != len(second.PredictiveAlerts) {
		t.Fatalf("alert counts differ: %d vs %d", len(first.PredictiveAlerts), len(second.PredictiveAlerts))
	}
	for i := range first.PredictiveAlerts {
		a, b := first.PredictiveAlerts[i], second.PredictiveAlerts[i]
		if a.ID == b.ID {
			t.Error("alert IDs should be freshly generated per run")
		}
		a.ID, b.ID = "", ""
		a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("alert content differs between runs: %+v vs %+v", a, b)
		}
	}
}

func TestEngineSentimentSummaryNegative(t *testing.T) {
	e := testEngine(DefaultConfig())
	series := testSeries(seriesStart, 10, func(i int) models.HistoricalDataPoint {
		p := healthyDay(i)
		p.Sentiment = 0.2
		return p
	})

	got, err := e.Generate(series)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got.SentimentAnalysis.OverallSentiment != models.SentimentNegative {
		t.Errorf("OverallSentiment = %v, want negative", got.SentimentAnalysis.OverallSentiment)
	}
}

func TestPredictiveAnalyticsHelpers(t *testing.T) {
	agg := &models.PredictiveAnalytics{
		AttendancePrediction:   models.AttendanceForecast{Confidence: 0.9},
		ConversionPrediction:   models.ConversionForecast{Confidence: 0.6},
		ResponseTimePrediction: models.ResponseTimeForecast{Confidence: 0.6},
		PredictiveAlerts: []models.PredictiveAlert{
			{ID: "a", IsActive: true},
			{ID: "b", IsActive: false},
		},
	}

	if got := agg.OverallConfidence(); !almostEqual(got, 0.7) {
		t.Errorf("OverallConfidence() = %v, want 0.7", got)
	}
	active := agg.ActiveAlerts()
	if len(active) != 1 || active[0].ID != "a" {
		t.Errorf("ActiveAlerts() = %+v, want only alert a", active)
	}
}
