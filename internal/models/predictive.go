// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package models

import "time"

// Trend is the qualitative direction of a volume/rate forecast.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// ResponseTimeTrend is the qualitative direction of the latency forecast.
// Lower is better, so the vocabulary differs from Trend.
type ResponseTimeTrend string

const (
	ResponseTrendImproving ResponseTimeTrend = "improving"
	ResponseTrendWorsening ResponseTimeTrend = "worsening"
	ResponseTrendStable    ResponseTimeTrend = "stable"
)

// AlertType identifies the condition that raised a predictive alert.
type AlertType string

const (
	AlertLowConversion    AlertType = "low_conversion"
	AlertHighResponseTime AlertType = "high_response_time"
	AlertCustomerChurn    AlertType = "customer_churn"
	AlertPeakDemand       AlertType = "peak_demand"
	AlertQualityDrop      AlertType = "quality_drop"
)

// Severity is the ordinal urgency of an alert or recommendation priority:
// low < medium < high < critical.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Timeframe is the horizon within which an alert expects impact.
type Timeframe string

const (
	TimeframeImmediate Timeframe = "immediate"
	Timeframe24h       Timeframe = "24h"
	TimeframeWeek      Timeframe = "week"
	TimeframeMonth     Timeframe = "month"
)

// RecommendationType categorises a generated recommendation.
type RecommendationType string

const (
	RecommendationAutomation RecommendationType = "automation"
	RecommendationStaffing   RecommendationType = "staffing"
	RecommendationTiming     RecommendationType = "timing"
	RecommendationContent    RecommendationType = "content"
	RecommendationProcess    RecommendationType = "process"
)

// Impact grades the expected effect of a recommendation.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// SentimentLabel is the three-way sentiment classification.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// AttendanceForecast projects daily attendance volume.
type AttendanceForecast struct {
	NextDay    int      `json:"nextDay"`
	NextWeek   int      `json:"nextWeek"`
	NextMonth  int      `json:"nextMonth"`
	Confidence float64  `json:"confidence"` // clamped R², [0.5, 0.95]
	Trend      Trend    `json:"trend"`
	Factors    []string `json:"factors"`
}

// ConversionForecast projects the conversion rate as a percentage.
type ConversionForecast struct {
	NextDay    float64  `json:"nextDay"`  // percent
	NextWeek   float64  `json:"nextWeek"` // percent
	Confidence float64  `json:"confidence"`
	Trend      Trend    `json:"trend"`
	Factors    []string `json:"factors"`
}

// ResponseTimeForecast projects mean response latency in seconds.
type ResponseTimeForecast struct {
	NextDay    float64           `json:"nextDay"` // seconds
	NextWeek   float64           `json:"nextWeek"`
	Confidence float64           `json:"confidence"`
	Trend      ResponseTimeTrend `json:"trend"`
}

// PredictiveAlert is a threshold-triggered warning derived from recent
// averages. The engine always emits alerts with IsActive=true; deactivation
// is owned by the insight-state store, never by the engine.
type PredictiveAlert struct {
	ID                string    `json:"id"`
	Type              AlertType `json:"type"`
	Severity          Severity  `json:"severity"`
	Probability       float64   `json:"probability"` // 0-1
	Message           string    `json:"message"`
	RecommendedAction string    `json:"recommendedAction"`
	EstimatedImpact   string    `json:"estimatedImpact"`
	Timeframe         Timeframe `json:"timeframe"`
	CreatedAt         time.Time `json:"createdAt"`
	IsActive          bool      `json:"isActive"`
}

// Recommendation is a prioritized, heuristic action suggestion.
type Recommendation struct {
	ID                 string             `json:"id"`
	Type               RecommendationType `json:"type"`
	Title              string             `json:"title"`
	Description        string             `json:"description"`
	Impact             Impact             `json:"impact"`
	Confidence         float64            `json:"confidence"`
	ImplementationTime string             `json:"implementationTime"`
	ExpectedROI        float64            `json:"expectedROI"` // fractional
	Priority           Severity           `json:"priority"`
	Category           string             `json:"category"`
	Tags               []string           `json:"tags"`
	Applied            bool               `json:"applied"`
}

// HourlyTrend summarises activity for one hour of the day (0-23).
type HourlyTrend struct {
	Hour                int     `json:"hour"`
	AverageAttendances  float64 `json:"averageAttendances"`
	AverageConversion   float64 `json:"averageConversion"`
	AverageResponseTime float64 `json:"averageResponseTime"`
	Confidence          float64 `json:"confidence"`
}

// DailyTrend summarises activity for one day of the week
// (0=Sunday .. 6=Saturday).
type DailyTrend struct {
	DayOfWeek           int     `json:"dayOfWeek"`
	AverageAttendances  float64 `json:"averageAttendances"`
	AverageConversion   float64 `json:"averageConversion"`
	AverageResponseTime float64 `json:"averageResponseTime"`
	Confidence          float64 `json:"confidence"`
}

// TemporalPatterns groups the hour-of-day and day-of-week aggregates.
type TemporalPatterns struct {
	HourlyTrends []HourlyTrend `json:"hourlyTrends"`
	DailyTrends  []DailyTrend  `json:"dailyTrends"`
}

// SentimentAnalysis summarises customer sentiment and intent mix over the
// analysed window.
type SentimentAnalysis struct {
	OverallSentiment SentimentLabel  `json:"overallSentiment"`
	SentimentScore   float64         `json:"sentimentScore"` // 0-1
	IntentPrediction IntentBreakdown `json:"intentPrediction"`
}

// PredictiveAnalytics is the root aggregate returned per engine run.
// It is a pure value object: created fresh per request, cached by the API
// layer for the staleness window, and never mutated by the engine.
type PredictiveAnalytics struct {
	AttendancePrediction   AttendanceForecast   `json:"attendancePrediction"`
	ConversionPrediction   ConversionForecast   `json:"conversionPrediction"`
	ResponseTimePrediction ResponseTimeForecast `json:"responseTimePrediction"`
	PredictiveAlerts       []PredictiveAlert    `json:"predictiveAlerts"`
	TemporalPatterns       TemporalPatterns     `json:"temporalPatterns"`
	MLRecommendations      []Recommendation     `json:"mlRecommendations"`
	SentimentAnalysis      SentimentAnalysis    `json:"sentimentAnalysis"`
	GeneratedAt            time.Time            `json:"generatedAt"`
}

// ActiveAlerts returns the alerts still flagged active.
func (a *PredictiveAnalytics) ActiveAlerts() []PredictiveAlert {
	out := make([]PredictiveAlert, 0, len(a.PredictiveAlerts))
	for _, alert := range a.PredictiveAlerts {
		if alert.IsActive {
			out = append(out, alert)
		}
	}
	return out
}

// OverallConfidence averages the three forecast confidences.
func (a *PredictiveAnalytics) OverallConfidence() float64 {
	return (a.AttendancePrediction.Confidence +
		a.ConversionPrediction.Confidence +
		a.ResponseTimePrediction.Confidence) / 3
}
