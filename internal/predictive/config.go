// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

// Config carries every threshold the engine applies. All values have
// working defaults via DefaultConfig; overriding them is primarily a
// testing affordance, though alert thresholds are also exposed through
// the application configuration.
type Config struct {
	// AttendanceSlopeThreshold is the regression slope (attendances/day)
	// beyond which the attendance trend is classified as moving.
	AttendanceSlopeThreshold float64

	// ConversionSlopeThreshold is the slope (rate/day) for the conversion
	// trend classification.
	ConversionSlopeThreshold float64

	// ResponseSlopeThreshold is the slope (seconds/day) for the
	// response-time trend classification. Negative slope is improvement.
	ResponseSlopeThreshold float64

	// ConfidenceFloor and ConfidenceCeil clamp the R² goodness-of-fit
	// into the confidence range reported to the dashboard.
	ConfidenceFloor float64
	ConfidenceCeil  float64

	Alerts          AlertThresholds
	Recommendations RecommendationThresholds
	Sentiment       SentimentConfig
	Temporal        TemporalConfig
}

// AlertThresholds configures the rolling-average alert generator.
type AlertThresholds struct {
	// Window is the number of trailing samples averaged.
	Window int

	// ConversionWarn triggers a high-severity low_conversion alert below
	// this rate; ConversionCritical escalates to critical.
	ConversionWarn     float64
	ConversionCritical float64

	// ResponseWarn triggers a high-severity high_response_time alert
	// strictly above this many seconds; ResponseCritical escalates.
	ResponseWarn     float64
	ResponseCritical float64

	// QualityWarn triggers a medium-severity quality_drop alert below
	// this score (1-5 scale); QualityCritical escalates.
	QualityWarn     float64
	QualityCritical float64
}

// RecommendationThresholds configures the heuristic recommendation rules.
type RecommendationThresholds struct {
	// AutomationResponseTime: mean response time (seconds) above which a
	// chatbot automation recommendation is emitted.
	AutomationResponseTime float64

	// PeakHourAttendances: hourly average strictly above which an hour
	// counts as a staffing peak.
	PeakHourAttendances float64

	// TrainingConversion: mean conversion rate below which a sales
	// training recommendation is emitted.
	TrainingConversion float64
}

// SentimentConfig configures the keyword classifier.
type SentimentConfig struct {
	PositiveWords []string
	NegativeWords []string

	// PositiveThreshold and NegativeThreshold split the score into the
	// three-way label: score > positive => positive, score < negative =>
	// negative, otherwise neutral.
	PositiveThreshold float64
	NegativeThreshold float64
}

// TemporalConfig configures the hour-of-day baseline model used while no
// intra-day timestamps exist in the data model.
type TemporalConfig struct {
	BusinessHourStart int
	BusinessHourEnd   int // inclusive

	// BusinessHourAttendances and OffHourAttendances are the per-hour
	// average baselines.
	BusinessHourAttendances float64
	OffHourAttendances      float64

	HourlyConversion   float64
	HourlyResponseTime float64
	HourlyConfidence   float64
}

// DefaultConfig returns the reference thresholds. The exact values are
// load-bearing: the dashboard and its operators calibrate against them.
func DefaultConfig() Config {
	return Config{
		AttendanceSlopeThreshold: 5,
		ConversionSlopeThreshold: 0.01,
		ResponseSlopeThreshold:   5,
		ConfidenceFloor:          0.5,
		ConfidenceCeil:           0.95,
		Alerts: AlertThresholds{
			Window:             7,
			ConversionWarn:     0.15,
			ConversionCritical: 0.10,
			ResponseWarn:       300,
			ResponseCritical:   600,
			QualityWarn:        3.5,
			QualityCritical:    3.0,
		},
		Recommendations: RecommendationThresholds{
			AutomationResponseTime: 180,
			PeakHourAttendances:    10,
			TrainingConversion:     0.20,
		},
		Sentiment: SentimentConfig{
			PositiveWords: []string{
				"bom", "ótimo", "excelente", "satisfeito", "gostei",
				"recomendo", "funciona", "rápido", "eficiente", "atendeu",
				"resolvido", "sucesso", "positivo",
			},
			NegativeWords: []string{
				"ruim", "péssimo", "insatisfeito", "não gostei", "problema",
				"lento", "ineficiente", "não atendeu", "não resolvido",
				"fracasso", "negativo", "reclamação",
			},
			PositiveThreshold: 0.6,
			NegativeThreshold: 0.4,
		},
		Temporal: TemporalConfig{
			BusinessHourStart:       8,
			BusinessHourEnd:         18,
			BusinessHourAttendances: 20,
			OffHourAttendances:      10,
			HourlyConversion:        0.3,
			HourlyResponseTime:      210,
			HourlyConfidence:        0.8,
		},
	}
}
