// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import (
	"math"

	"github.com/pulsolabs/pulso/internal/models"
)

// Forecast horizons in days.
const (
	horizonDay   = 0 // next day is index n, i.e. n + 0 past the series end
	horizonWeek  = 7
	horizonMonth = 30
)

// forecastAttendance projects daily attendance volume from the series.
func (e *Engine) forecastAttendance(series models.HistoricalSeries) models.AttendanceForecast {
	attendances := series.Attendances()
	fit := LinearRegression(DayIndices(len(attendances)), attendances)

	n := float64(len(attendances))
	nextDay := projectCount(fit, n+horizonDay)
	nextWeek := projectCount(fit, n+horizonWeek)
	nextMonth := projectCount(fit, n+horizonMonth)

	trend := models.TrendStable
	switch {
	case fit.Slope > e.cfg.AttendanceSlopeThreshold:
		trend = models.TrendIncreasing
	case fit.Slope < -e.cfg.AttendanceSlopeThreshold:
		trend = models.TrendDecreasing
	}

	factors := make([]string, 0, 3)
	if fit.Slope > 0 {
		factors = append(factors, "Tendência crescente nos últimos dias")
	}
	if DetectSeasonality(attendances) > 0 {
		factors = append(factors, "Padrão sazonal detectado")
	}
	if fit.R2 > 0.7 {
		factors = append(factors, "Alta confiabilidade do modelo")
	}

	return models.AttendanceForecast{
		NextDay:    nextDay,
		NextWeek:   nextWeek,
		NextMonth:  nextMonth,
		Confidence: clamp(fit.R2, e.cfg.ConfidenceFloor, e.cfg.ConfidenceCeil),
		Trend:      trend,
		Factors:    factors,
	}
}

// forecastConversion projects the per-day conversion ratio and reports it
// as a percentage.
func (e *Engine) forecastConversion(series models.HistoricalSeries) models.ConversionForecast {
	rates := series.ConversionRates()
	fit := LinearRegression(DayIndices(len(rates)), rates)

	n := float64(len(rates))
	// A rate is clamped into [0,1] before scaling to percent.
	nextDay := clamp(fit.Project(n+horizonDay), 0, 1)
	nextWeek := clamp(fit.Project(n+horizonWeek), 0, 1)

	trend := models.TrendStable
	switch {
	case fit.Slope > e.cfg.ConversionSlopeThreshold:
		trend = models.TrendIncreasing
	case fit.Slope < -e.cfg.ConversionSlopeThreshold:
		trend = models.TrendDecreasing
	}

	factors := make([]string, 0, 2)
	if fit.Slope > 0 {
		factors = append(factors, "Melhoria na taxa de conversão")
	}
	if fit.R2 > 0.6 {
		factors = append(factors, "Padrão consistente de conversão")
	}

	return models.ConversionForecast{
		NextDay:    nextDay * 100,
		NextWeek:   nextWeek * 100,
		Confidence: clamp(fit.R2, e.cfg.ConfidenceFloor, e.cfg.ConfidenceCeil),
		Trend:      trend,
		Factors:    factors,
	}
}

// Degenerate response-time projection used when the series is too short
// for a fit. The values match the long-standing dashboard defaults.
const (
	fallbackResponseNextDay    = 180
	fallbackResponseNextWeek   = 175
	fallbackResponseConfidence = 0.8
)

// forecastResponseTime projects mean response latency through the same
// regression path as the other forecasters. Latency improves when the
// slope is negative.
func (e *Engine) forecastResponseTime(series models.HistoricalSeries) models.ResponseTimeForecast {
	if len(series) < 2 {
		return models.ResponseTimeForecast{
			NextDay:    fallbackResponseNextDay,
			NextWeek:   fallbackResponseNextWeek,
			Confidence: fallbackResponseConfidence,
			Trend:      models.ResponseTrendImproving,
		}
	}

	times := series.ResponseTimes()
	fit := LinearRegression(DayIndices(len(times)), times)

	n := float64(len(times))
	nextDay := math.Max(0, fit.Project(n+horizonDay))
	nextWeek := math.Max(0, fit.Project(n+horizonWeek))

	trend := models.ResponseTrendStable
	switch {
	case fit.Slope > e.cfg.ResponseSlopeThreshold:
		trend = models.ResponseTrendWorsening
	case fit.Slope < -e.cfg.ResponseSlopeThreshold:
		trend = models.ResponseTrendImproving
	}

	return models.ResponseTimeForecast{
		NextDay:    nextDay,
		NextWeek:   nextWeek,
		Confidence: clamp(fit.R2, e.cfg.ConfidenceFloor, e.cfg.ConfidenceCeil),
		Trend:      trend,
	}
}

// projectCount evaluates a fit at x, floored at zero and rounded to a
// whole count.
func projectCount(fit Fit, x float64) int {
	return int(math.Max(0, math.Round(fit.Project(x))))
}
