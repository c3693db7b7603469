// Pulso - WhatsApp Engagement Analytics and Forecasting
// Copyright 2026 Pulso Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsolabs/pulso

package predictive

import "github.com/pulsolabs/pulso/internal/models"

// hourlyTrends produces one record per hour of the day.
//
// The daily data model carries no intra-day timestamps, so the hourly
// profile is a deterministic baseline model: business hours draw from a
// higher attendance baseline than off-hours, with fixed conversion,
// response-time, and confidence values. Once interaction-level timestamps
// land in the ingest schema this becomes a true group-by over the input,
// keeping the same output shape.
func (e *Engine) hourlyTrends() []models.HourlyTrend {
	trends := make([]models.HourlyTrend, 24)
	for hour := 0; hour < 24; hour++ {
		attendances := e.cfg.Temporal.OffHourAttendances
		if hour >= e.cfg.Temporal.BusinessHourStart && hour <= e.cfg.Temporal.BusinessHourEnd {
			attendances = e.cfg.Temporal.BusinessHourAttendances
		}
		trends[hour] = models.HourlyTrend{
			Hour:                hour,
			AverageAttendances:  attendances,
			AverageConversion:   e.cfg.Temporal.HourlyConversion,
			AverageResponseTime: e.cfg.Temporal.HourlyResponseTime,
			Confidence:          e.cfg.Temporal.HourlyConfidence,
		}
	}
	return trends
}

// dailyTrends groups the series by calendar weekday and averages each
// bucket. One record is emitted per weekday (0=Sunday..6=Saturday); a
// weekday with no samples reports zero averages with zero confidence.
// Confidence grows with the number of samples backing the bucket.
func (e *Engine) dailyTrends(series models.HistoricalSeries) []models.DailyTrend {
	type bucket struct {
		attendances  float64
		conversion   float64
		responseTime float64
		count        int
	}

	var buckets [7]bucket
	for _, p := range series {
		day := int(p.Date.Weekday())
		buckets[day].attendances += float64(p.Attendances)
		buckets[day].conversion += p.ConversionRate()
		buckets[day].responseTime += p.ResponseTime
		buckets[day].count++
	}

	trends := make([]models.DailyTrend, 7)
	for day, b := range buckets {
		trend := models.DailyTrend{DayOfWeek: day}
		if b.count > 0 {
			n := float64(b.count)
			trend.AverageAttendances = b.attendances / n
			trend.AverageConversion = b.conversion / n
			trend.AverageResponseTime = b.responseTime / n
			trend.Confidence = clamp(0.5+0.1*n, e.cfg.ConfidenceFloor, e.cfg.ConfidenceCeil)
		}
		trends[day] = trend
	}
	return trends
}
